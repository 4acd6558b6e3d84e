// Package types defines the registrar domain entities, the DAO contracts
// implemented by every storage backend, the backend configuration, and the
// standard error values shared across the persistence tier.
package types
