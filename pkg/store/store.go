// Package store provides the public factory for registrar storage
// backends, keeping the backend implementations internal.
package store

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/registrar/internal/csvstore"
	"github.com/mesh-intelligence/registrar/internal/memory"
	"github.com/mesh-intelligence/registrar/internal/sqlite"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// New creates a closed store for the backend named in config. A nil
// logger discards diagnostics.
//
// Example:
//
//	s, err := store.New(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".registrar-db",
//	}, nil)
//	if err != nil { ... }
//	if err := s.Open(config); err != nil { ... }
//	defer s.Close()
func New(config types.Config, log *slog.Logger) (types.Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Backend {
	case types.BackendSQLite:
		return sqlite.NewStore(log), nil
	case types.BackendMemory:
		return memory.NewStore(log), nil
	case types.BackendCSV:
		return csvstore.NewStore(log), nil
	}
	return nil, fmt.Errorf("backend %q: %w", config.Backend, types.ErrBackendUnknown)
}

// Open creates and opens a store in one step.
func Open(config types.Config, log *slog.Logger) (types.Store, error) {
	s, err := New(config, log)
	if err != nil {
		return nil, err
	}
	if err := s.Open(config); err != nil {
		return nil, err
	}
	return s, nil
}
