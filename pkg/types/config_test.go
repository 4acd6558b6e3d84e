package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"sqlite", Config{Backend: BackendSQLite, DataDir: "/tmp/x"}, nil},
		{"memory", Config{Backend: BackendMemory}, nil},
		{"csv", Config{Backend: BackendCSV, DataDir: "."}, nil},
		{"empty backend", Config{DataDir: "/tmp/x"}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "postgres"}, ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
