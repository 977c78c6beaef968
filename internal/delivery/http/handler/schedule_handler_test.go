package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sagra/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestCatalogError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		handled bool
	}{
		{name: "malformed period", err: fmt.Errorf("build schedule: %w", &service.MalformedPeriodError{Period: "sem prazo"}), handled: true},
		{name: "bad technique", err: &service.TechniqueFormatError{Entry: "Tackle:7"}, handled: true},
		{name: "other error", err: errors.New("database is locked"), handled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			assert.Equal(t, tt.handled, catalogError(rec, tt.err))
			if tt.handled {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				assert.Contains(t, rec.Body.String(), "Phase catalog is malformed")
			}
		})
	}
}
