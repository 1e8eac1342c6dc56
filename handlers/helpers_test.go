package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndcacricket/registration-system/services"
	"github.com/ndcacricket/registration-system/storage"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrPlayerNotFound, http.StatusNotFound},
		{services.ErrNewsNotFound, http.StatusNotFound},
		{services.ErrPasswordMismatch, http.StatusBadRequest},
		{services.ErrDuplicateUsername, http.StatusBadRequest},
		{services.ErrDuplicateAadhaar, http.StatusBadRequest},
		{services.ErrMissingRequiredData, http.StatusBadRequest},
		{services.ErrNoFieldsToUpdate, http.StatusBadRequest},
		{services.ErrInvalidDate, http.StatusBadRequest},
		{storage.ErrInvalidUploadPath, http.StatusBadRequest},
		{storage.ErrUnsupportedFileType, http.StatusBadRequest},
		{storage.ErrFileTooLarge, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrEmailDeliveryFailed, http.StatusInternalServerError},
		{storage.ErrUploadDirUnavailable, http.StatusInternalServerError},
		{fmt.Errorf("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMapWrappedServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	mapServiceErrorToHTTP(rec, req, fmt.Errorf("%w: 30000 bytes (limit 20480)", storage.ErrFileTooLarge))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := writeJSON(rec, http.StatusCreated, jsonResponse{"ok": true}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q", got)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
}
