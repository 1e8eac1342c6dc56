package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndcacricket/registration-system/services"
	"github.com/ndcacricket/registration-system/storage"
)

type jsonResponse map[string]interface{}

// multipartMemoryLimit bounds how much of a multipart body is buffered in
// memory before spilling to temp files.
const multipartMemoryLimit = 10 << 20

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	err := writeJSON(w, status, env, nil)
	if err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

// mapServiceErrorToHTTP translates service-layer errors into HTTP responses.
// Business-rule failures, duplicates included, come back as 400 rather than
// 409: the admin panel only distinguishes "fix your input" from "try later".
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrNewsNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateAadhaar),
		errors.Is(err, services.ErrMissingRequiredData),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, storage.ErrInvalidUploadPath),
		errors.Is(err, storage.ErrUnsupportedFileType),
		errors.Is(err, storage.ErrFileTooLarge):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrInvalidCredentials):
		unauthorizedResponse(w, r, err.Error())

	// ErrEmailDeliveryFailed and storage faults fall through here: the row
	// may already be persisted, but the caller is told the request failed.
	default:
		serverErrorResponse(w, r, err)
	}
}

func errInvalidParam(name, value string) error {
	return fmt.Errorf("invalid %s parameter: %q", name, value)
}

// getIDFromURL parses the numeric {id} route parameter.
func getIDFromURL(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id parameter: %q", raw)
	}
	return id, nil
}

// formFile lifts one optional file field out of an already-parsed multipart
// form. A missing field is not an error: the caller receives nil and treats
// the field as absent.
func formFile(r *http.Request, field string) (*services.UploadedFile, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, fmt.Errorf("failed to read %q field: %w", field, err)
	}

	contentType := header.Header.Get("Content-Type")
	return &services.UploadedFile{
		Field:       field,
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      file,
	}, func() { file.Close() }, nil
}

// closeAll runs the cleanup funcs collected while lifting multipart files.
func closeAll(closers []func()) {
	for _, c := range closers {
		c()
	}
}

// collectFormFile appends the cleanup for one optional file field and
// returns the parsed file, or an error when the field is malformed.
func collectFormFile(r *http.Request, field string, closers *[]func()) (*services.UploadedFile, error) {
	f, cleanup, err := formFile(r, field)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, cleanup)
	return f, nil
}
