package services

import "errors"

// Errors shared across services and the HTTP error mapping. Everything
// detected before the mutating write maps to a 4xx; store and transport
// faults surface as opaque 500s.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNewsNotFound       = errors.New("news item not found")

	// Validation and business-rule failures.
	ErrPasswordMismatch    = errors.New("password and confirm password do not match")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrDuplicateAadhaar    = errors.New("aadhaar number is already registered")
	ErrMissingRequiredData = errors.New("missing required data")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")

	// Authentication.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Notifier transport failure. Only the team registration flow gates its
	// response on this; everywhere else delivery failures are logged.
	ErrEmailDeliveryFailed = errors.New("failed to send notification email")
)
