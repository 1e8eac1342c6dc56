package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ndcacricket/registration-system/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// CreateHandler обрабатывает POST /tournaments (multipart, файл "Logo").
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var closers []func()
	defer closeAll(closers)

	logo, err := collectFormFile(r, "Logo", &closers)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	numberOfTeams, err := parseFormInt(r, "numberOfTeams")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.CreateTournamentInput{
		AgeGroup:       r.FormValue("ageGroup"),
		Name:           r.FormValue("tournamentName"),
		Format:         r.FormValue("format"),
		StartDate:      r.FormValue("startDate"),
		EndDate:        r.FormValue("endDate"),
		NumberOfTeams:  numberOfTeams,
		CrickheroesURL: optionalFormValue(r, "crickheros"),
		SportlinkURL:   optionalFormValue(r, "sportlink"),
		Logo:           logo,
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListNamesHandler обрабатывает GET /tournaments/names — облегчённая
// проекция для выпадающих списков панели.
func (h *TournamentHandler) ListNamesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := h.tournamentService.ListNames(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": names}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /tournaments/{id}
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler обрабатывает PUT /tournaments/{id} (multipart, файл "Logo").
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var closers []func()
	defer closeAll(closers)

	logo, err := collectFormFile(r, "Logo", &closers)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	numberOfTeams, err := parseFormInt(r, "numberOfTeams")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.UpdateTournamentInput{
		AgeGroup:      r.FormValue("ageGroup"),
		Name:          r.FormValue("tournamentName"),
		Format:        r.FormValue("format"),
		StartDate:     r.FormValue("startDate"),
		EndDate:       r.FormValue("endDate"),
		NumberOfTeams: numberOfTeams,
		Logo:          logo,
	}

	tournament, err := h.tournamentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /tournaments/{id}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "tournament deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseFormInt(r *http.Request, field string) (int, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + field + " value")
	}
	return n, nil
}

// optionalFormValue returns nil for absent or empty form fields.
func optionalFormValue(r *http.Request, field string) *string {
	v := r.FormValue(field)
	if v == "" {
		return nil
	}
	return &v
}
