package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndcacricket/registration-system/services"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(es services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: es}
}

type enrollTeamRequest struct {
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	TournamentID   string `json:"tournamentId"`
	TournamentName string `json:"tournamentName"`
	PlayerIDs      []int  `json:"playerIds"`
}

// EnrollHandler обрабатывает POST /enrollments
func (h *EnrollmentHandler) EnrollHandler(w http.ResponseWriter, r *http.Request) {
	var req enrollTeamRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	enrolled, err := h.enrollmentService.EnrollTeam(r.Context(), services.EnrollTeamInput{
		TeamID:         req.TeamID,
		TeamName:       req.TeamName,
		TournamentID:   req.TournamentID,
		TournamentName: req.TournamentName,
		PlayerIDs:      req.PlayerIDs,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":  "players enrolled successfully",
		"enrolled": enrolled,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByPlayerHandler обрабатывает GET /enrollments/player/{playerID}
func (h *EnrollmentHandler) ListByPlayerHandler(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "playerID")
	playerID, err := strconv.Atoi(raw)
	if err != nil || playerID < 1 {
		badRequestResponse(w, r, errInvalidParam("playerID", raw))
		return
	}

	enrollments, err := h.enrollmentService.ListByPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"enrollments": enrollments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByTournamentHandler обрабатывает GET /enrollments/tournament/{tournamentID}
func (h *EnrollmentHandler) ListByTournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errInvalidParam("tournamentID", tournamentID))
		return
	}

	enrollments, err := h.enrollmentService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"enrollments": enrollments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
