package handlers

import (
	"net/http"

	"github.com/ndcacricket/registration-system/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// RegisterHandler обрабатывает POST /teams (multipart, файлы "teamLogo" и
// "receipt").
func (h *TeamHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var closers []func()
	defer closeAll(closers)

	teamLogo, err := collectFormFile(r, "teamLogo", &closers)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	receipt, err := collectFormFile(r, "receipt", &closers)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.RegisterTeamInput{
		TeamName:        r.FormValue("teamName"),
		ClubName:        r.FormValue("clubname"),
		CaptainName:     r.FormValue("captainName"),
		ContactNumber:   r.FormValue("contactNumber"),
		Email:           r.FormValue("email"),
		AadhaarNumber:   r.FormValue("aadhaarNumber"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
		ReceiptNumber:   optionalFormValue(r, "receiptNumber"),
		TeamLogo:        teamLogo,
		Receipt:         receipt,
	}

	team, err := h.teamService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "team registered and email sent successfully",
		"team":    team,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /teams
func (h *TeamHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /teams/{id}
func (h *TeamHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler обрабатывает PUT /teams/{id} (multipart, файл "teamLogo").
func (h *TeamHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	teamLogo, err := collectFormFile(r, "teamLogo", &closers)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.UpdateTeamInput{
		TeamName:        r.FormValue("teamName"),
		CaptainName:     r.FormValue("captainName"),
		ContactNumber:   r.FormValue("contactNumber"),
		Email:           r.FormValue("email"),
		AadhaarNumber:   r.FormValue("aadhaarNumber"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
		TeamLogo:        teamLogo,
	}

	team, err := h.teamService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /teams/{id}
func (h *TeamHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "team deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
