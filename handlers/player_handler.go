package handlers

import (
	"errors"
	"net/http"

	"github.com/ndcacricket/registration-system/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// playerProfileRequest mirrors the registration form field names.
type playerProfileRequest struct {
	AadhaarNumber         string `json:"adha_num"`
	FirstName             string `json:"pfnmae"`
	MiddleName            string `json:"pmname"`
	LastName              string `json:"plnmae"`
	Gender                string `json:"gender"`
	BloodGroup            string `json:"bloodGroup"`
	Email                 string `json:"email"`
	Mobile                string `json:"mobile"`
	PermanentAddress      string `json:"permanentAddress"`
	CorrespondenceAddress string `json:"correspondenceAddress"`
	BirthCertNumber       string `json:"dobCertNo"`
	BirthCertDate         string `json:"dobCertDate"`
	BirthCertPlace        string `json:"dobCertPlace"`
	SchoolCertNumber      string `json:"schoolCertNo"`
	SSCCertDate           string `json:"sscCertDate"`
	FatherName            string `json:"fatherName"`
	MotherName            string `json:"motherName"`
	GuardianName          string `json:"guardianName"`
	RelationType          string `json:"relationType"`
	GuardianAddress       string `json:"guardianAddress"`
	EmergencyContact      string `json:"emergencyContact"`
	DateOfBirth           string `json:"dob"`
	Age                   int    `json:"age"`
	PlayerType            string `json:"playerType"`
	BattingStyle          string `json:"battingStyle"`
	BowlingStyle          string `json:"bowlingStyle"`
	BattingPosition       string `json:"battingPosition"`
	LastAssociation       string `json:"lastAssociation"`
	LastYear              string `json:"lastYear"`
	Status                string `json:"status"`
}

func (req playerProfileRequest) toProfile() services.PlayerProfile {
	return services.PlayerProfile{
		AadhaarNumber:         req.AadhaarNumber,
		FirstName:             req.FirstName,
		MiddleName:            req.MiddleName,
		LastName:              req.LastName,
		Gender:                req.Gender,
		BloodGroup:            req.BloodGroup,
		Email:                 req.Email,
		Mobile:                req.Mobile,
		PermanentAddress:      req.PermanentAddress,
		CorrespondenceAddress: req.CorrespondenceAddress,
		BirthCertNumber:       req.BirthCertNumber,
		BirthCertDate:         req.BirthCertDate,
		BirthCertPlace:        req.BirthCertPlace,
		SchoolCertNumber:      req.SchoolCertNumber,
		SSCCertDate:           req.SSCCertDate,
		FatherName:            req.FatherName,
		MotherName:            req.MotherName,
		GuardianName:          req.GuardianName,
		RelationType:          req.RelationType,
		GuardianAddress:       req.GuardianAddress,
		EmergencyContact:      req.EmergencyContact,
		DateOfBirth:           req.DateOfBirth,
		Age:                   req.Age,
		PlayerType:            req.PlayerType,
		BattingStyle:          req.BattingStyle,
		BowlingStyle:          req.BowlingStyle,
		BattingPosition:       req.BattingPosition,
		LastAssociation:       req.LastAssociation,
		LastYear:              req.LastYear,
		Status:                req.Status,
	}
}

// profileFromForm rebuilds the profile from multipart form values, using the
// same field names as the JSON update request.
func profileFromForm(r *http.Request) services.PlayerProfile {
	age, _ := parseFormInt(r, "age")
	return services.PlayerProfile{
		AadhaarNumber:         r.FormValue("adha_num"),
		FirstName:             r.FormValue("pfnmae"),
		MiddleName:            r.FormValue("pmname"),
		LastName:              r.FormValue("plnmae"),
		Gender:                r.FormValue("gender"),
		BloodGroup:            r.FormValue("bloodGroup"),
		Email:                 r.FormValue("email"),
		Mobile:                r.FormValue("mobile"),
		PermanentAddress:      r.FormValue("permanentAddress"),
		CorrespondenceAddress: r.FormValue("correspondenceAddress"),
		BirthCertNumber:       r.FormValue("dobCertNo"),
		BirthCertDate:         r.FormValue("dobCertDate"),
		BirthCertPlace:        r.FormValue("dobCertPlace"),
		SchoolCertNumber:      r.FormValue("schoolCertNo"),
		SSCCertDate:           r.FormValue("sscCertDate"),
		FatherName:            r.FormValue("fatherName"),
		MotherName:            r.FormValue("motherName"),
		GuardianName:          r.FormValue("guardianName"),
		RelationType:          r.FormValue("relationType"),
		GuardianAddress:       r.FormValue("guardianAddress"),
		EmergencyContact:      r.FormValue("emergencyContact"),
		DateOfBirth:           r.FormValue("dob"),
		Age:                   age,
		PlayerType:            r.FormValue("playerType"),
		BattingStyle:          r.FormValue("battingStyle"),
		BowlingStyle:          r.FormValue("bowlingStyle"),
		BattingPosition:       r.FormValue("battingPosition"),
		LastAssociation:       r.FormValue("lastAssociation"),
		LastYear:              r.FormValue("lastYear"),
		Status:                r.FormValue("status"),
	}
}

// RegisterHandler обрабатывает POST /players (multipart, пять необязательных
// файлов документов).
func (h *PlayerHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var closers []func()
	defer closeAll(closers)

	input := services.RegisterPlayerInput{
		TeamID:        r.FormValue("teamId"),
		PlayerProfile: profileFromForm(r),
	}

	docFields := []struct {
		name string
		dst  **services.UploadedFile
	}{
		{"adharupload", &input.AadhaarDoc},
		{"Birth_certificate", &input.BirthCertificate},
		{"ssc_certificate", &input.SSCCertificate},
		{"school_lcertificate", &input.SchoolLeavingCert},
		{"passport", &input.Passport},
	}
	for _, doc := range docFields {
		f, err := collectFormFile(r, doc.name, &closers)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		*doc.dst = f
	}

	player, err := h.playerService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "player added successfully",
		"player":  player,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler обрабатывает GET /players; с query-параметром team_id —
// только игроков одной команды.
func (h *PlayerHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var players interface{}
	var err error

	if teamID := r.URL.Query().Get("team_id"); teamID != "" {
		players, err = h.playerService.ListByTeamID(r.Context(), teamID)
	} else {
		players, err = h.playerService.List(r.Context())
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /players/{id}
func (h *PlayerHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler обрабатывает PUT /players/{id} (JSON, без файлов: документы
// задаются только при регистрации).
func (h *PlayerHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req playerProfileRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Update(r.Context(), id, services.UpdatePlayerInput{
		PlayerProfile: req.toProfile(),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatusHandler обрабатывает PATCH /players/{id}/status
func (h *PlayerHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Status == "" {
		badRequestResponse(w, r, errors.New("status is required"))
		return
	}

	if err := h.playerService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "player status updated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler обрабатывает DELETE /players/{id}
func (h *PlayerHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "player deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
