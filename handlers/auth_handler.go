package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ndcacricket/registration-system/middleware"
	"github.com/ndcacricket/registration-system/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginHandler обрабатывает POST /auth/admin/login
func (h *AuthHandler) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.authService.AdminLogin)
}

// CaptainLoginHandler обрабатывает POST /auth/captain/login
func (h *AuthHandler) CaptainLoginHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.authService.CaptainLogin)
}

func (h *AuthHandler) login(
	w http.ResponseWriter,
	r *http.Request,
	authenticate func(ctx context.Context, input services.LoginInput) (*services.LoginResult, error),
) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	result, err := authenticate(r.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"login": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LogoutHandler обрабатывает POST /auth/logout. Tokens are stateless, so
// there is nothing to revoke server-side; the client drops its copy.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "logout successful"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MeHandler обрабатывает GET /auth/me — отражает claims текущего токена.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"claims": claims}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
