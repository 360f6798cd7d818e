package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"assessment-genie/internal/middleware"
	"assessment-genie/internal/model"
	"assessment-genie/internal/service"
	"assessment-genie/pkg/apierror"
)

// identityVerifier resolves a provider access token into a verified
// profile. The Google round-trip stays out of the auth service.
type identityVerifier interface {
	FetchIdentity(ctx context.Context, accessToken string) (model.GoogleIdentity, error)
}

type AuthHandler struct {
	service  *service.AuthService
	verifier identityVerifier
}

func NewAuthHandler(service *service.AuthService, verifier identityVerifier) *AuthHandler {
	return &AuthHandler{service: service, verifier: verifier}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	user, err := h.service.Signup(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	session, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, session, nil)
}

func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Token) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "token is required", "token", http.StatusBadRequest))
		return
	}

	identity, err := h.verifier.FetchIdentity(r.Context(), payload.Token)
	if err != nil {
		writeError(w, apierror.New("UNAUTHORIZED", "failed to fetch user info from Google", "", http.StatusUnauthorized))
		return
	}

	session, err := h.service.LoginWithGoogle(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, session, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}
