package handler

import (
	"encoding/json"
	"net/http"

	"assessment-genie/internal/middleware"
	"assessment-genie/internal/model"
	"assessment-genie/internal/service"
	"assessment-genie/pkg/apierror"
)

type BlueprintHandler struct {
	service *service.BlueprintService
}

func NewBlueprintHandler(service *service.BlueprintService) *BlueprintHandler {
	return &BlueprintHandler{service: service}
}

func (h *BlueprintHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.CreateBlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	blueprint, err := h.service.Generate(r.Context(), claims.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, blueprint, nil)
}

func (h *BlueprintHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	blueprints, err := h.service.ListForOwner(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.BlueprintList{Blueprints: blueprints}, nil)
}
