package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assessment-genie/internal/middleware"
	"assessment-genie/internal/model"
	"assessment-genie/internal/service"
	"assessment-genie/pkg/apierror"
)

type TopicHandler struct {
	service *service.TopicService
}

func NewTopicHandler(service *service.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	request, err := h.service.Submit(r.Context(), claims.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, request, nil)
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.TopicRequestList{Requests: requests}, nil)
}

func (h *TopicHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "request id is required", "id", http.StatusBadRequest))
		return
	}

	var payload model.UpdateTopicStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	request, err := h.service.UpdateStatus(r.Context(), requestID, payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, request, nil)
}
