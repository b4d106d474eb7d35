package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", zap.Error(err))
	}
}

// writeErr translates a domain failure to its transport status, one to one.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody{Message: err.Error()})
	case errors.Is(err, service.ErrAlreadyExists):
		h.writeJSON(w, http.StatusConflict, errorBody{Message: err.Error()})
	case errors.Is(err, model.ErrDateFormat):
		h.writeJSON(w, http.StatusNotAcceptable, errorBody{Message: "Birthdate must be in the format MM/dd/yyyy"})
	default:
		h.log.Error("internal error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal error"})
	}
}

// decode reads a JSON body; a malformed birthdate surfaces as its own
// distinguishable failure, everything else is a plain bad request.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, model.ErrDateFormat) {
			h.writeJSON(w, http.StatusNotAcceptable, errorBody{Message: "Birthdate must be in the format MM/dd/yyyy"})
		} else {
			h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		}
		return false
	}
	return true
}

// invalid writes the field→message map when validation failed.
func (h *Handler) invalid(w http.ResponseWriter, errs map[string]string) bool {
	if errs == nil {
		return false
	}
	h.log.Error("validation failed", zap.Any("errors", errs))
	h.writeJSON(w, http.StatusBadRequest, errs)
	return true
}
