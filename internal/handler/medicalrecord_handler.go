package handler

import (
	"net/http"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/service"
	"dispatch-alerts-api/internal/validate"
)

func (h *Handler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var rec model.MedicalRecord
	if !h.decode(w, r, &rec) {
		return
	}
	if h.invalid(w, validate.MedicalRecord(rec)) {
		return
	}
	if err := h.records.Create(rec); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}

func (h *Handler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var rec model.MedicalRecord
	if !h.decode(w, r, &rec) {
		return
	}
	if h.invalid(w, validate.MedicalRecord(rec)) {
		return
	}
	if err := h.records.Update(rec); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var name service.PersonName
	if !h.decode(w, r, &name) {
		return
	}
	if h.invalid(w, validate.PersonName(name)) {
		return
	}
	if err := h.records.Delete(name); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}
