package handler

import (
	"net/http"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/service"
	"dispatch-alerts-api/internal/validate"
)

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var p model.Person
	if !h.decode(w, r, &p) {
		return
	}
	if h.invalid(w, validate.Person(p)) {
		return
	}
	if err := h.persons.Create(p); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var p model.Person
	if !h.decode(w, r, &p) {
		return
	}
	if h.invalid(w, validate.Person(p)) {
		return
	}
	if err := h.persons.Update(p); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	var name service.PersonName
	if !h.decode(w, r, &name) {
		return
	}
	if h.invalid(w, validate.PersonName(name)) {
		return
	}
	if err := h.persons.Delete(name); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) PersonInfo(w http.ResponseWriter, r *http.Request) {
	lastname := r.URL.Query().Get("lastname")
	if lastname == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "lastname is required"})
		return
	}
	infos, err := h.persons.InfoByLastName(lastname)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, infos)
}

func (h *Handler) CommunityEmail(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "city is required"})
		return
	}
	emails, err := h.persons.EmailsByCity(city)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, emails)
}

func (h *Handler) ChildAlert(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "address is required"})
		return
	}
	children, err := h.persons.ChildrenByAddress(address)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, children)
}
