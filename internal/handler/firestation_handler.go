package handler

import (
	"net/http"
	"strconv"
	"strings"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/validate"
)

func (h *Handler) CreateFireStation(w http.ResponseWriter, r *http.Request) {
	var fs model.FireStation
	if !h.decode(w, r, &fs) {
		return
	}
	if h.invalid(w, validate.FireStation(fs)) {
		return
	}
	if err := h.stations.Create(fs); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}

func (h *Handler) UpdateFireStation(w http.ResponseWriter, r *http.Request) {
	var fs model.FireStation
	if !h.decode(w, r, &fs) {
		return
	}
	if h.invalid(w, validate.FireStation(fs)) {
		return
	}
	if err := h.stations.Update(fs); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) DeleteFireStation(w http.ResponseWriter, r *http.Request) {
	var fs model.FireStation
	if !h.decode(w, r, &fs) {
		return
	}
	if h.invalid(w, validate.FireStation(fs)) {
		return
	}
	if err := h.stations.Delete(fs); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) StationCoverage(w http.ResponseWriter, r *http.Request) {
	station, ok := h.stationParam(w, r, "stationnumber")
	if !ok {
		return
	}
	cov, err := h.stations.CoverageByStation(station)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cov)
}

func (h *Handler) FloodStations(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("stations")
	if raw == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "stations is required"})
		return
	}
	var stations []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "stations must be a comma-separated list of numbers"})
			return
		}
		stations = append(stations, n)
	}
	homes, err := h.stations.HomesByStations(stations)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, homes)
}

func (h *Handler) PhoneAlert(w http.ResponseWriter, r *http.Request) {
	station, ok := h.stationParam(w, r, "firestation")
	if !ok {
		return
	}
	phones, err := h.stations.PhonesByStation(station)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, phones)
}

func (h *Handler) Fire(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "address is required"})
		return
	}
	residents, err := h.stations.ResidentsByAddress(address)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, residents)
}

func (h *Handler) stationParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: name + " is required"})
		return 0, false
	}
	station, err := strconv.Atoi(raw)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: name + " must be a number"})
		return 0, false
	}
	return station, true
}
