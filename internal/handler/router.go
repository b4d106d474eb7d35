package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires every endpoint onto a ServeMux. Method-qualified patterns
// keep the create/query split on /firestation unambiguous.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /person", h.CreatePerson)
	mux.HandleFunc("PUT /person", h.UpdatePerson)
	mux.HandleFunc("DELETE /person", h.DeletePerson)

	mux.HandleFunc("POST /medicalrecord", h.CreateMedicalRecord)
	mux.HandleFunc("PUT /medicalrecord", h.UpdateMedicalRecord)
	mux.HandleFunc("DELETE /medicalrecord", h.DeleteMedicalRecord)

	mux.HandleFunc("POST /firestation", h.CreateFireStation)
	mux.HandleFunc("PUT /firestation", h.UpdateFireStation)
	mux.HandleFunc("DELETE /firestation", h.DeleteFireStation)
	mux.HandleFunc("GET /firestation", h.StationCoverage)

	mux.HandleFunc("GET /personinfo", h.PersonInfo)
	mux.HandleFunc("GET /communityemail", h.CommunityEmail)
	mux.HandleFunc("GET /childalert", h.ChildAlert)
	mux.HandleFunc("GET /flood/stations", h.FloodStations)
	mux.HandleFunc("GET /phonealert", h.PhoneAlert)
	mux.HandleFunc("GET /fire", h.Fire)

	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
