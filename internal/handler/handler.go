package handler

import (
	"go.uber.org/zap"

	"dispatch-alerts-api/internal/service"
	"dispatch-alerts-api/internal/store"
)

type Handler struct {
	persons  *service.PersonService
	records  *service.MedicalRecordService
	stations *service.FireStationService
	accounts *store.AccountStore
	secret   string
	log      *zap.Logger
}

func New(st *store.Store, accounts *store.AccountStore, secret string, log *zap.Logger) *Handler {
	return &Handler{
		persons:  service.NewPersonService(st, log),
		records:  service.NewMedicalRecordService(st, log),
		stations: service.NewFireStationService(st, log),
		accounts: accounts,
		secret:   secret,
		log:      log,
	}
}
