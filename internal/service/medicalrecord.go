package service

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/store"
)

// MedicalRecordService owns CRUD over the medical record collection, keyed
// by (firstName, lastName) with the same case policy as persons.
type MedicalRecordService struct {
	store *store.Store
	log   *zap.Logger
}

func NewMedicalRecordService(st *store.Store, log *zap.Logger) *MedicalRecordService {
	return &MedicalRecordService{store: st, log: log}
}

func (s *MedicalRecordService) Create(r model.MedicalRecord) error {
	s.log.Info("creating medical record", zap.String("firstName", r.FirstName), zap.String("lastName", r.LastName))

	return s.store.Update(func(d *model.Data) error {
		for _, existing := range d.MedicalRecords {
			if existing.FirstName == r.FirstName && existing.LastName == r.LastName {
				s.log.Error("medical record already exists", zap.String("firstName", r.FirstName), zap.String("lastName", r.LastName))
				return errors.Wrapf(ErrAlreadyExists, "%s %s", r.FirstName, r.LastName)
			}
		}
		d.MedicalRecords = append(d.MedicalRecords, r)
		store.SortMedicalRecords(d)
		return nil
	})
}

func (s *MedicalRecordService) Update(r model.MedicalRecord) error {
	s.log.Info("updating medical record", zap.String("firstName", r.FirstName), zap.String("lastName", r.LastName))

	return s.store.Update(func(d *model.Data) error {
		for i, existing := range d.MedicalRecords {
			if existing.FirstName == r.FirstName && existing.LastName == r.LastName {
				d.MedicalRecords[i] = r
				return nil
			}
		}
		s.log.Error("medical record not found", zap.String("firstName", r.FirstName), zap.String("lastName", r.LastName))
		return errors.Wrapf(ErrNotFound, "no medical record for %s %s", r.FirstName, r.LastName)
	})
}

func (s *MedicalRecordService) Delete(name PersonName) error {
	s.log.Info("deleting medical record", zap.String("firstName", name.FirstName), zap.String("lastName", name.LastName))

	return s.store.Update(func(d *model.Data) error {
		for i, existing := range d.MedicalRecords {
			if strings.EqualFold(existing.FirstName, name.FirstName) && strings.EqualFold(existing.LastName, name.LastName) {
				d.MedicalRecords = append(d.MedicalRecords[:i], d.MedicalRecords[i+1:]...)
				return nil
			}
		}
		s.log.Error("medical record not found", zap.String("firstName", name.FirstName), zap.String("lastName", name.LastName))
		return errors.Wrapf(ErrNotFound, "no medical record for %s %s", name.FirstName, name.LastName)
	})
}
