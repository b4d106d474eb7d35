package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/store"
)

// Birthdates are relative to the clock so classifications hold no matter
// when the suite runs.
func adultBirthdate() model.Date {
	return model.Date{Time: time.Now().AddDate(-40, 0, 0)}
}

func childBirthdate() model.Date {
	return model.Date{Time: time.Now().AddDate(-10, 0, 0)}
}

// fixture covers one household with a child (1509 Culver St, station 3), one
// single adult (644 Gershwin Cir, station 1) and one resident with no
// medical record on file (748 Townings Dr, station 3).
func fixture() *model.Data {
	return &model.Data{
		Persons: []model.Person{
			{FirstName: "Jacob", LastName: "Boyd", Address: "1509 Culver St", City: "Culver", Zip: "97451", Phone: "841-874-6513", Email: "drk@email.com"},
			{FirstName: "John", LastName: "Boyd", Address: "1509 Culver St", City: "Culver", Zip: "97451", Phone: "841-874-6512", Email: "jaboyd@email.com"},
			{FirstName: "Tenley", LastName: "Boyd", Address: "1509 Culver St", City: "Culver", Zip: "97451", Phone: "841-874-6512", Email: "tenz@email.com"},
			{FirstName: "Peter", LastName: "Duncan", Address: "644 Gershwin Cir", City: "Culver", Zip: "97451", Phone: "841-874-6512", Email: "jaboyd@email.com"},
			{FirstName: "Clive", LastName: "Ferguson", Address: "748 Townings Dr", City: "Culver", Zip: "97451", Phone: "841-874-6741", Email: "clivfd@ymail.com"},
		},
		FireStations: []model.FireStation{
			{Address: "644 Gershwin Cir", Station: 1},
			{Address: "1509 Culver St", Station: 3},
			{Address: "748 Townings Dr", Station: 3},
		},
		MedicalRecords: []model.MedicalRecord{
			{FirstName: "Jacob", LastName: "Boyd", Birthdate: adultBirthdate(), Medications: []string{"pharmacol:5000mg"}, Allergies: []string{}},
			{FirstName: "John", LastName: "Boyd", Birthdate: adultBirthdate(), Medications: []string{"aznol:350mg"}, Allergies: []string{"nillacilan"}},
			{FirstName: "Tenley", LastName: "Boyd", Birthdate: childBirthdate(), Medications: []string{}, Allergies: []string{"peanut"}},
			{FirstName: "Peter", LastName: "Duncan", Birthdate: adultBirthdate(), Medications: []string{}, Allergies: []string{"shellfish"}},
		},
	}
}

func newTestStore(t *testing.T, data *model.Data) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return st
}

func newServices(t *testing.T) (*PersonService, *MedicalRecordService, *FireStationService, *store.Store) {
	t.Helper()
	st := newTestStore(t, fixture())
	log := zap.NewNop()
	return NewPersonService(st, log), NewMedicalRecordService(st, log), NewFireStationService(st, log), st
}
