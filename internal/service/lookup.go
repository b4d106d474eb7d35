package service

import (
	"sort"
	"strings"
	"time"

	"dispatch-alerts-api/internal/model"
)

// adultAge is the first age that no longer counts as a child.
const adultAge = 18

// nameKey matches persons to medical records by exact (firstName, lastName)
// equality.
type nameKey struct {
	first, last string
}

func recordIndex(d *model.Data) map[nameKey]*model.MedicalRecord {
	idx := make(map[nameKey]*model.MedicalRecord, len(d.MedicalRecords))
	for i := range d.MedicalRecords {
		r := &d.MedicalRecords[i]
		idx[nameKey{r.FirstName, r.LastName}] = r
	}
	return idx
}

// ageAt counts whole years between birthdate and on: a person born on day D
// is not N years old until the Nth anniversary of D.
func ageAt(birthdate, on time.Time) int {
	years := on.Year() - birthdate.Year()
	anniversary := time.Date(on.Year(), birthdate.Month(), birthdate.Day(), 0, 0, 0, 0, on.Location())
	if on.Before(anniversary) {
		years--
	}
	return years
}

// age returns the current whole-year age, or nil when no record exists.
func age(rec *model.MedicalRecord) *int {
	if rec == nil {
		return nil
	}
	a := ageAt(rec.Birthdate.Time, time.Now())
	return &a
}

// isChild reports whether the record belongs to someone under 18. A person
// without a record is never classified as a child.
func isChild(rec *model.MedicalRecord) bool {
	if rec == nil {
		return false
	}
	return ageAt(rec.Birthdate.Time, time.Now()) < adultAge
}

func medications(rec *model.MedicalRecord) []string {
	if rec == nil || rec.Medications == nil {
		return []string{}
	}
	return rec.Medications
}

func allergies(rec *model.MedicalRecord) []string {
	if rec == nil || rec.Allergies == nil {
		return []string{}
	}
	return rec.Allergies
}

// addressesByStation collects the distinct addresses served by a station,
// first-seen order, case-insensitive de-duplication. Empty result means the
// station is unknown; callers decide whether that is an error.
func addressesByStation(d *model.Data, station int) []string {
	var addrs []string
	seen := make(map[string]bool)
	for _, fs := range d.FireStations {
		if fs.Station != station {
			continue
		}
		k := strings.ToLower(fs.Address)
		if seen[k] {
			continue
		}
		seen[k] = true
		addrs = append(addrs, fs.Address)
	}
	return addrs
}

func atAnyAddress(p model.Person, addrs []string) bool {
	for _, a := range addrs {
		if strings.EqualFold(p.Address, a) {
			return true
		}
	}
	return false
}

// sortedSet de-duplicates and orders string results so set-valued responses
// are deterministic.
func sortedSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
