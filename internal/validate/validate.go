// Package validate enforces the field-level input constraints at the
// transport boundary. Each function returns a field→message map, nil when
// the input is valid; the handler turns a non-nil map into a 400 response.
package validate

import (
	"regexp"
	"time"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/service"
)

var (
	nameRe    = regexp.MustCompile(`^[A-Z][a-z]*(?:[ '-][A-Z][a-z-' ]*)*$`)
	addressRe = regexp.MustCompile(`^\d+ [A-Za-z\d '-]+$`)
	zipRe     = regexp.MustCompile(`^\d{5}$`)
	phoneRe   = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func checkName(errs map[string]string, field, value, label string) {
	switch {
	case value == "":
		errs[field] = label + " is mandatory"
	case len(value) < 2 || len(value) > 50:
		errs[field] = label + " must be between 2 and 50 characters"
	case !nameRe.MatchString(value):
		errs[field] = label + " must start with an uppercase letter and can only contain letters, hyphens, spaces and apostrophes"
	}
}

func checkAddress(errs map[string]string, value string) {
	switch {
	case value == "":
		errs["address"] = "Address is mandatory"
	case len(value) < 5 || len(value) > 100:
		errs["address"] = "Address must be between 5 and 100 characters"
	case !addressRe.MatchString(value):
		errs["address"] = "Address must start with a number followed by a space and then letters, numbers, spaces, hyphens or apostrophes"
	}
}

func Person(p model.Person) map[string]string {
	errs := make(map[string]string)
	checkName(errs, "firstName", p.FirstName, "First name")
	checkName(errs, "lastName", p.LastName, "Last name")
	checkAddress(errs, p.Address)
	checkName(errs, "city", p.City, "City name")
	if !zipRe.MatchString(p.Zip) {
		errs["zip"] = "Zip code must be in the format 12345"
	}
	if !phoneRe.MatchString(p.Phone) {
		errs["phone"] = "Phone number must be in the format 123-456-7890"
	}
	if !emailRe.MatchString(p.Email) {
		errs["email"] = "Email format is not respected"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func MedicalRecord(r model.MedicalRecord) map[string]string {
	errs := make(map[string]string)
	checkName(errs, "firstName", r.FirstName, "First name")
	checkName(errs, "lastName", r.LastName, "Last name")
	switch {
	case r.Birthdate.IsZero():
		errs["birthdate"] = "Birthdate is mandatory"
	case r.Birthdate.After(time.Now()):
		errs["birthdate"] = "Birthdate can't be in the future"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func FireStation(fs model.FireStation) map[string]string {
	errs := make(map[string]string)
	checkAddress(errs, fs.Address)
	if fs.Station <= 0 {
		errs["station"] = "Station must be a positive number"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func PersonName(name service.PersonName) map[string]string {
	errs := make(map[string]string)
	checkName(errs, "firstName", name.FirstName, "First name")
	checkName(errs, "lastName", name.LastName, "Last name")
	if len(errs) == 0 {
		return nil
	}
	return errs
}
