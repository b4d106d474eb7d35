package model

import "time"

// Person is a resident of the covered city. (FirstName, LastName) is the
// identity key; see the service layer for the case-sensitivity policy per
// operation.
type Person struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// MedicalRecord carries the medical data for one resident, matched to a
// Person by exact (FirstName, LastName) equality.
type MedicalRecord struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Birthdate   Date     `json:"birthdate"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// FireStation maps one covered address to a station number. Address matching
// is case-insensitive everywhere.
type FireStation struct {
	Address string `json:"address"`
	Station int    `json:"station"`
}

// Data is the whole dataset as persisted: one JSON document holding all
// three collections. Every mutation reads and rewrites it in full.
type Data struct {
	Persons        []Person        `json:"persons"`
	FireStations   []FireStation   `json:"firestations"`
	MedicalRecords []MedicalRecord `json:"medicalrecords"`
}

// Account is a dispatcher login. Accounts live in their own file, not in the
// dataset document.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}
