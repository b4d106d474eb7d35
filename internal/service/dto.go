package service

// PersonName identifies a person for delete requests.
type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PersonInfo is one entry of the person-info query. Age is nil when the
// person has no medical record on file.
type PersonInfo struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Address     string   `json:"address"`
	Email       string   `json:"email"`
	Age         *int     `json:"age,omitempty"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// ChildInfo is one child of the child-alert query, with the other household
// members sharing their last name.
type ChildInfo struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Age           int      `json:"age"`
	FamilyMembers []string `json:"familyMembers"`
}

// CoveredPerson is the brief listing used by the station-coverage query.
type CoveredPerson struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// StationCoverage partitions a station's residents into adults and children.
type StationCoverage struct {
	Adults   int             `json:"adults"`
	Children int             `json:"children"`
	Persons  []CoveredPerson `json:"persons"`
}

// ResidentMedicalInfo is a resident annotated with medical-derived fields,
// used by the fire and flood queries.
type ResidentMedicalInfo struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Phone       string   `json:"phone"`
	Age         *int     `json:"age,omitempty"`
	Medications []string `json:"medications"`
	Allergies   []string `json:"allergies"`
}

// StationHomes groups one station's residents by address.
type StationHomes struct {
	Station int                              `json:"station"`
	Homes   map[string][]ResidentMedicalInfo `json:"homes"`
}

// AddressResidents pairs the residents of one address with the station
// covering it.
type AddressResidents struct {
	Station int                   `json:"station"`
	Persons []ResidentMedicalInfo `json:"persons"`
}
