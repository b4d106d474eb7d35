package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"dispatch-alerts-api/internal/handler"
	"dispatch-alerts-api/internal/middleware"
	"dispatch-alerts-api/internal/store"
)

const testSecret = "test-secret"

func seedJSON() string {
	child := time.Now().AddDate(-10, 0, 0).Format("01/02/2006")
	return fmt.Sprintf(`{
  "persons": [
    {"firstName": "John", "lastName": "Boyd", "address": "1509 Culver St", "city": "Culver", "zip": "97451", "phone": "841-874-6512", "email": "jaboyd@email.com"},
    {"firstName": "Tenley", "lastName": "Boyd", "address": "1509 Culver St", "city": "Culver", "zip": "97451", "phone": "841-874-6512", "email": "tenz@email.com"}
  ],
  "firestations": [
    {"address": "1509 Culver St", "station": 3}
  ],
  "medicalrecords": [
    {"firstName": "John", "lastName": "Boyd", "birthdate": "03/06/1984", "medications": ["aznol:350mg"], "allergies": ["nillacilan"]},
    {"firstName": "Tenley", "lastName": "Boyd", "birthdate": %q, "medications": [], "allergies": ["peanut"]}
  ]
}`, child)
}

func setup(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.json")
	if err := os.WriteFile(dataFile, []byte(seedJSON()), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	st, err := store.Open(dataFile)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	accounts, err := store.OpenAccounts(filepath.Join(dir, "accounts.json"))
	if err != nil {
		t.Fatalf("open accounts: %v", err)
	}
	return handler.New(st, accounts, testSecret, zap.NewNop()).Router()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doRaw(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func validPerson() map[string]string {
	return map[string]string{
		"firstName": "Eric",
		"lastName":  "Cadigan",
		"address":   "951 LoneTree Rd",
		"city":      "Culver",
		"zip":       "97451",
		"phone":     "841-874-7458",
		"email":     "gramps@email.com",
	}
}

// ----- person CRUD -----

func TestCreatePerson(t *testing.T) {
	h := setup(t)

	if rr := do(t, h, http.MethodPost, "/person", validPerson()); rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body)
	}
	if rr := do(t, h, http.MethodPost, "/person", validPerson()); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate: got %d, want 409", rr.Code)
	}
}

func TestCreatePersonValidation(t *testing.T) {
	h := setup(t)

	p := validPerson()
	p["firstName"] = "eric"
	p["zip"] = "123"
	rr := do(t, h, http.MethodPost, "/person", p)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}

	var errs map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &errs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errs["firstName"] == "" || errs["zip"] == "" {
		t.Fatalf("missing field messages: %v", errs)
	}
}

func TestUpdatePersonNotFound(t *testing.T) {
	h := setup(t)

	if rr := do(t, h, http.MethodPut, "/person", validPerson()); rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}

func TestUpdateAndDeletePerson(t *testing.T) {
	h := setup(t)

	p := validPerson()
	p["firstName"] = "John"
	p["lastName"] = "Boyd"
	if rr := do(t, h, http.MethodPut, "/person", p); rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body)
	}

	del := map[string]string{"firstName": "John", "lastName": "Boyd"}
	if rr := do(t, h, http.MethodDelete, "/person", del); rr.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rr.Code, rr.Body)
	}
	if rr := do(t, h, http.MethodDelete, "/person", del); rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d, want 404", rr.Code)
	}
}

// ----- medical record CRUD -----

func TestCreateMedicalRecordBadDate(t *testing.T) {
	h := setup(t)

	body := `{"firstName": "Eric", "lastName": "Cadigan", "birthdate": "1945-08-06", "medications": [], "allergies": []}`
	rr := doRaw(t, h, http.MethodPost, "/medicalrecord", body)
	if rr.Code != http.StatusNotAcceptable {
		t.Fatalf("got %d, want 406", rr.Code)
	}

	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errBody.Message != "Birthdate must be in the format MM/dd/yyyy" {
		t.Fatalf("message: %q", errBody.Message)
	}
}

func TestCreateMedicalRecordFutureBirthdate(t *testing.T) {
	h := setup(t)

	future := time.Now().AddDate(1, 0, 0).Format("01/02/2006")
	body := fmt.Sprintf(`{"firstName": "Eric", "lastName": "Cadigan", "birthdate": %q, "medications": [], "allergies": []}`, future)
	rr := doRaw(t, h, http.MethodPost, "/medicalrecord", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestMedicalRecordLifecycle(t *testing.T) {
	h := setup(t)

	body := `{"firstName": "Eric", "lastName": "Cadigan", "birthdate": "08/06/1945", "medications": ["tradoxidine:400mg"], "allergies": []}`
	if rr := doRaw(t, h, http.MethodPost, "/medicalrecord", body); rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body)
	}
	if rr := doRaw(t, h, http.MethodPost, "/medicalrecord", body); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate: got %d, want 409", rr.Code)
	}
	if rr := doRaw(t, h, http.MethodPut, "/medicalrecord", body); rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body)
	}
	del := map[string]string{"firstName": "Eric", "lastName": "Cadigan"}
	if rr := do(t, h, http.MethodDelete, "/medicalrecord", del); rr.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rr.Code, rr.Body)
	}
}

// ----- fire station CRUD and queries -----

func TestFireStationLifecycle(t *testing.T) {
	h := setup(t)

	fs := map[string]any{"address": "29 15th St", "station": 2}
	if rr := do(t, h, http.MethodPost, "/firestation", fs); rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body)
	}
	if rr := do(t, h, http.MethodPost, "/firestation", fs); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate: got %d, want 409", rr.Code)
	}
	fs["station"] = 4
	if rr := do(t, h, http.MethodPut, "/firestation", fs); rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body)
	}
	if rr := do(t, h, http.MethodDelete, "/firestation", fs); rr.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rr.Code, rr.Body)
	}
}

func TestStationCoverage(t *testing.T) {
	h := setup(t)

	rr := do(t, h, http.MethodGet, "/firestation?stationnumber=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var cov struct {
		Adults   int `json:"adults"`
		Children int `json:"children"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &cov); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cov.Adults != 1 || cov.Children != 1 {
		t.Fatalf("got %d adults / %d children, want 1 / 1", cov.Adults, cov.Children)
	}

	if rr := do(t, h, http.MethodGet, "/firestation?stationnumber=99", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown station: got %d, want 404", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/firestation?stationnumber=abc", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad number: got %d, want 400", rr.Code)
	}
}

func TestFloodStations(t *testing.T) {
	h := setup(t)

	// an unknown station in the list yields an empty entry, not a 404
	rr := do(t, h, http.MethodGet, "/flood/stations?stations=3,99", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var homes []struct {
		Station int                        `json:"station"`
		Homes   map[string]json.RawMessage `json:"homes"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &homes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(homes) != 2 {
		t.Fatalf("got %d entries, want 2", len(homes))
	}
	if len(homes[0].Homes) != 1 || len(homes[1].Homes) != 0 {
		t.Fatalf("got %+v", homes)
	}

	if rr := do(t, h, http.MethodGet, "/flood/stations?stations=3,x", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad list: got %d, want 400", rr.Code)
	}
}

func TestPhoneAlert(t *testing.T) {
	h := setup(t)

	rr := do(t, h, http.MethodGet, "/phonealert?firestation=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var phones []string
	if err := json.Unmarshal(rr.Body.Bytes(), &phones); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(phones) != 1 || phones[0] != "841-874-6512" {
		t.Fatalf("got %v", phones)
	}

	// same station resolution as coverage, so the 404 couples through
	if rr := do(t, h, http.MethodGet, "/phonealert?firestation=99", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown station: got %d, want 404", rr.Code)
	}
}

func TestFire(t *testing.T) {
	h := setup(t)

	rr := do(t, h, http.MethodGet, "/fire?address=1509%20Culver%20St", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var res struct {
		Station int               `json:"station"`
		Persons []json.RawMessage `json:"persons"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Station != 3 || len(res.Persons) != 2 {
		t.Fatalf("got station %d with %d persons", res.Station, len(res.Persons))
	}

	if rr := do(t, h, http.MethodGet, "/fire?address=1%20Nowhere%20St", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown address: got %d, want 404", rr.Code)
	}
}

// ----- person queries -----

func TestPersonInfo(t *testing.T) {
	h := setup(t)

	rr := do(t, h, http.MethodGet, "/personinfo?lastname=boyd", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var infos []struct {
		FirstName string `json:"firstName"`
		Age       *int   `json:"age"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d infos, want 2", len(infos))
	}

	if rr := do(t, h, http.MethodGet, "/personinfo?lastname=Zemicks", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown lastname: got %d, want 404", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/personinfo", nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("missing param: got %d, want 400", rr.Code)
	}
}

func TestCommunityEmail(t *testing.T) {
	h := setup(t)

	rr := do(t, h, http.MethodGet, "/communityemail?city=Culver", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var emails []string
	if err := json.Unmarshal(rr.Body.Bytes(), &emails); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("got %v", emails)
	}
}

func TestChildAlert(t *testing.T) {
	h := setup(t)

	rr := do(t, h, http.MethodGet, "/childalert?address=1509%20Culver%20St", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body)
	}
	var children []struct {
		FirstName     string   `json:"firstName"`
		Age           int      `json:"age"`
		FamilyMembers []string `json:"familyMembers"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &children); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(children) != 1 || children[0].FirstName != "Tenley" {
		t.Fatalf("got %+v", children)
	}
	if len(children[0].FamilyMembers) != 1 || children[0].FamilyMembers[0] != "John Boyd" {
		t.Fatalf("family: %v", children[0].FamilyMembers)
	}
}

// ----- auth -----

func TestRegisterAndLogin(t *testing.T) {
	h := setup(t)

	reg := map[string]string{"email": "dispatcher@culver.gov", "password": "longenough", "name": "Dispatcher"}
	rr := do(t, h, http.MethodPost, "/auth/register", reg)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body)
	}
	var tok struct {
		AccountID string `json:"accountId"`
		Token     string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &tok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok.AccountID == "" || tok.Token == "" {
		t.Fatal("empty account id or token")
	}

	// duplicate email conflicts without saying why
	if rr := do(t, h, http.MethodPost, "/auth/register", reg); rr.Code != http.StatusConflict {
		t.Fatalf("duplicate register: got %d, want 409", rr.Code)
	}

	login := map[string]string{"email": "dispatcher@culver.gov", "password": "longenough"}
	if rr := do(t, h, http.MethodPost, "/auth/login", login); rr.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rr.Code, rr.Body)
	}

	login["password"] = "wrong-password"
	if rr := do(t, h, http.MethodPost, "/auth/login", login); rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: got %d, want 401", rr.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := setup(t)

	tests := []struct {
		name string
		req  map[string]string
	}{
		{"empty email", map[string]string{"email": "", "password": "longenough", "name": "X"}},
		{"empty password", map[string]string{"email": "a@b.com", "password": "", "name": "X"}},
		{"short password", map[string]string{"email": "a@b.com", "password": "short", "name": "X"}},
		{"empty name", map[string]string{"email": "a@b.com", "password": "longenough", "name": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := do(t, h, http.MethodPost, "/auth/register", tt.req); rr.Code != http.StatusBadRequest {
				t.Fatalf("got %d, want 400", rr.Code)
			}
		})
	}
}

func TestRequireAuthOnMutations(t *testing.T) {
	h := middleware.RequireAuth(testSecret)(setup(t))

	// reads stay open
	if rr := do(t, h, http.MethodGet, "/personinfo?lastname=Boyd", nil); rr.Code != http.StatusOK {
		t.Fatalf("read: got %d, want 200", rr.Code)
	}
	// mutations need a token
	if rr := do(t, h, http.MethodPost, "/person", validPerson()); rr.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: got %d, want 401", rr.Code)
	}

	// register, then mutate with the issued token
	reg := map[string]string{"email": "dispatcher@culver.gov", "password": "longenough", "name": "Dispatcher"}
	rr := do(t, h, http.MethodPost, "/auth/register", reg)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rr.Code, rr.Body)
	}
	var tok struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &tok); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(validPerson()); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/person", &buf)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("authenticated create: %d %s", rec.Code, rec.Body)
	}
}
