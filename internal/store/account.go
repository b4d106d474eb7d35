package store

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"dispatch-alerts-api/internal/model"
)

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")

// AccountStore keeps dispatcher logins in their own JSON file, separate from
// the dataset document.
type AccountStore struct {
	mu   sync.RWMutex
	path string
}

// OpenAccounts creates the accounts file when it does not exist yet.
func OpenAccounts(path string) (*AccountStore, error) {
	s := &AccountStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeFile(path, []model.Account{}); err != nil {
			return nil, err
		}
	}
	if _, err := s.readAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AccountStore) readAll() ([]model.Account, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFailed, "read %s: %v", s.path, err)
	}
	var accounts []model.Account
	if err := json.Unmarshal(b, &accounts); err != nil {
		return nil, errors.Wrapf(ErrReadFailed, "unmarshal %s: %v", s.path, err)
	}
	return accounts, nil
}

// Create appends a new account. Email matching is case-insensitive.
func (s *AccountStore) Create(a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAll()
	if err != nil {
		return err
	}
	for _, existing := range accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return errors.Wrap(ErrAccountExists, a.Email)
		}
	}
	accounts = append(accounts, a)
	return writeFile(s.path, accounts)
}

// ByEmail returns the account registered under the given email.
func (s *AccountStore) ByEmail(email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if strings.EqualFold(accounts[i].Email, email) {
			return &accounts[i], nil
		}
	}
	return nil, errors.Wrap(ErrAccountNotFound, email)
}
