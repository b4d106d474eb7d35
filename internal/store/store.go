// Package store persists the dataset as a single JSON document. Every read
// deserializes the whole file and every mutation rewrites it in full; a
// RWMutex serializes read-modify-write cycles so concurrent requests cannot
// lose each other's writes.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"dispatch-alerts-api/internal/model"
)

var ErrReadFailed = errors.New("dataset read failed")
var ErrWriteFailed = errors.New("dataset write failed")

type Store struct {
	mu   sync.RWMutex
	path string
}

// Open verifies that the backing document exists and parses before the
// server starts taking requests. A missing or malformed file is a startup
// failure, not a per-request error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := s.Read(); err != nil {
		return nil, err
	}
	return s, nil
}

// Read returns a fresh snapshot of the dataset. Callers own the returned
// value; nothing is cached between calls.
func (s *Store) Read() (*model.Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Update runs fn inside a single read-modify-write cycle under the write
// lock. If fn returns an error the document is left untouched.
func (s *Store) Update(fn func(*model.Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return writeFile(s.path, data)
}

func (s *Store) read() (*model.Data, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(ErrReadFailed, "read %s: %v", s.path, err)
	}
	data := &model.Data{}
	if err := json.Unmarshal(b, data); err != nil {
		if errors.Is(err, model.ErrDateFormat) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrReadFailed, "unmarshal %s: %v", s.path, err)
	}
	return data, nil
}

func writeFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "marshal: %v", err)
	}
	b = append(b, '\n')

	// temp file + rename so a crash mid-write never leaves a partial document
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "create temp: %v", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.Wrapf(ErrWriteFailed, "write %s: %v", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(ErrWriteFailed, "sync %s: %v", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(ErrWriteFailed, "close %s: %v", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(ErrWriteFailed, "rename to %s: %v", path, err)
	}
	return nil
}

// SortPersons orders persons by (lastName, firstName). Applied after create
// only, to keep the on-disk file in a stable, reviewable order.
func SortPersons(d *model.Data) {
	sort.SliceStable(d.Persons, func(i, j int) bool {
		a, b := d.Persons[i], d.Persons[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})
}

// SortMedicalRecords orders medical records by (lastName, firstName).
func SortMedicalRecords(d *model.Data) {
	sort.SliceStable(d.MedicalRecords, func(i, j int) bool {
		a, b := d.MedicalRecords[i], d.MedicalRecords[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})
}

// SortFireStations orders fire stations by station number.
func SortFireStations(d *model.Data) {
	sort.SliceStable(d.FireStations, func(i, j int) bool {
		return d.FireStations[i].Station < d.FireStations[j].Station
	})
}
