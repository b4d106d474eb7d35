package service

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/store"
)

// FireStationService owns CRUD over the fire station collection and the
// coverage queries. Create and delete match on (address, station), update on
// address alone since one address maps to one station in practice. Address
// matching is always case-insensitive.
type FireStationService struct {
	store *store.Store
	log   *zap.Logger
}

func NewFireStationService(st *store.Store, log *zap.Logger) *FireStationService {
	return &FireStationService{store: st, log: log}
}

func (s *FireStationService) Create(fs model.FireStation) error {
	s.log.Info("creating fire station", zap.String("address", fs.Address), zap.Int("station", fs.Station))

	return s.store.Update(func(d *model.Data) error {
		for _, existing := range d.FireStations {
			if strings.EqualFold(existing.Address, fs.Address) && existing.Station == fs.Station {
				s.log.Error("fire station already exists", zap.String("address", fs.Address), zap.Int("station", fs.Station))
				return errors.Wrapf(ErrAlreadyExists, "station %d at %s", fs.Station, fs.Address)
			}
		}
		d.FireStations = append(d.FireStations, fs)
		store.SortFireStations(d)
		return nil
	})
}

func (s *FireStationService) Update(fs model.FireStation) error {
	s.log.Info("updating fire station", zap.String("address", fs.Address), zap.Int("station", fs.Station))

	return s.store.Update(func(d *model.Data) error {
		for i, existing := range d.FireStations {
			if strings.EqualFold(existing.Address, fs.Address) {
				d.FireStations[i] = fs
				return nil
			}
		}
		s.log.Error("fire station not found", zap.String("address", fs.Address))
		return errors.Wrapf(ErrNotFound, "no fire station at %s", fs.Address)
	})
}

func (s *FireStationService) Delete(fs model.FireStation) error {
	s.log.Info("deleting fire station", zap.String("address", fs.Address), zap.Int("station", fs.Station))

	return s.store.Update(func(d *model.Data) error {
		for i, existing := range d.FireStations {
			if strings.EqualFold(existing.Address, fs.Address) && existing.Station == fs.Station {
				d.FireStations = append(d.FireStations[:i], d.FireStations[i+1:]...)
				return nil
			}
		}
		s.log.Error("fire station not found", zap.String("address", fs.Address), zap.Int("station", fs.Station))
		return errors.Wrapf(ErrNotFound, "station %d at %s", fs.Station, fs.Address)
	})
}

// CoverageByStation lists everyone at the station's addresses and partitions
// them into adults and children. Unknown stations are NotFound.
func (s *FireStationService) CoverageByStation(station int) (*StationCoverage, error) {
	s.log.Info("getting station coverage", zap.Int("station", station))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	addrs := addressesByStation(d, station)
	if len(addrs) == 0 {
		s.log.Error("station not found", zap.Int("station", station))
		return nil, errors.Wrapf(ErrNotFound, "station %d", station)
	}

	idx := recordIndex(d)
	cov := &StationCoverage{Persons: []CoveredPerson{}}
	for _, p := range d.Persons {
		if !atAnyAddress(p, addrs) {
			continue
		}
		cov.Persons = append(cov.Persons, CoveredPerson{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Address:   p.Address,
			Phone:     p.Phone,
		})
		if isChild(idx[nameKey{p.FirstName, p.LastName}]) {
			cov.Children++
		}
	}
	cov.Adults = len(cov.Persons) - cov.Children
	return cov, nil
}

// HomesByStations groups each requested station's residents by address. An
// unknown station yields an empty home map, not an error; that asymmetry
// with CoverageByStation is deliberate and covered by tests.
func (s *FireStationService) HomesByStations(stations []int) ([]StationHomes, error) {
	s.log.Info("getting homes by stations", zap.Ints("stations", stations))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	idx := recordIndex(d)

	out := make([]StationHomes, 0, len(stations))
	for _, station := range stations {
		addrs := addressesByStation(d, station)
		homes := make(map[string][]ResidentMedicalInfo)
		for _, p := range d.Persons {
			if !atAnyAddress(p, addrs) {
				continue
			}
			rec := idx[nameKey{p.FirstName, p.LastName}]
			homes[p.Address] = append(homes[p.Address], ResidentMedicalInfo{
				FirstName:   p.FirstName,
				LastName:    p.LastName,
				Phone:       p.Phone,
				Age:         age(rec),
				Medications: medications(rec),
				Allergies:   allergies(rec),
			})
		}
		out = append(out, StationHomes{Station: station, Homes: homes})
	}
	return out, nil
}

// PhonesByStation returns the distinct phone numbers behind a station's
// addresses, sorted. Unknown stations propagate NotFound from address
// resolution.
func (s *FireStationService) PhonesByStation(station int) ([]string, error) {
	s.log.Info("getting phones by station", zap.Int("station", station))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	addrs := addressesByStation(d, station)
	if len(addrs) == 0 {
		s.log.Error("station not found", zap.Int("station", station))
		return nil, errors.Wrapf(ErrNotFound, "station %d", station)
	}

	var phones []string
	for _, p := range d.Persons {
		if atAnyAddress(p, addrs) {
			phones = append(phones, p.Phone)
		}
	}
	return sortedSet(phones), nil
}

// ResidentsByAddress returns everyone at an address with medical-derived
// fields, paired with the covering station. NotFound when no station is
// registered at the address.
func (s *FireStationService) ResidentsByAddress(address string) (*AddressResidents, error) {
	s.log.Info("getting residents by address", zap.String("address", address))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	station := 0
	found := false
	for _, fs := range d.FireStations {
		if strings.EqualFold(fs.Address, address) {
			station = fs.Station
			found = true
			break
		}
	}
	if !found {
		s.log.Error("no station for address", zap.String("address", address))
		return nil, errors.Wrapf(ErrNotFound, "no station for address %s", address)
	}

	idx := recordIndex(d)
	residents := []ResidentMedicalInfo{}
	for _, p := range d.Persons {
		if !strings.EqualFold(p.Address, address) {
			continue
		}
		rec := idx[nameKey{p.FirstName, p.LastName}]
		residents = append(residents, ResidentMedicalInfo{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Phone:       p.Phone,
			Age:         age(rec),
			Medications: medications(rec),
			Allergies:   allergies(rec),
		})
	}
	return &AddressResidents{Station: station, Persons: residents}, nil
}
