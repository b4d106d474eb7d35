package service

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"dispatch-alerts-api/internal/model"
	"dispatch-alerts-api/internal/store"
)

// PersonService owns CRUD over the person collection and the person-centric
// read queries. Identity policy: create and update match names exactly,
// delete and the read queries match case-insensitively.
type PersonService struct {
	store *store.Store
	log   *zap.Logger
}

func NewPersonService(st *store.Store, log *zap.Logger) *PersonService {
	return &PersonService{store: st, log: log}
}

func (s *PersonService) Create(p model.Person) error {
	s.log.Info("creating person", zap.String("firstName", p.FirstName), zap.String("lastName", p.LastName))

	return s.store.Update(func(d *model.Data) error {
		for _, existing := range d.Persons {
			if existing.FirstName == p.FirstName && existing.LastName == p.LastName {
				s.log.Error("person already exists", zap.String("firstName", p.FirstName), zap.String("lastName", p.LastName))
				return errors.Wrapf(ErrAlreadyExists, "%s %s", p.FirstName, p.LastName)
			}
		}
		d.Persons = append(d.Persons, p)
		store.SortPersons(d)
		return nil
	})
}

func (s *PersonService) Update(p model.Person) error {
	s.log.Info("updating person", zap.String("firstName", p.FirstName), zap.String("lastName", p.LastName))

	return s.store.Update(func(d *model.Data) error {
		for i, existing := range d.Persons {
			if existing.FirstName == p.FirstName && existing.LastName == p.LastName {
				d.Persons[i] = p
				return nil
			}
		}
		s.log.Error("person not found", zap.String("firstName", p.FirstName), zap.String("lastName", p.LastName))
		return errors.Wrapf(ErrNotFound, "%s %s", p.FirstName, p.LastName)
	})
}

func (s *PersonService) Delete(name PersonName) error {
	s.log.Info("deleting person", zap.String("firstName", name.FirstName), zap.String("lastName", name.LastName))

	return s.store.Update(func(d *model.Data) error {
		for i, existing := range d.Persons {
			if strings.EqualFold(existing.FirstName, name.FirstName) && strings.EqualFold(existing.LastName, name.LastName) {
				d.Persons = append(d.Persons[:i], d.Persons[i+1:]...)
				return nil
			}
		}
		s.log.Error("person not found", zap.String("firstName", name.FirstName), zap.String("lastName", name.LastName))
		return errors.Wrapf(ErrNotFound, "%s %s", name.FirstName, name.LastName)
	})
}

// InfoByLastName returns every person with the given last name
// (case-insensitive), joined with their medical record.
func (s *PersonService) InfoByLastName(lastname string) ([]PersonInfo, error) {
	s.log.Info("getting persons by lastname", zap.String("lastname", lastname))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	idx := recordIndex(d)

	var infos []PersonInfo
	for _, p := range d.Persons {
		if !strings.EqualFold(p.LastName, lastname) {
			continue
		}
		rec := idx[nameKey{p.FirstName, p.LastName}]
		infos = append(infos, PersonInfo{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Address:     p.Address,
			Email:       p.Email,
			Age:         age(rec),
			Medications: medications(rec),
			Allergies:   allergies(rec),
		})
	}
	if len(infos) == 0 {
		s.log.Error("lastname not found", zap.String("lastname", lastname))
		return nil, errors.Wrapf(ErrNotFound, "lastname %s", lastname)
	}
	return infos, nil
}

// EmailsByCity returns the distinct emails of everyone living in the city
// (case-insensitive), sorted.
func (s *PersonService) EmailsByCity(city string) ([]string, error) {
	s.log.Info("getting emails by city", zap.String("city", city))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	var emails []string
	for _, p := range d.Persons {
		if strings.EqualFold(p.City, city) {
			emails = append(emails, p.Email)
		}
	}
	if len(emails) == 0 {
		s.log.Error("city not found", zap.String("city", city))
		return nil, errors.Wrapf(ErrNotFound, "city %s", city)
	}
	return sortedSet(emails), nil
}

// ChildrenByAddress lists the children at an address along with their other
// household members. The existence check runs before the age filter: an
// unknown address is NotFound, an address housing only adults is an empty
// list.
func (s *PersonService) ChildrenByAddress(address string) ([]ChildInfo, error) {
	s.log.Info("getting children by address", zap.String("address", address))

	d, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	addressExists := false
	for _, p := range d.Persons {
		if strings.EqualFold(p.Address, address) {
			addressExists = true
			break
		}
	}
	if !addressExists {
		s.log.Error("address not found", zap.String("address", address))
		return nil, errors.Wrapf(ErrNotFound, "address %s", address)
	}

	idx := recordIndex(d)
	children := []ChildInfo{}
	for _, p := range d.Persons {
		if !strings.EqualFold(p.Address, address) {
			continue
		}
		rec := idx[nameKey{p.FirstName, p.LastName}]
		if !isChild(rec) {
			continue
		}
		family := []string{}
		for _, member := range d.Persons {
			if member.LastName == p.LastName && member.FirstName != p.FirstName {
				family = append(family, member.FirstName+" "+member.LastName)
			}
		}
		children = append(children, ChildInfo{
			FirstName:     p.FirstName,
			LastName:      p.LastName,
			Age:           *age(rec),
			FamilyMembers: family,
		})
	}
	return children, nil
}
