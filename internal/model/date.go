package model

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format for birthdates.
const DateLayout = "01/02/2006"

// ErrDateFormat marks a birthdate that does not parse as MM/dd/yyyy. The
// handler maps it to its own status (406), distinct from field validation.
var ErrDateFormat = errors.New("birthdate must be in the format MM/dd/yyyy")

// Date is a calendar date with no time-of-day, serialized as MM/dd/yyyy.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.Wrapf(ErrDateFormat, "parse %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
