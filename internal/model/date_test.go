package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("12/29/2000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year() != 2000 || d.Month() != time.December || d.Day() != 29 {
		t.Fatalf("got %v", d)
	}
}

func TestParseDateBadFormat(t *testing.T) {
	tests := []string{"2000-12-29", "29/12/2000", "12-29-2000", "not a date", "13/01/2000"}
	for _, s := range tests {
		if _, err := ParseDate(s); !errors.Is(err, ErrDateFormat) {
			t.Errorf("ParseDate(%q): want ErrDateFormat, got %v", s, err)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	rec := MedicalRecord{
		FirstName: "John",
		LastName:  "Boyd",
		Birthdate: NewDate(1984, time.March, 6),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got MedicalRecord
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Birthdate.Equal(rec.Birthdate.Time) {
		t.Fatalf("round trip: got %v want %v", got.Birthdate, rec.Birthdate)
	}
}

func TestDateUnmarshalBadFormat(t *testing.T) {
	var rec MedicalRecord
	err := json.Unmarshal([]byte(`{"firstName":"X","lastName":"Y","birthdate":"1984-03-06"}`), &rec)
	if !errors.Is(err, ErrDateFormat) {
		t.Fatalf("want ErrDateFormat, got %v", err)
	}
}
