package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

// ExportFixture is a practice export as produced by the upstream system
type ExportFixture struct {
	Doctors []DoctorFixture `json:"arztPraxisDatas"`
}

// DoctorFixture represents one practice entry of an export
type DoctorFixture struct {
	NoHours bool         `json:"keineSprechzeiten"`
	Name    string       `json:"name,omitempty"`
	Phone   string       `json:"tel,omitempty"`
	Mobile  string       `json:"handy,omitempty"`
	Email   string       `json:"email,omitempty"`
	Street  string       `json:"strasse,omitempty"`
	Number  string       `json:"hausnummer,omitempty"`
	ZipCode string       `json:"plz,omitempty"`
	City    string       `json:"ort,omitempty"`
	Days    []DayFixture `json:"tsz,omitempty"`
}

// DayFixture represents one calendar day of a practice entry
type DayFixture struct {
	Day     string         `json:"d"`
	Weekday string         `json:"t,omitempty"`
	Hours   []HoursFixture `json:"tszDesTyps"`
}

// HoursFixture lists the intervals of one consultation type
type HoursFixture struct {
	Label string         `json:"typ"`
	Times []FrameFixture `json:"sprechzeiten,omitempty"`
}

// FrameFixture holds one "HH:MM-HH:MM" interval
type FrameFixture struct {
	Time string `json:"zeit"`
}

// NewDoctorFixture creates a practice with contact data derived from name
func NewDoctorFixture(name string, days ...DayFixture) DoctorFixture {
	return DoctorFixture{
		Name:    name,
		Phone:   "0711 100200",
		Email:   "praxis@example.de",
		Street:  "Hauptstraße",
		Number:  "1",
		ZipCode: "70173",
		City:    "Stuttgart",
		Days:    days,
	}
}

// NewDayFixture renders date in the export's year-less "D.M" form
func NewDayFixture(date civil.Date, hours ...HoursFixture) DayFixture {
	return DayFixture{
		Day:   fmt.Sprintf("%d.%d", date.Day, int(date.Month)),
		Hours: hours,
	}
}

// NewHoursFixture creates a type listing, e.g. NewHoursFixture("Sprechstunde", "08:00-12:00")
func NewHoursFixture(label string, times ...string) HoursFixture {
	h := HoursFixture{Label: label}
	for _, ts := range times {
		h.Times = append(h.Times, FrameFixture{Time: ts})
	}
	return h
}

// NewExportFixture wraps doctors in an export document
func NewExportFixture(doctors ...DoctorFixture) ExportFixture {
	return ExportFixture{Doctors: doctors}
}

// JSON returns the export document
func (e ExportFixture) JSON() []byte {
	return MustJSONBytes(e)
}

// WriteFile writes data to name inside a per-test temp directory and returns its path
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
