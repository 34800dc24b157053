package domain

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Doctor is a medical practice record taken from the export
type Doctor struct {
	Name    string
	Contact ContactData
	Address Address
	// Days are kept in source order, which is chronological in the export.
	Days []ConsultationDay
}

// ContactData holds the practice's contact channels. Empty means absent.
type ContactData struct {
	Phone  string
	Email  string
	Mobile string
}

// Address holds the practice's postal address. Empty means absent.
type Address struct {
	Street       string
	StreetNumber string
	ZipCode      string
	City         string
}

// ConsultationDay groups all consultation hours of one calendar day
type ConsultationDay struct {
	Date  civil.Date
	Hours []ConsultationHours
}

// ConsultationHours pairs a type with its time intervals on one day
type ConsultationHours struct {
	Type  ConsultationType
	Times []TimeFrame
}

// TimeFrame is a start/end clock time pair. Start < End is not enforced.
type TimeFrame struct {
	Start civil.Time
	End   civil.Time
}

// String renders the frame as "HH:MM - HH:MM"
func (f TimeFrame) String() string {
	return FormatClock(f.Start) + " - " + FormatClock(f.End)
}

// FormatClock renders a clock time as 24-hour "HH:MM"
func FormatClock(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// CompareClock orders two clock times, returning -1, 0 or +1
func CompareClock(a, b civil.Time) int {
	switch {
	case a.Hour != b.Hour:
		return sign(a.Hour - b.Hour)
	case a.Minute != b.Minute:
		return sign(a.Minute - b.Minute)
	case a.Second != b.Second:
		return sign(a.Second - b.Second)
	default:
		return sign(a.Nanosecond - b.Nanosecond)
	}
}

// Earliest returns the frame with the smallest start, ties broken by end.
// ok is false when there are no frames.
func (h ConsultationHours) Earliest() (earliest TimeFrame, ok bool) {
	for i, f := range h.Times {
		if i == 0 || compareFrames(f, earliest) < 0 {
			earliest = f
		}
	}
	return earliest, len(h.Times) > 0
}

func compareFrames(a, b TimeFrame) int {
	if c := CompareClock(a.Start, b.Start); c != 0 {
		return c
	}
	return CompareClock(a.End, b.End)
}

// CompareHours orders consultation hours by their earliest frame.
// Hours without any frame sort after hours with one.
func CompareHours(a, b ConsultationHours) int {
	ea, okA := a.Earliest()
	eb, okB := b.Earliest()
	switch {
	case !okA && !okB:
		return 0
	case !okB:
		return -1
	case !okA:
		return 1
	}
	return compareFrames(ea, eb)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
