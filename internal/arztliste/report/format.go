package report

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/domain"
)

var weekdays = [...]string{
	time.Sunday:    "So",
	time.Monday:    "Mo",
	time.Tuesday:   "Di",
	time.Wednesday: "Mi",
	time.Thursday:  "Do",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
}

// Weekday returns the German two-letter abbreviation of d's weekday
func Weekday(d civil.Date) string {
	return weekdays[d.In(time.UTC).Weekday()]
}

// DateLabel renders "Wd DD.MM", e.g. "Mo 05.06"
func DateLabel(d civil.Date) string {
	return Weekday(d) + " " + d.In(time.UTC).Format("02.01")
}

// DayCell renders one consultation day as "Wd DD.MM: " followed by its hours.
// With labelled set, each type's ranges are prefixed by the type's display label.
func DayCell(day domain.ConsultationDay, labelled bool) string {
	var b strings.Builder
	b.WriteString(DateLabel(day.Date))
	b.WriteString(": ")

	parts := make([]string, 0, len(day.Hours))
	for _, h := range day.Hours {
		ranges := formatRanges(h.Times)
		if labelled {
			parts = append(parts, h.Type.String()+": "+ranges)
			continue
		}
		parts = append(parts, ranges)
	}
	b.WriteString(strings.Join(parts, " "))
	return b.String()
}

func formatRanges(frames []domain.TimeFrame) string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.String()
	}
	return strings.Join(out, " ")
}
