// Package pipeline filters, prunes and orders decoded doctors for the report.
//
// Every function here is pure: inputs are never modified and results share no
// slices with them.
package pipeline

import (
	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/domain"
)

// Criteria selects which doctors and which consultation hours reach the report
type Criteria struct {
	NamesToExclude        domain.Set[string]
	PhoneNumbersToExclude domain.Set[string]
	Types                 domain.Set[domain.ConsultationType]
	// PeriodDays restricts days to [today, today+N]. Nil keeps every day from today on.
	PeriodDays *int
}

// Window is an inclusive range of calendar days. A zero To is open-ended.
type Window struct {
	From civil.Date
	To   civil.Date
}

// NewWindow builds the window starting at today for an optional day count
func NewWindow(today civil.Date, periodDays *int) Window {
	w := Window{From: today}
	if periodDays != nil {
		w.To = today.AddDays(*periodDays)
	}
	return w
}

// Contains reports whether d lies inside the window
func (w Window) Contains(d civil.Date) bool {
	if d.Before(w.From) {
		return false
	}
	return w.To.IsZero() || !d.After(w.To)
}

// Filter runs every stage in order: identity exclusion, date-window check and
// pruning, type check and pruning. today must be evaluated once per run.
func Filter(doctors []domain.Doctor, c Criteria, today civil.Date) []domain.Doctor {
	window := NewWindow(today, c.PeriodDays)

	out := ExcludeIdentities(doctors, c.NamesToExclude, c.PhoneNumbersToExclude)
	out = RestrictToWindow(out, window)
	out = SelectTypes(out, c.Types)
	return out
}

// ExcludeIdentities drops doctors whose name is excluded or whose phone or
// mobile number is excluded. An absent number never matches.
func ExcludeIdentities(doctors []domain.Doctor, names, phones domain.Set[string]) []domain.Doctor {
	out := make([]domain.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if names.Contains(d.Name) {
			continue
		}
		if d.Contact.Phone != "" && phones.Contains(d.Contact.Phone) {
			continue
		}
		if d.Contact.Mobile != "" && phones.Contains(d.Contact.Mobile) {
			continue
		}
		out = append(out, clone(d))
	}
	return out
}

// RestrictToWindow keeps doctors with at least one day inside the window and
// prunes their days to the window
func RestrictToWindow(doctors []domain.Doctor, w Window) []domain.Doctor {
	out := make([]domain.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if !hasDayWithin(d, w) {
			continue
		}
		out = append(out, withDaysWithin(d, w))
	}
	return out
}

// SelectTypes keeps doctors with at least one consultation of a selected type,
// removes every other consultation and drops days left empty
func SelectTypes(doctors []domain.Doctor, types domain.Set[domain.ConsultationType]) []domain.Doctor {
	out := make([]domain.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if !hasTypeIn(d, types) {
			continue
		}
		out = append(out, withTypesIn(d, types))
	}
	return out
}

func hasDayWithin(d domain.Doctor, w Window) bool {
	for _, day := range d.Days {
		if w.Contains(day.Date) {
			return true
		}
	}
	return false
}

func withDaysWithin(d domain.Doctor, w Window) domain.Doctor {
	days := make([]domain.ConsultationDay, 0, len(d.Days))
	for _, day := range d.Days {
		if w.Contains(day.Date) {
			days = append(days, cloneDay(day))
		}
	}
	d.Days = days
	return d
}

func hasTypeIn(d domain.Doctor, types domain.Set[domain.ConsultationType]) bool {
	for _, day := range d.Days {
		for _, h := range day.Hours {
			if types.Contains(h.Type) {
				return true
			}
		}
	}
	return false
}

func withTypesIn(d domain.Doctor, types domain.Set[domain.ConsultationType]) domain.Doctor {
	days := make([]domain.ConsultationDay, 0, len(d.Days))
	for _, day := range d.Days {
		var hours []domain.ConsultationHours
		for _, h := range day.Hours {
			if types.Contains(h.Type) {
				hours = append(hours, cloneHours(h))
			}
		}
		if len(hours) == 0 {
			continue
		}
		days = append(days, domain.ConsultationDay{Date: day.Date, Hours: hours})
	}
	d.Days = days
	return d
}

func clone(d domain.Doctor) domain.Doctor {
	days := make([]domain.ConsultationDay, len(d.Days))
	for i, day := range d.Days {
		days[i] = cloneDay(day)
	}
	d.Days = days
	return d
}

func cloneDay(day domain.ConsultationDay) domain.ConsultationDay {
	hours := make([]domain.ConsultationHours, len(day.Hours))
	for i, h := range day.Hours {
		hours[i] = cloneHours(h)
	}
	return domain.ConsultationDay{Date: day.Date, Hours: hours}
}

func cloneHours(h domain.ConsultationHours) domain.ConsultationHours {
	times := make([]domain.TimeFrame, len(h.Times))
	copy(times, h.Times)
	return domain.ConsultationHours{Type: h.Type, Times: times}
}
