package pipeline

import (
	"slices"

	"github.com/medflow/arztliste/internal/arztliste/domain"
)

// SortKey is a doctor's earliest consultation of the sort type.
// Present is false when the doctor has none.
type SortKey struct {
	Hours   domain.ConsultationHours
	Present bool
}

// KeyOf returns the minimum consultation of the given type across all days
func KeyOf(d domain.Doctor, typ domain.ConsultationType) SortKey {
	var key SortKey
	for _, day := range d.Days {
		for _, h := range day.Hours {
			if h.Type != typ {
				continue
			}
			if !key.Present || domain.CompareHours(h, key.Hours) < 0 {
				key = SortKey{Hours: h, Present: true}
			}
		}
	}
	return key
}

// CompareKeys orders sort keys. An absent key is smaller than any present one.
func CompareKeys(a, b SortKey) int {
	switch {
	case !a.Present && !b.Present:
		return 0
	case !a.Present:
		return -1
	case !b.Present:
		return 1
	}
	return domain.CompareHours(a.Hours, b.Hours)
}

// SortByEarliest returns the doctors ordered by their earliest consultation
// of typ. Doctors with equal keys keep their relative order.
func SortByEarliest(doctors []domain.Doctor, typ domain.ConsultationType) []domain.Doctor {
	type keyed struct {
		doctor domain.Doctor
		key    SortKey
	}

	items := make([]keyed, len(doctors))
	for i, d := range doctors {
		items[i] = keyed{doctor: clone(d), key: KeyOf(d, typ)}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return CompareKeys(a.key, b.key)
	})

	out := make([]domain.Doctor, len(items))
	for i, it := range items {
		out[i] = it.doctor
	}
	return out
}
