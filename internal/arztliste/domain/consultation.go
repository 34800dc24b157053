package domain

import (
	"fmt"
	"strings"
)

// ConsultationType is the category of a consultation-hour listing
type ConsultationType int

const (
	ConsultationTypePhone ConsultationType = iota
	ConsultationTypeRegular
	ConsultationTypeAppointment
	ConsultationTypeWithoutAppointment
	ConsultationTypeOpen
)

// PrimarySortType is the type whose earliest slot orders the report
const PrimarySortType = ConsultationTypePhone

var consultationTypes = []struct {
	typ   ConsultationType
	name  string
	label string
}{
	{ConsultationTypePhone, "PHONE", "Telefonische Erreichbarkeit"},
	{ConsultationTypeRegular, "REGULAR", "Sprechstunde"},
	{ConsultationTypeAppointment, "APPOINTMENT", "Sprechstunde mit Termin"},
	{ConsultationTypeWithoutAppointment, "WITHOUT_APPOINTMENT", "Sprechstunde ohne Termin"},
	{ConsultationTypeOpen, "OPEN", "Offene Sprechstunde"},
}

var (
	typesByLabel = make(map[string]ConsultationType, len(consultationTypes))
	typesByName  = make(map[string]ConsultationType, len(consultationTypes))
)

func init() {
	for _, t := range consultationTypes {
		typesByLabel[t.label] = t.typ
		typesByName[t.name] = t.typ
	}
}

// UnknownConsultationTypeError is returned when a label matches no known type
type UnknownConsultationTypeError struct {
	Value string
}

func (e *UnknownConsultationTypeError) Error() string {
	return fmt.Sprintf("unknown consultation type: %q", e.Value)
}

// ParseConsultationType resolves a German display label, e.g. "Sprechstunde".
// Matching is exact and case-sensitive.
func ParseConsultationType(label string) (ConsultationType, error) {
	if t, ok := typesByLabel[label]; ok {
		return t, nil
	}
	return 0, &UnknownConsultationTypeError{Value: label}
}

// ParseConsultationTypeName resolves either a type name ("PHONE", case-insensitive)
// or a display label. Used for user input on the CLI and HTTP surfaces.
func ParseConsultationTypeName(s string) (ConsultationType, error) {
	s = strings.TrimSpace(s)
	if t, ok := typesByName[strings.ToUpper(s)]; ok {
		return t, nil
	}
	return ParseConsultationType(s)
}

// ParseConsultationTypeNames resolves every entry with ParseConsultationTypeName.
// Blank entries are skipped; the first unknown entry fails the whole list.
func ParseConsultationTypeNames(names []string) (Set[ConsultationType], error) {
	types := NewSet[ConsultationType]()
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := ParseConsultationTypeName(name)
		if err != nil {
			return nil, err
		}
		types[t] = struct{}{}
	}
	return types, nil
}

// AllConsultationTypes returns every type in declaration order
func AllConsultationTypes() []ConsultationType {
	all := make([]ConsultationType, len(consultationTypes))
	for i, t := range consultationTypes {
		all[i] = t.typ
	}
	return all
}

// String returns the German display label
func (t ConsultationType) String() string {
	if t.valid() {
		return consultationTypes[t].label
	}
	return fmt.Sprintf("ConsultationType(%d)", int(t))
}

// Name returns the stable identifier, e.g. "WITHOUT_APPOINTMENT"
func (t ConsultationType) Name() string {
	if t.valid() {
		return consultationTypes[t].name
	}
	return ""
}

func (t ConsultationType) valid() bool {
	return t >= 0 && int(t) < len(consultationTypes)
}
