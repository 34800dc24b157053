package service

import (
	"fmt"

	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/internal/arztliste/pipeline"
)

// DefaultOutputFileName is used when a request names no output file
const DefaultOutputFileName = "data.csv"

// Request is one file based conversion
type Request struct {
	InputPath             string `validate:"required"`
	OutputDir             string `validate:"required"`
	OutputFileName        string
	NamesToExclude        domain.Set[string]
	PhoneNumbersToExclude domain.Set[string]
	ConsultationTypes     domain.Set[domain.ConsultationType]
	// PeriodDays restricts days to [today, today+N]; nil means no restriction
	PeriodDays *int `validate:"omitempty,gte=0"`
}

// Criteria returns the filter criteria of the request
func (r Request) Criteria() pipeline.Criteria {
	return pipeline.Criteria{
		NamesToExclude:        r.NamesToExclude,
		PhoneNumbersToExclude: r.PhoneNumbersToExclude,
		Types:                 r.ConsultationTypes,
		PeriodDays:            r.PeriodDays,
	}
}

func (r Request) outputFileName() string {
	if r.OutputFileName == "" {
		return DefaultOutputFileName
	}
	return r.OutputFileName
}

// Result summarizes a successful conversion
type Result struct {
	OutputPath     string
	DoctorsRead    int
	DoctorsWritten int
	Rows           int
	Warnings       []PhoneWarning
}

// Report is a filtered and sorted doctor list ready to be rendered
type Report struct {
	Doctors     []domain.Doctor
	DoctorsRead int
	Types       domain.Set[domain.ConsultationType]
}

// PhoneWarning flags a contact number that does not look dialable
type PhoneWarning struct {
	Doctor string
	Field  string
	Number string
}

func (w PhoneWarning) String() string {
	return fmt.Sprintf("%s: implausible %s number %q", w.Doctor, w.Field, w.Number)
}

// TypeNames lists the names of the selected types in declaration order
func TypeNames(types domain.Set[domain.ConsultationType]) []string {
	names := make([]string, 0, types.Len())
	for _, t := range domain.AllConsultationTypes() {
		if types.Contains(t) {
			names = append(names, t.Name())
		}
	}
	return names
}
