package domain_test

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsultationType_RoundTrip(t *testing.T) {
	for _, typ := range domain.AllConsultationTypes() {
		t.Run(typ.Name(), func(t *testing.T) {
			got, err := domain.ParseConsultationType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ, got)
		})
	}
}

func TestParseConsultationType_Labels(t *testing.T) {
	tests := []struct {
		label string
		want  domain.ConsultationType
	}{
		{"Telefonische Erreichbarkeit", domain.ConsultationTypePhone},
		{"Sprechstunde", domain.ConsultationTypeRegular},
		{"Sprechstunde mit Termin", domain.ConsultationTypeAppointment},
		{"Sprechstunde ohne Termin", domain.ConsultationTypeWithoutAppointment},
		{"Offene Sprechstunde", domain.ConsultationTypeOpen},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := domain.ParseConsultationType(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConsultationType_Unknown(t *testing.T) {
	inputs := []string{"", "sprechstunde", "Sprechstunde ", "PHONE", "Videosprechstunde"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := domain.ParseConsultationType(in)
			require.Error(t, err)

			var unknown *domain.UnknownConsultationTypeError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, in, unknown.Value)
		})
	}
}

func TestParseConsultationTypeName(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.ConsultationType
		wantErr bool
	}{
		{"PHONE", domain.ConsultationTypePhone, false},
		{"phone", domain.ConsultationTypePhone, false},
		{" without_appointment ", domain.ConsultationTypeWithoutAppointment, false},
		{"Offene Sprechstunde", domain.ConsultationTypeOpen, false},
		{"VIDEO", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseConsultationTypeName(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsultationType_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "ConsultationType(42)", domain.ConsultationType(42).String())
	assert.Empty(t, domain.ConsultationType(-1).Name())
}

func TestCompareHours(t *testing.T) {
	at := func(h, m int) civil.Time { return civil.Time{Hour: h, Minute: m} }
	hours := func(frames ...domain.TimeFrame) domain.ConsultationHours {
		return domain.ConsultationHours{Type: domain.ConsultationTypePhone, Times: frames}
	}

	early := hours(domain.TimeFrame{Start: at(14, 0), End: at(15, 0)}, domain.TimeFrame{Start: at(8, 0), End: at(9, 0)})
	earlyLongerEnd := hours(domain.TimeFrame{Start: at(8, 0), End: at(11, 0)})
	late := hours(domain.TimeFrame{Start: at(10, 0), End: at(11, 0)})
	empty := hours()

	assert.Equal(t, -1, domain.CompareHours(early, late))
	assert.Equal(t, 1, domain.CompareHours(late, early))
	assert.Equal(t, -1, domain.CompareHours(early, earlyLongerEnd))
	assert.Equal(t, 0, domain.CompareHours(early, early))
	assert.Equal(t, -1, domain.CompareHours(late, empty))
	assert.Equal(t, 1, domain.CompareHours(empty, late))
	assert.Equal(t, 0, domain.CompareHours(empty, empty))
}

func TestTimeFrame_String(t *testing.T) {
	f := domain.TimeFrame{Start: civil.Time{Hour: 7, Minute: 5}, End: civil.Time{Hour: 13, Minute: 30}}
	assert.Equal(t, "07:05 - 13:30", f.String())
}

func TestSet(t *testing.T) {
	s := domain.NewSet("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, []string{"a", "b"}, domain.Sorted(s))

	var nilSet domain.Set[string]
	assert.False(t, nilSet.Contains("a"))
}

func TestParseConsultationTypeNames(t *testing.T) {
	types, err := domain.ParseConsultationTypeNames([]string{"PHONE", " ", "Offene Sprechstunde", "phone"})
	require.NoError(t, err)
	assert.Equal(t, domain.NewSet(domain.ConsultationTypePhone, domain.ConsultationTypeOpen), types)

	_, err = domain.ParseConsultationTypeNames([]string{"REGULAR", "VIDEO"})
	var unknown *domain.UnknownConsultationTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "VIDEO", unknown.Value)
}
