package decoder_test

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/decoder"
	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "version": 3,
  "arztPraxisDatas": [
    {
      "keineSprechzeiten": false,
      "name": "Praxis Dr. Müller",
      "tel": "0711 123456",
      "handy": "0171 9876543",
      "email": "info@praxis-mueller.de",
      "strasse": "Königstraße",
      "hausnummer": "12a",
      "plz": "70173",
      "ort": "Stuttgart",
      "fax": "0711 123457",
      "tsz": [
        {
          "d": "5.6",
          "t": "Mo",
          "tszDesTyps": [
            {
              "typ": "Telefonische Erreichbarkeit",
              "sprechzeiten": [{"zeit": "08:00-09:30"}, {"zeit": "14:00-15:00"}],
            },
            {
              "typ": "Sprechstunde",
              "sprechzeiten": [{"zeit": "10:00-12:00"}]
            },
          ]
        },
        {"d": "6.6", "t": "Di", "tszDesTyps": []},
        {"d": "7.6", "t": "Mi"},
      ],
    },
    {
      "keineSprechzeiten": true
    },
  ]
}`

func TestDecode_FullExport(t *testing.T) {
	doctors, err := decoder.Decode(strings.NewReader(sampleExport), 2026)
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	d := doctors[0]
	assert.Equal(t, "Praxis Dr. Müller", d.Name)
	assert.Equal(t, domain.ContactData{Phone: "0711 123456", Email: "info@praxis-mueller.de", Mobile: "0171 9876543"}, d.Contact)
	assert.Equal(t, domain.Address{Street: "Königstraße", StreetNumber: "12a", ZipCode: "70173", City: "Stuttgart"}, d.Address)

	// Days without type listings are dropped
	require.Len(t, d.Days, 1)
	day := d.Days[0]
	assert.Equal(t, civil.Date{Year: 2026, Month: time.June, Day: 5}, day.Date)
	require.Len(t, day.Hours, 2)

	assert.Equal(t, domain.ConsultationTypePhone, day.Hours[0].Type)
	assert.Equal(t, []domain.TimeFrame{
		{Start: civil.Time{Hour: 8}, End: civil.Time{Hour: 9, Minute: 30}},
		{Start: civil.Time{Hour: 14}, End: civil.Time{Hour: 15}},
	}, day.Hours[0].Times)
	assert.Equal(t, domain.ConsultationTypeRegular, day.Hours[1].Type)

	empty := doctors[1]
	assert.Empty(t, empty.Name)
	assert.Equal(t, domain.ContactData{}, empty.Contact)
	assert.Empty(t, empty.Days)
}

func TestDecode_EmptyAndMissingList(t *testing.T) {
	for _, in := range []string{`{}`, `{"arztPraxisDatas": []}`, "\xef\xbb\xbf{\"arztPraxisDatas\": null}"} {
		doctors, err := decoder.Decode(strings.NewReader(in), 2026)
		require.NoError(t, err, in)
		assert.Empty(t, doctors)
	}
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errPart string
	}{
		{
			name:    "malformed json",
			input:   `{"arztPraxisDatas": [`,
			errPart: "parse export",
		},
		{
			name:    "wrong structure",
			input:   `{"arztPraxisDatas": {"name": "x"}}`,
			errPart: "decode export",
		},
		{
			name:    "unknown consultation type",
			input:   `{"arztPraxisDatas": [{"name": "A", "tsz": [{"d": "1.2", "tszDesTyps": [{"typ": "Videosprechstunde"}]}]}]}`,
			errPart: "Videosprechstunde",
		},
		{
			name:    "invalid date",
			input:   `{"arztPraxisDatas": [{"tsz": [{"d": "31.2", "tszDesTyps": [{"typ": "Sprechstunde"}]}]}]}`,
			errPart: "invalid date",
		},
		{
			name:    "invalid timeframe",
			input:   `{"arztPraxisDatas": [{"tsz": [{"d": "1.2", "tszDesTyps": [{"typ": "Sprechstunde", "sprechzeiten": [{"zeit": "0900"}]}]}]}]}`,
			errPart: "invalid timeframe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctors, err := decoder.Decode(strings.NewReader(tt.input), 2026)
			require.Error(t, err)
			assert.Nil(t, doctors)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestDecode_UnknownTypeIsTyped(t *testing.T) {
	in := `{"arztPraxisDatas": [{"name": "A", "tsz": [{"d": "1.2", "tszDesTyps": [{"typ": "sprechstunde"}]}]}]}`

	_, err := decoder.Decode(strings.NewReader(in), 2026)

	var unknown *domain.UnknownConsultationTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sprechstunde", unknown.Value)
}

func TestDecode_SpecialFloats(t *testing.T) {
	in := `{
  "version": NaN,
  "score": Infinity,
  "delta": [-Infinity, 1.5],
  // NaN in a comment stays a comment
  "arztPraxisDatas": [
    {
      "name": "Praxis NaN Infinity",
      "keineSprechzeiten": NaN,
      "tsz": [{"d": "1.2", "tszDesTyps": [{"typ": "Sprechstunde", "sprechzeiten": [{"zeit": "08:00-09:00"}]}]}]
    }
  ]
}`

	doctors, err := decoder.Decode(strings.NewReader(in), 2026)

	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Praxis NaN Infinity", doctors[0].Name)
	require.Len(t, doctors[0].Days, 1)
}

func TestDecode_SpecialFloatAsContactField(t *testing.T) {
	in := `{"arztPraxisDatas": [{"name": "A", "tel": NaN, "ort": "NaNufer"}]}`

	doctors, err := decoder.Decode(strings.NewReader(in), 2026)

	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Empty(t, doctors[0].Contact.Phone)
	assert.Equal(t, "NaNufer", doctors[0].Address.City)
}

func TestDecode_ScalarContactFields(t *testing.T) {
	in := `{"arztPraxisDatas": [{
  "name": 42,
  "tel": 711123456,
  "handy": null,
  "email": true,
  "strasse": "Hauptstraße",
  "hausnummer": 12,
  "plz": 70173,
  "ort": "Stuttgart",
  "tsz": []
}]}`

	doctors, err := decoder.Decode(strings.NewReader(in), 2026)

	require.NoError(t, err)
	require.Len(t, doctors, 1)
	d := doctors[0]
	assert.Equal(t, "42", d.Name)
	assert.Equal(t, domain.ContactData{Phone: "711123456", Email: "true"}, d.Contact)
	assert.Equal(t, domain.Address{Street: "Hauptstraße", StreetNumber: "12", ZipCode: "70173", City: "Stuttgart"}, d.Address)
}

func TestDecode_ObjectInContactFieldFails(t *testing.T) {
	in := `{"arztPraxisDatas": [{"name": "A", "plz": {"code": 70173}}]}`

	doctors, err := decoder.Decode(strings.NewReader(in), 2026)

	require.Error(t, err)
	assert.Nil(t, doctors)
	assert.Contains(t, err.Error(), "expected a scalar value")
}
