package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/internal/arztliste/pipeline"
	"github.com/medflow/arztliste/internal/arztliste/service"
	"github.com/medflow/arztliste/pkg/errors"
	"github.com/medflow/arztliste/pkg/logger"
	"github.com/medflow/arztliste/pkg/messaging"
	"github.com/medflow/arztliste/pkg/metrics"
	"github.com/medflow/arztliste/pkg/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	phoneLabel   = "Telefonische Erreichbarkeit"
	regularLabel = "Sprechstunde"
	header       = "Name;Sprechzeiten;Telefonnummer;E-Mail;Mobilfunknummer;Adresse"
)

// Wednesday
var today = civil.Date{Year: 2026, Month: time.June, Day: 10}

type recordingPublisher struct {
	events []messaging.ReportGeneratedEvent
}

func (p *recordingPublisher) PublishReportGenerated(_ context.Context, e messaging.ReportGeneratedEvent) {
	p.events = append(p.events, e)
}

func newConverter(publisher service.ReportPublisher) *service.Converter {
	now := time.Date(today.Year, today.Month, today.Day, 10, 0, 0, 0, time.Local)
	return service.NewConverter(publisher, metrics.NewConversionMetrics(prometheus.NewRegistry()), logger.Nop(),
		service.WithClock(func() time.Time { return now }),
		service.WithLineSeparator("\n"),
	)
}

func writeExport(t *testing.T, doctors ...testutil.DoctorFixture) string {
	t.Helper()
	return testutil.WriteFile(t, "export.json", testutil.NewExportFixture(doctors...).JSON())
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
}

func TestConvert_PastDayIsPruned(t *testing.T) {
	input := writeExport(t, testutil.NewDoctorFixture("Dr. Heute",
		testutil.NewDayFixture(today.AddDays(-1), testutil.NewHoursFixture(phoneLabel, "08:00-09:00")),
		testutil.NewDayFixture(today, testutil.NewHoursFixture(phoneLabel, "09:00-10:00")),
	))
	outDir := t.TempDir()

	res, err := newConverter(nil).Convert(context.Background(), service.Request{
		InputPath:         input,
		OutputDir:         outDir,
		ConsultationTypes: domain.NewSet(domain.ConsultationTypePhone),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "data.csv"), res.OutputPath)
	assert.Equal(t, 1, res.DoctorsRead)
	assert.Equal(t, 1, res.DoctorsWritten)
	assert.Equal(t, 2, res.Rows)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, []string{
		header,
		"Dr. Heute;Mi 10.06: 09:00 - 10:00;0711 100200;praxis@example.de;;Hauptstraße 1",
		";;;;;70173 Stuttgart",
	}, readLines(t, res.OutputPath))
}

func TestConvert_ExcludedNameIsAbsent(t *testing.T) {
	input := writeExport(t,
		testutil.NewDoctorFixture("Dr. Bleibt", testutil.NewDayFixture(today, testutil.NewHoursFixture(phoneLabel, "09:00-10:00"))),
		testutil.NewDoctorFixture("Dr. Raus", testutil.NewDayFixture(today, testutil.NewHoursFixture(phoneLabel, "07:00-08:00"))),
	)

	res, err := newConverter(nil).Convert(context.Background(), service.Request{
		InputPath:         input,
		OutputDir:         t.TempDir(),
		NamesToExclude:    domain.NewSet("Dr. Raus"),
		ConsultationTypes: domain.NewSet(domain.ConsultationTypePhone),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.DoctorsRead)
	assert.Equal(t, 1, res.DoctorsWritten)
	content, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "Dr. Raus")
}

func TestConvert_SortsAndLabelsMultipleTypes(t *testing.T) {
	input := writeExport(t,
		testutil.NewDoctorFixture("Dr. Spät", testutil.NewDayFixture(today.AddDays(1),
			testutil.NewHoursFixture(phoneLabel, "13:00-14:00"))),
		testutil.NewDoctorFixture("Dr. Beide", testutil.NewDayFixture(today,
			testutil.NewHoursFixture(phoneLabel, "09:00-10:00"),
			testutil.NewHoursFixture(regularLabel, "11:00-12:00"))),
	)

	publisher := &recordingPublisher{}
	res, err := newConverter(publisher).Convert(context.Background(), service.Request{
		InputPath:         input,
		OutputDir:         t.TempDir(),
		OutputFileName:    "liste.csv",
		ConsultationTypes: domain.NewSet(domain.ConsultationTypePhone, domain.ConsultationTypeRegular),
		PeriodDays:        testutil.PtrInt(7),
	})
	require.NoError(t, err)

	assert.Equal(t, "liste.csv", filepath.Base(res.OutputPath))
	lines := readLines(t, res.OutputPath)
	require.Len(t, lines, 5)
	assert.Equal(t,
		"Dr. Beide;Mi 10.06: Telefonische Erreichbarkeit: 09:00 - 10:00 Sprechstunde: 11:00 - 12:00;0711 100200;praxis@example.de;;Hauptstraße 1",
		lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "Dr. Spät;Do 11.06: Telefonische Erreichbarkeit: 13:00 - 14:00;"))

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, res.OutputPath, event.Output)
	assert.Equal(t, 2, event.DoctorsWritten)
	assert.Equal(t, 4, event.Rows)
	assert.Equal(t, []string{"PHONE", "REGULAR"}, event.ConsultationTypes)
	require.NotNil(t, event.PeriodDays)
	assert.Equal(t, 7, *event.PeriodDays)
}

func TestConvert_UnknownLabelLeavesNoOutput(t *testing.T) {
	input := writeExport(t, testutil.NewDoctorFixture("Dr. X",
		testutil.NewDayFixture(today, testutil.NewHoursFixture("Videosprechstunde", "09:00-10:00"))))
	outDir := filepath.Join(t.TempDir(), "out")

	publisher := &recordingPublisher{}
	res, err := newConverter(publisher).Convert(context.Background(), service.Request{
		InputPath:         input,
		OutputDir:         outDir,
		ConsultationTypes: domain.NewSet(domain.ConsultationTypePhone),
	})

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, errors.ErrDecode))
	assert.Equal(t, errors.CodeDecode, errors.KindOf(err))
	var unknown *domain.UnknownConsultationTypeError
	assert.ErrorAs(t, err, &unknown)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
	assert.Empty(t, publisher.events)
}

func TestConvert_InputNotFound(t *testing.T) {
	tests := []struct {
		name  string
		input func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConverter(nil).Convert(context.Background(), service.Request{
				InputPath: tt.input(t),
				OutputDir: t.TempDir(),
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInputNotFound))
			assert.Equal(t, errors.CodeInputNotFound, errors.KindOf(err))
		})
	}
}

func TestConvert_Validation(t *testing.T) {
	input := writeExport(t)

	tests := []struct {
		name  string
		req   service.Request
		field string
	}{
		{"missing input", service.Request{OutputDir: "out"}, "InputPath"},
		{"missing output", service.Request{InputPath: input}, "OutputDir"},
		{"negative period", service.Request{InputPath: input, OutputDir: t.TempDir(), PeriodDays: testutil.PtrInt(-1)}, "PeriodDays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConverter(nil).Convert(context.Background(), tt.req)
			require.Error(t, err)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.CodeValidation, appErr.Code)
			assert.Contains(t, appErr.Details, tt.field)
		})
	}
}

func TestConvert_OutputNotWritable(t *testing.T) {
	input := writeExport(t)
	blocker := testutil.WriteFile(t, "blocker", []byte("x"))

	_, err := newConverter(nil).Convert(context.Background(), service.Request{
		InputPath: input,
		OutputDir: filepath.Join(blocker, "sub"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIO))
	assert.Equal(t, errors.CodeIO, errors.KindOf(err))
}

func TestConvert_EmptyTypeFilterWritesHeaderOnly(t *testing.T) {
	input := writeExport(t, testutil.NewDoctorFixture("Dr. A",
		testutil.NewDayFixture(today, testutil.NewHoursFixture(phoneLabel, "09:00-10:00"))))

	res, err := newConverter(nil).Convert(context.Background(), service.Request{
		InputPath: input,
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.DoctorsWritten)
	assert.Equal(t, []string{header}, readLines(t, res.OutputPath))
}

func TestConvert_PhoneWarnings(t *testing.T) {
	doctor := testutil.NewDoctorFixture("Dr. Falsch",
		testutil.NewDayFixture(today, testutil.NewHoursFixture(phoneLabel, "09:00-10:00")))
	doctor.Phone = "kein Anschluss"
	doctor.Mobile = "0171 9876543"

	res, err := newConverter(nil).Convert(context.Background(), service.Request{
		InputPath:         writeExport(t, doctor),
		OutputDir:         t.TempDir(),
		ConsultationTypes: domain.NewSet(domain.ConsultationTypePhone),
	})
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, service.PhoneWarning{Doctor: "Dr. Falsch", Field: "phone", Number: "kein Anschluss"}, res.Warnings[0])
	assert.Contains(t, readLines(t, res.OutputPath)[1], "kein Anschluss")
}

func TestConvertStream(t *testing.T) {
	export := testutil.NewExportFixture(testutil.NewDoctorFixture("Dr. Stream",
		testutil.NewDayFixture(today, testutil.NewHoursFixture(phoneLabel, "09:00-10:00")),
		testutil.NewDayFixture(today.AddDays(1), testutil.NewHoursFixture(phoneLabel, "09:00-10:00")),
		testutil.NewDayFixture(today.AddDays(2), testutil.NewHoursFixture(phoneLabel, "09:00-10:00")),
	)).JSON()

	var out bytes.Buffer
	res, err := newConverter(nil).ConvertStream(context.Background(), bytes.NewReader(export), pipeline.Criteria{
		Types: domain.NewSet(domain.ConsultationTypePhone),
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rows)
	assert.Empty(t, res.OutputPath)
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))
}

func TestConvertStream_DecodeErrorWritesNothing(t *testing.T) {
	var out bytes.Buffer
	_, err := newConverter(nil).ConvertStream(context.Background(), strings.NewReader(`{"arztPraxisDatas": [`), pipeline.Criteria{}, &out)

	require.Error(t, err)
	assert.Equal(t, errors.CodeDecode, errors.KindOf(err))
	assert.Zero(t, out.Len())
}
