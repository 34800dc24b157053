// Package service runs the conversion from a practice export to the doctor list.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
	"github.com/medflow/arztliste/internal/arztliste/decoder"
	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/internal/arztliste/pipeline"
	"github.com/medflow/arztliste/internal/arztliste/report"
	"github.com/medflow/arztliste/pkg/errors"
	"github.com/medflow/arztliste/pkg/httputil"
	"github.com/medflow/arztliste/pkg/logger"
	"github.com/medflow/arztliste/pkg/messaging"
	"github.com/medflow/arztliste/pkg/metrics"
)

// ReportPublisher announces generated reports. Implementations must not fail the conversion.
type ReportPublisher interface {
	PublishReportGenerated(ctx context.Context, event messaging.ReportGeneratedEvent)
}

// Option configures a Converter
type Option func(*Converter)

// WithClock replaces the wall clock. "today" and the export year are taken from it.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithPhoneRegion sets the region used for phone plausibility checks
func WithPhoneRegion(region string) Option {
	return func(c *Converter) { c.phoneRegion = region }
}

// WithLineSeparator overrides the native line separator of the written file
func WithLineSeparator(sep string) Option {
	return func(c *Converter) { c.writer = &report.Writer{LineSeparator: sep} }
}

// Converter decodes, filters, sorts and renders doctor exports
type Converter struct {
	publisher   ReportPublisher
	metrics     *metrics.ConversionMetrics
	log         *logger.Logger
	writer      *report.Writer
	now         func() time.Time
	phoneRegion string
}

// NewConverter creates a converter. publisher and m may be nil.
func NewConverter(publisher ReportPublisher, m *metrics.ConversionMetrics, log *logger.Logger, opts ...Option) *Converter {
	c := &Converter{
		publisher:   publisher,
		metrics:     m,
		log:         log.WithComponent("converter"),
		writer:      report.NewWriter(),
		now:         time.Now,
		phoneRegion: DefaultPhoneRegion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads req.InputPath and writes the report into req.OutputDir.
// Nothing is created on disk unless every step before the write succeeded.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	began := time.Now()

	res, err := c.convert(ctx, req)
	if err != nil {
		c.metrics.ObserveFailure(time.Since(began))
		return nil, err
	}

	c.finish(ctx, res, req.ConsultationTypes, req.PeriodDays, time.Since(began))
	return res, nil
}

func (c *Converter) convert(ctx context.Context, req Request) (*Result, error) {
	if err := httputil.Validate(&req); err != nil {
		return nil, err
	}

	f, err := openInput(req.InputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rep, err := c.Build(ctx, f, req.Criteria())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	rows, err := c.Render(&buf, rep)
	if err != nil {
		return nil, errors.Internal(err.Error())
	}

	outPath := filepath.Join(req.OutputDir, req.outputFileName())
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, errors.IO(req.OutputDir, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return nil, errors.IO(outPath, err)
	}

	return c.result(outPath, rep, rows), nil
}

// ConvertStream runs the conversion on an in-memory export and copies the
// report to out only once it is complete.
func (c *Converter) ConvertStream(ctx context.Context, in io.Reader, criteria pipeline.Criteria, out io.Writer) (*Result, error) {
	began := time.Now()

	rep, err := c.Build(ctx, in, criteria)
	if err != nil {
		c.metrics.ObserveFailure(time.Since(began))
		return nil, err
	}

	var buf bytes.Buffer
	rows, err := c.Render(&buf, rep)
	if err == nil {
		_, err = buf.WriteTo(out)
	}
	if err != nil {
		c.metrics.ObserveFailure(time.Since(began))
		return nil, errors.IO("response", err)
	}

	res := c.result("", rep, rows)
	c.finish(ctx, res, criteria.Types, criteria.PeriodDays, time.Since(began))
	return res, nil
}

// Build decodes the export and applies the filter and the sort.
// Decoding errors are returned as DECODE_ERROR.
func (c *Converter) Build(ctx context.Context, in io.Reader, criteria pipeline.Criteria) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	today := civil.DateOf(c.now())

	doctors, err := decoder.Decode(in, today.Year)
	if err != nil {
		return nil, errors.Decode(err)
	}

	filtered := pipeline.Filter(doctors, criteria, today)
	sorted := pipeline.SortByEarliest(filtered, domain.PrimarySortType)

	return &Report{
		Doctors:     sorted,
		DoctorsRead: len(doctors),
		Types:       criteria.Types,
	}, nil
}

// Render writes the report and returns the number of data rows
func (c *Converter) Render(w io.Writer, rep *Report) (int, error) {
	return c.writer.Write(w, rep.Doctors, rep.Types)
}

func (c *Converter) result(outPath string, rep *Report, rows int) *Result {
	return &Result{
		OutputPath:     outPath,
		DoctorsRead:    rep.DoctorsRead,
		DoctorsWritten: len(rep.Doctors),
		Rows:           rows,
		Warnings:       CheckPhoneNumbers(rep.Doctors, c.phoneRegion),
	}
}

func (c *Converter) finish(ctx context.Context, res *Result, types domain.Set[domain.ConsultationType], period *int, elapsed time.Duration) {
	for _, w := range res.Warnings {
		c.log.Warn().
			Str("doctor", w.Doctor).
			Str("field", w.Field).
			Str("number", w.Number).
			Msg("implausible phone number")
	}

	c.metrics.ObserveSuccess(elapsed, res.DoctorsWritten)

	c.log.Info().
		Str("output", res.OutputPath).
		Int("doctors_read", res.DoctorsRead).
		Int("doctors_written", res.DoctorsWritten).
		Int("rows", res.Rows).
		Dur("duration", elapsed).
		Msg("conversion completed")

	if c.publisher != nil {
		c.publisher.PublishReportGenerated(ctx, messaging.ReportGeneratedEvent{
			Output:            res.OutputPath,
			DoctorsRead:       res.DoctorsRead,
			DoctorsWritten:    res.DoctorsWritten,
			Rows:              res.Rows,
			ConsultationTypes: TypeNames(types),
			PeriodDays:        period,
		})
	}
}

// openInput accepts only existing, readable regular files
func openInput(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.InputNotFound(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.InputNotFound(path, fmt.Errorf("not a regular file"))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.InputNotFound(path, err)
	}
	return f, nil
}
