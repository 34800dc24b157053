package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/internal/arztliste/service"
	"github.com/medflow/arztliste/pkg/config"
	"github.com/medflow/arztliste/pkg/errors"
	"github.com/medflow/arztliste/pkg/i18n"
	"github.com/medflow/arztliste/pkg/logger"
	"github.com/spf13/pflag"
)

const serviceName = "arztliste"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, performs one conversion and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.String("input", "", "path of the practice export (JSON)")
	flags.String("output-dir", "", "directory the report is written to")
	flags.String("output-file", "", "file name of the report (default data.csv)")
	flags.StringSlice("type", nil, "consultation type name or label, repeatable (default PHONE)")
	flags.String("exclude-names-file", "", "file with one excluded practice name per line")
	flags.String("exclude-phones-file", "", "file with one excluded phone number per line")
	excludeNames := flags.StringArray("exclude-name", nil, "excluded practice name, repeatable")
	excludePhones := flags.StringArray("exclude-phone", nil, "excluded phone number, repeatable")
	flags.Int("period-days", 0, "only keep days from today to today+N (0 = no restriction)")
	flags.String("error-log", "", "diagnostic log written on failure (default error.log)")
	flags.String("phone-region", "", "region for phone plausibility checks (default DE)")
	flags.String("locale", "", "language of status messages (de, en)")
	listTypes := flags.Bool("list-types", false, "print the known consultation types and exit")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if *listTypes {
		for _, t := range domain.AllConsultationTypes() {
			fmt.Fprintf(stdout, "%s\t%s\n", t.Name(), t.String())
		}
		return 0
	}

	cfg, err := config.LoadWithFlags(serviceName, flags)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	localizer := i18n.NewLocalizer(cfg.Report.Locale)
	log := logger.New(serviceName, cfg.Server.Environment)
	converter := service.NewConverter(nil, nil, log, service.WithPhoneRegion(cfg.Report.PhoneRegion))

	req, err := buildRequest(&cfg.Report, *excludeNames, *excludePhones)
	if err == nil {
		var res *service.Result
		res, err = converter.Convert(ctx, req)
		if err == nil {
			fmt.Fprintln(stdout, localizer.T("convert.success"))
			fmt.Fprintln(stdout, res.OutputPath)
			for _, w := range res.Warnings {
				fmt.Fprintln(stderr, w.String())
			}
			return 0
		}
	}

	fmt.Fprintln(stderr, localizer.T("convert.failure", map[string]string{"message": describe(err, localizer)}))
	if logErr := writeErrorLog(cfg.Report.ErrorLog, err, &cfg.Report, req); logErr != nil {
		fmt.Fprintf(stderr, "failed to write %s: %v\n", cfg.Report.ErrorLog, logErr)
	}
	return 1
}

// buildRequest resolves type names and merges exclusion files with inline exclusions
func buildRequest(cfg *config.ReportConfig, names, phones []string) (service.Request, error) {
	req := service.Request{
		InputPath:      cfg.InputFile,
		OutputDir:      cfg.OutputDir,
		OutputFileName: cfg.OutputFile,
		PeriodDays:     cfg.Period(),
	}

	types, err := domain.ParseConsultationTypeNames(cfg.ConsultationTypes)
	if err != nil {
		return req, errors.Validation(map[string]string{"type": err.Error()})
	}
	req.ConsultationTypes = types

	if req.NamesToExclude, err = loadExclusions(cfg.ExcludeNamesFile, names); err != nil {
		return req, err
	}
	if req.PhoneNumbersToExclude, err = loadExclusions(cfg.ExcludePhonesFile, phones); err != nil {
		return req, err
	}
	return req, nil
}

func loadExclusions(path string, inline []string) (domain.Set[string], error) {
	set, err := service.LoadExclusions(path)
	if err != nil {
		return nil, err
	}
	for _, v := range inline {
		set[v] = struct{}{}
	}
	return set, nil
}

func describe(err error, localizer *i18n.Localizer) string {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr.LocalizeWith(localizer)
	}
	return err.Error()
}

// writeErrorLog replaces path with one record describing the failed run
func writeErrorLog(path string, runErr error, cfg *config.ReportConfig, req service.Request) error {
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	event := logger.NewWithWriter(f, serviceName).Error().
		Err(runErr).
		Str("kind", errors.KindOf(runErr)).
		Str("input", cfg.InputFile).
		Str("output", cfg.OutputDir).
		Strs("types", cfg.ConsultationTypes).
		Strs("names_to_exclude", domain.Sorted(req.NamesToExclude)).
		Strs("phone_numbers_to_exclude", domain.Sorted(req.PhoneNumbersToExclude))
	if req.PeriodDays != nil {
		event = event.Int("period_days", *req.PeriodDays)
	}
	event.Msg("conversion failed")

	return nil
}
