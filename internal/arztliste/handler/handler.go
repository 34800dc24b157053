package handler

import (
	"bytes"
	"maps"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/internal/arztliste/pipeline"
	"github.com/medflow/arztliste/internal/arztliste/service"
	"github.com/medflow/arztliste/pkg/errors"
	"github.com/medflow/arztliste/pkg/httputil"
	"github.com/medflow/arztliste/pkg/i18n"
	"github.com/medflow/arztliste/pkg/logger"
)

const defaultMaxUploadSize = 20 << 20 // 20MB

// ConsultationTypeResponse describes one selectable consultation type
type ConsultationTypeResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Handler handles HTTP requests for report generation
type Handler struct {
	converter     *service.Converter
	log           *logger.Logger
	maxUploadSize int64
	defaultTypes  domain.Set[domain.ConsultationType]
}

// NewHandler creates a new report handler. A non-positive maxUploadSize uses 20MB.
// defaultTypes apply to uploads without a types field; an empty set means PHONE.
func NewHandler(converter *service.Converter, maxUploadSize int64, defaultTypes domain.Set[domain.ConsultationType], log *logger.Logger) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	if defaultTypes.Len() == 0 {
		defaultTypes = domain.NewSet(domain.PrimarySortType)
	}
	return &Handler{
		converter:     converter,
		log:           log,
		maxUploadSize: maxUploadSize,
		defaultTypes:  defaultTypes,
	}
}

// Routes mounts the report endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/consultation-types", h.ListConsultationTypes)
	r.Post("/reports/csv", h.GenerateCSV)
}

// ListConsultationTypes handles GET /consultation-types
func (h *Handler) ListConsultationTypes(w http.ResponseWriter, r *http.Request) {
	all := domain.AllConsultationTypes()
	types := make([]ConsultationTypeResponse, len(all))
	for i, t := range all {
		types[i] = ConsultationTypeResponse{Name: t.Name(), Label: t.String()}
	}
	httputil.JSON(w, http.StatusOK, types)
}

// GenerateCSV handles POST /reports/csv
// Accepts multipart form with:
// - file: the practice export (JSON)
// - types: consultation type names or labels, repeatable
// - exclude_names, exclude_phones: newline separated lists
// - period_days: optional non-negative day count
func (h *Handler) GenerateCSV(w http.ResponseWriter, r *http.Request) {
	localizer := i18n.LocalizerFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequest(localizer.T("errors.invalid_form")))
		return
	}

	criteria, err := h.parseCriteria(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequest(localizer.T("errors.missing_file")))
		return
	}
	defer file.Close()

	var out bytes.Buffer
	res, err := h.converter.ConvertStream(r.Context(), file, criteria, &out)
	if err != nil {
		h.log.Warn().Err(err).
			Str("request_id", httputil.GetRequestID(r.Context())).
			Str("kind", errors.KindOf(err)).
			Msg("report generation failed")
		httputil.ErrorLocalized(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.DefaultOutputFileName+`"`)
	w.Header().Set("X-Doctors-Written", strconv.Itoa(res.DoctorsWritten))
	w.WriteHeader(http.StatusOK)
	if _, err := out.WriteTo(w); err != nil {
		h.log.Warn().Err(err).
			Str("request_id", httputil.GetRequestID(r.Context())).
			Msg("failed to write report response")
	}
}

// parseCriteria reads the form fields. A missing or blank types field selects the default types.
func (h *Handler) parseCriteria(r *http.Request) (pipeline.Criteria, error) {
	details := make(map[string]string)

	var typeNames []string
	for _, raw := range r.MultipartForm.Value["types"] {
		typeNames = append(typeNames, strings.Split(raw, ",")...)
	}
	types, err := domain.ParseConsultationTypeNames(typeNames)
	if err != nil {
		details["types"] = err.Error()
	} else if types.Len() == 0 {
		types = maps.Clone(h.defaultTypes)
	}

	var period *int
	if raw := strings.TrimSpace(r.FormValue("period_days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			details["period_days"] = "must be a non-negative integer"
		} else {
			period = &days
		}
	}

	names, err := service.ParseExclusions(strings.NewReader(r.FormValue("exclude_names")))
	if err != nil {
		details["exclude_names"] = err.Error()
	}
	phones, err := service.ParseExclusions(strings.NewReader(r.FormValue("exclude_phones")))
	if err != nil {
		details["exclude_phones"] = err.Error()
	}

	if len(details) > 0 {
		return pipeline.Criteria{}, errors.Validation(details)
	}

	return pipeline.Criteria{
		NamesToExclude:        names,
		PhoneNumbersToExclude: phones,
		Types:                 types,
		PeriodDays:            period,
	}, nil
}
