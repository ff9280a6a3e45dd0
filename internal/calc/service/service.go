// Package service orchestrates the calculation API: it resolves request
// literals into chrono values, runs the arithmetic, and instruments
// every operation with a span, Prometheus counters and a usage event.
// Handlers stay decode-and-map thin; the chrono package does the math.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tempus/internal/calc/models"
	"tempus/internal/platform/metrics"
	"tempus/internal/zones"
	"tempus/pkg/chrono"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/platform/usage"
	"tempus/pkg/requestcontext"
)

const tracerName = "tempus/internal/calc"

// Recorder receives the usage event for one completed operation.
type Recorder interface {
	Emit(ctx context.Context, event usage.Event) error
}

// Service implements the calculation operations.
type Service struct {
	logger  *slog.Logger
	zones   zones.Provider
	metrics *metrics.Metrics
	usage   Recorder
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithUsage sets the usage recorder.
func WithUsage(r Recorder) Option {
	return func(s *Service) { s.usage = r }
}

// New creates the calculation service. The zone provider serves /v1/now;
// metrics and usage recording are optional.
func New(logger *slog.Logger, zones zones.Provider, opts ...Option) *Service {
	s := &Service{
		logger: logger,
		zones:  zones,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// opRecord collects what one operation wants journaled about itself.
// chronology holds the resolved registry name, never raw caller input,
// so the metrics label set stays bounded.
type opRecord struct {
	op         string
	chronology string
	field      string
	unit       string
	zone       string
}

// finish closes out one operation: span status, Prometheus observation
// and the usage journal entry. The elapsed wall time here is
// instrumentation; domain reads of "now" go through the request clock.
func (s *Service) finish(ctx context.Context, span trace.Span, started time.Time, rec opRecord, err error) {
	elapsed := time.Since(started)
	outcome := usage.OutcomeOK
	errorCode := ""
	if err != nil {
		outcome = usage.OutcomeError
		errorCode = string(dErrors.CodeOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, errorCode)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if s.metrics != nil {
		s.metrics.ObserveCalc(rec.op, rec.chronology, string(outcome), elapsed.Seconds())
	}
	if s.usage == nil {
		return
	}
	event := usage.Event{
		RequestID:  requestcontext.RequestID(ctx),
		ClientID:   requestcontext.ClientID(ctx),
		ClientIP:   requestcontext.ClientIP(ctx),
		UserAgent:  requestcontext.UserAgent(ctx),
		Operation:  rec.op,
		Chronology: rec.chronology,
		Field:      rec.field,
		Unit:       rec.unit,
		Zone:       rec.zone,
		Outcome:    outcome,
		ErrorCode:  errorCode,
		DurationMs: elapsed.Milliseconds(),
	}
	if emitErr := s.usage.Emit(ctx, event); emitErr != nil {
		s.logger.WarnContext(ctx, "usage emit failed",
			"operation", rec.op,
			"error", emitErr.Error(),
		)
	}
}

// resolveChronology defaults an absent chronology to ISO.
func resolveChronology(name string) (chrono.Chronology, error) {
	if name == "" {
		return chrono.ISO, nil
	}
	return chrono.ChronologyByName(name)
}

// Plus shifts a value forward by amount units.
func (s *Service) Plus(ctx context.Context, req models.ShiftRequest) (models.ValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.plus", trace.WithAttributes(
		attribute.String("calc.unit", req.Unit),
		attribute.Int64("calc.amount", req.Amount),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.shift(usage.OpPlus, req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

// Minus shifts a value backward by amount units.
func (s *Service) Minus(ctx context.Context, req models.ShiftRequest) (models.ValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.minus", trace.WithAttributes(
		attribute.String("calc.unit", req.Unit),
		attribute.Int64("calc.amount", req.Amount),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.shift(usage.OpMinus, req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) shift(op string, req models.ShiftRequest) (models.ValueResponse, opRecord, error) {
	rec := opRecord{op: op, unit: req.Unit}
	c, err := resolveChronology(req.Chronology)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	rec.chronology = c.Name()
	u, err := chrono.ParseUnit(req.Unit)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	v, err := parseValue(req.Value)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}

	var out value
	if op == usage.OpMinus {
		out, err = v.minus(c, req.Amount, u)
	} else {
		out, err = v.plus(c, req.Amount, u)
	}
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	return out.response(), rec, nil
}

// With sets one field of a value to an absolute value.
func (s *Service) With(ctx context.Context, req models.WithRequest) (models.ValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.with", trace.WithAttributes(
		attribute.String("calc.field", req.Field),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.withField(req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) withField(req models.WithRequest) (models.ValueResponse, opRecord, error) {
	rec := opRecord{op: usage.OpWith, field: req.Field}
	c, err := resolveChronology(req.Chronology)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	rec.chronology = c.Name()
	f, err := chrono.ParseField(req.Field)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	v, err := parseValue(req.Value)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	out, err := v.with(c, f, req.NewValue)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	return out.response(), rec, nil
}

// Roll circles one field of a value by a signed amount.
func (s *Service) Roll(ctx context.Context, req models.RollRequest) (models.ValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.roll", trace.WithAttributes(
		attribute.String("calc.field", req.Field),
		attribute.Int64("calc.amount", req.Amount),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.rollField(req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) rollField(req models.RollRequest) (models.ValueResponse, opRecord, error) {
	rec := opRecord{op: usage.OpRoll, field: req.Field}
	c, err := resolveChronology(req.Chronology)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	rec.chronology = c.Name()
	f, err := chrono.ParseField(req.Field)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	v, err := parseValue(req.Value)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	out, err := v.roll(c, f, req.Amount)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	return out.response(), rec, nil
}

// Truncate zeroes every component of a value finer than the unit.
func (s *Service) Truncate(ctx context.Context, req models.TruncateRequest) (models.ValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.truncate", trace.WithAttributes(
		attribute.String("calc.unit", req.Unit),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.truncateValue(req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) truncateValue(req models.TruncateRequest) (models.ValueResponse, opRecord, error) {
	rec := opRecord{op: usage.OpTruncate, unit: req.Unit}
	u, err := chrono.ParseUnit(req.Unit)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	v, err := parseValue(req.Value)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	out, err := v.truncate(u)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	return out.response(), rec, nil
}

// Until measures the signed number of complete units from start to end.
func (s *Service) Until(ctx context.Context, req models.UntilRequest) (models.AmountResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.until", trace.WithAttributes(
		attribute.String("calc.unit", req.Unit),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.untilValue(req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) untilValue(req models.UntilRequest) (models.AmountResponse, opRecord, error) {
	rec := opRecord{op: usage.OpUntil, unit: req.Unit}
	u, err := chrono.ParseUnit(req.Unit)
	if err != nil {
		return models.AmountResponse{}, rec, err
	}
	start, err := parseValue(req.Start)
	if err != nil {
		return models.AmountResponse{}, rec, err
	}
	end, err := parseValue(req.End)
	if err != nil {
		return models.AmountResponse{}, rec, err
	}
	amount, err := start.until(end, u)
	if err != nil {
		return models.AmountResponse{}, rec, err
	}
	return models.AmountResponse{Amount: amount, Unit: u.Name()}, rec, nil
}

// ConvertOffset re-anchors an offset date-time to a new offset, keeping
// either the local fields or the instant.
func (s *Service) ConvertOffset(ctx context.Context, req models.ConvertOffsetRequest) (models.ValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.convert_offset", trace.WithAttributes(
		attribute.String("calc.mode", req.Mode),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.convertOffset(req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) convertOffset(req models.ConvertOffsetRequest) (models.ValueResponse, opRecord, error) {
	rec := opRecord{op: usage.OpConvertOffset}
	offset, err := chrono.ParseZoneOffset(req.Offset)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	v, err := parseValue(req.Value)
	if err != nil {
		return models.ValueResponse{}, rec, err
	}
	if v.kind != kindOffsetDateTime {
		return models.ValueResponse{}, rec, dErrors.New(dErrors.CodeInvalidInput, "offset conversion requires an offset date-time value")
	}

	switch req.Mode {
	case models.ModeSameLocal:
		out := value{kind: kindOffsetDateTime, odt: v.odt.WithOffsetSameLocal(offset)}
		return out.response(), rec, nil
	case models.ModeSameInstant:
		odt, err := v.odt.WithOffsetSameInstant(offset)
		if err != nil {
			return models.ValueResponse{}, rec, err
		}
		out := value{kind: kindOffsetDateTime, odt: odt}
		return out.response(), rec, nil
	default:
		return models.ValueResponse{}, rec, dErrors.Newf(dErrors.CodeInvalidInput, "mode must be %q or %q", models.ModeSameLocal, models.ModeSameInstant)
	}
}

// ValidateDate checks a year/month/day triple under a chronology and
// reports the violated range on failure. An invalid date is a verdict,
// not an error.
func (s *Service) ValidateDate(ctx context.Context, req models.ValidateDateRequest) (models.ValidateDateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.validate_date")
	defer span.End()
	started := time.Now()

	resp, rec, err := s.validateDate(req)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) validateDate(req models.ValidateDateRequest) (models.ValidateDateResponse, opRecord, error) {
	rec := opRecord{op: usage.OpValidate}
	c, err := resolveChronology(req.Chronology)
	if err != nil {
		return models.ValidateDateResponse{}, rec, err
	}
	rec.chronology = c.Name()

	if violation := checkDateComponents(c, req.Year, req.Month, req.Day); violation != nil {
		return models.ValidateDateResponse{Valid: false, Violation: violation}, rec, nil
	}
	date, err := dateOf(c, req.Year, req.Month, req.Day)
	if err != nil {
		return models.ValidateDateResponse{}, rec, err
	}
	return models.ValidateDateResponse{Valid: true, Date: date.String()}, rec, nil
}

// checkDateComponents reports the first component outside its contextual
// range, coarsest first, so a day violation always reports the real
// length of the requested month.
func checkDateComponents(c chrono.Chronology, year, month, day int) *models.FieldViolation {
	yearRange := chrono.FieldYear.Range()
	if !yearRange.IsValid(int64(year)) {
		return &models.FieldViolation{
			Field: chrono.FieldYear.Name(), Value: int64(year),
			Min: yearRange.Min(), Max: yearRange.Max(),
		}
	}
	if month < 1 || month > c.MonthsInYear() {
		return &models.FieldViolation{
			Field: chrono.FieldMonthOfYear.Name(), Value: int64(month),
			Min: 1, Max: int64(c.MonthsInYear()),
		}
	}
	length, err := c.LengthOfMonth(year, month)
	if err != nil {
		return &models.FieldViolation{
			Field: chrono.FieldMonthOfYear.Name(), Value: int64(month),
			Min: 1, Max: int64(c.MonthsInYear()),
		}
	}
	if day < 1 || day > length {
		return &models.FieldViolation{
			Field: chrono.FieldDayOfMonth.Name(), Value: int64(day),
			Min: 1, Max: int64(length),
		}
	}
	return nil
}

// dateOf materializes validated components through the chronology's own
// field setters, so the 13-month overlay lands on the right epoch day.
func dateOf(c chrono.Chronology, year, month, day int) (chrono.LocalDate, error) {
	date, err := chrono.LocalDateOfYearDay(year, 1)
	if err != nil {
		return chrono.LocalDate{}, err
	}
	date, err = c.WithDateField(date, chrono.FieldMonthOfYear, int64(month))
	if err != nil {
		return chrono.LocalDate{}, err
	}
	return c.WithDateField(date, chrono.FieldDayOfMonth, int64(day))
}

// DateFields breaks a date down into every date-based field it supports
// under the chronology, with contextual ranges.
func (s *Service) DateFields(ctx context.Context, date, chronology string) (models.DateFieldsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.date_fields")
	defer span.End()
	started := time.Now()

	resp, rec, err := s.dateFields(date, chronology)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) dateFields(dateLiteral, chronologyName string) (models.DateFieldsResponse, opRecord, error) {
	rec := opRecord{op: usage.OpFields}
	c, err := resolveChronology(chronologyName)
	if err != nil {
		return models.DateFieldsResponse{}, rec, err
	}
	rec.chronology = c.Name()
	if dateLiteral == "" {
		return models.DateFieldsResponse{}, rec, dErrors.New(dErrors.CodeInvalidInput, "date query parameter is required")
	}
	d, err := chrono.ParseLocalDate(dateLiteral)
	if err != nil {
		return models.DateFieldsResponse{}, rec, err
	}

	all := chrono.Fields()
	fields := make([]models.FieldValue, 0, len(all))
	for _, f := range all {
		if !f.IsDateBased() {
			continue
		}
		fv, err := c.FieldValue(f, &d, nil)
		if err != nil {
			continue
		}
		r, err := c.FieldRangeAt(f, &d, nil)
		if err != nil {
			continue
		}
		fields = append(fields, models.FieldValue{
			Field: f.Name(), Value: fv, Min: r.Min(), Max: r.Max(),
		})
	}
	return models.DateFieldsResponse{Date: d.String(), Chronology: c.Name(), Fields: fields}, rec, nil
}

// Chronologies lists the registered calendar systems.
func (s *Service) Chronologies(ctx context.Context) (models.ChronologiesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.chronologies")
	defer span.End()
	started := time.Now()

	all := chrono.Chronologies()
	out := make([]models.ChronologyInfo, 0, len(all))
	for _, c := range all {
		// 2001 and 2000 stand in for a common and a leap year.
		out = append(out, models.ChronologyInfo{
			Name:           c.Name(),
			MonthsInYear:   c.MonthsInYear(),
			DaysInYear:     c.LengthOfYear(2001),
			DaysInLeapYear: c.LengthOfYear(2000),
		})
	}
	resp := models.ChronologiesResponse{Chronologies: out}
	s.finish(ctx, span, started, opRecord{op: usage.OpChronologies}, nil)
	return resp, nil
}

// RegistryFields lists the closed field set with default ranges.
func (s *Service) RegistryFields(ctx context.Context) (models.RegistryFieldsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.registry_fields")
	defer span.End()
	started := time.Now()

	all := chrono.Fields()
	out := make([]models.FieldInfo, 0, len(all))
	for _, f := range all {
		r := f.Range()
		out = append(out, models.FieldInfo{
			Name:        f.Name(),
			DateBased:   f.IsDateBased(),
			TimeBased:   f.IsTimeBased(),
			Min:         r.Min(),
			SmallestMax: r.SmallestMax(),
			Max:         r.Max(),
		})
	}
	resp := models.RegistryFieldsResponse{Fields: out}
	s.finish(ctx, span, started, opRecord{op: usage.OpRegistryFields}, nil)
	return resp, nil
}

// RegistryUnits lists the closed unit set with estimated spans.
func (s *Service) RegistryUnits(ctx context.Context) (models.RegistryUnitsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.registry_units")
	defer span.End()
	started := time.Now()

	all := chrono.Units()
	out := make([]models.UnitInfo, 0, len(all))
	for _, u := range all {
		d := u.Estimated()
		out = append(out, models.UnitInfo{
			Name:             u.Name(),
			DateBased:        u.IsDateBased(),
			TimeBased:        u.IsTimeBased(),
			EstimatedSeconds: d.Seconds,
			EstimatedNanos:   d.Nanos,
		})
	}
	resp := models.RegistryUnitsResponse{Units: out}
	s.finish(ctx, span, started, opRecord{op: usage.OpUnits}, nil)
	return resp, nil
}

// Now reports the current instant seen through a zone. The instant comes
// from the request clock, so every read within one request agrees.
func (s *Service) Now(ctx context.Context, zoneName string) (models.NowResponse, error) {
	ctx, span := s.tracer.Start(ctx, "calc.now", trace.WithAttributes(
		attribute.String("calc.zone", zoneName),
	))
	defer span.End()
	started := time.Now()

	resp, rec, err := s.nowInZone(ctx, zoneName)
	s.finish(ctx, span, started, rec, err)
	return resp, err
}

func (s *Service) nowInZone(ctx context.Context, zoneName string) (models.NowResponse, opRecord, error) {
	if zoneName == "" {
		zoneName = "Z"
	}
	rec := opRecord{op: usage.OpNow, zone: zoneName}

	at := requestcontext.Now(ctx)
	zone, err := s.zones.Resolve(ctx, zoneName, at)
	if err != nil {
		return models.NowResponse{}, rec, err
	}
	offset, err := zone.Offset()
	if err != nil {
		return models.NowResponse{}, rec, dErrors.Wrapf(err, dErrors.CodeInternal, "zone resolver returned an invalid offset for %q", zoneName)
	}
	odt, err := chrono.OffsetDateTimeOfInstant(at.Unix(), at.Nanosecond(), offset)
	if err != nil {
		return models.NowResponse{}, rec, dErrors.Wrap(err, dErrors.CodeInternal, "request clock outside the representable range")
	}
	return models.NowResponse{Now: odt.String(), Zone: zone.Name, OffsetSeconds: zone.OffsetSeconds}, rec, nil
}
