package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tempus/internal/calc/handler/mocks"
	"tempus/internal/calc/models"
	dErrors "tempus/pkg/domain-errors"
	"tempus/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/calc-mocks.go -package=mocks Service
type CalcHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *CalcHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestCalcHandlerSuite(t *testing.T) {
	suite.Run(t, new(CalcHandlerSuite))
}

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService, chi.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger, nil, nil, nil)
	r := chi.NewRouter()
	handler.Register(r)
	return handler, mockService, r
}

func (s *CalcHandlerSuite) TestHandlePlus() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().Plus(
		gomock.Any(),
		models.ShiftRequest{Value: "2008-02-29", Amount: 1, Unit: "years"},
	).Return(models.ValueResponse{Value: "2009-02-28", Kind: models.KindDate}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/plus",
		models.ShiftRequest{Value: "2008-02-29", Amount: 1, Unit: "years"})
	w := httptest.NewRecorder()
	handler.handlePlus(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "2009-02-28", resp["value"])
	assert.Equal(s.T(), "date", resp["kind"])
}

func (s *CalcHandlerSuite) TestHandlePlus_MalformedBody() {
	handler, _, _ := newTestHandler(s.T())

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/calc/plus",
		`{"value": "2024-01-01", "bogus": true}`)
	w := httptest.NewRecorder()
	handler.handlePlus(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "bad_request", resp["error"])
}

func (s *CalcHandlerSuite) TestHandleWith_UnsupportedField() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().With(
		gomock.Any(),
		models.WithRequest{Value: "10:15:30", Field: "day_of_month", NewValue: 5},
	).Return(models.ValueResponse{}, dErrors.New(dErrors.CodeUnsupportedField, "a time does not support day_of_month"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/with",
		models.WithRequest{Value: "10:15:30", Field: "day_of_month", NewValue: 5})
	w := httptest.NewRecorder()
	handler.handleWith(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "unsupported_field", resp["error"])
	assert.Equal(s.T(), "a time does not support day_of_month", resp["error_description"])
}

func (s *CalcHandlerSuite) TestHandleRoll() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().Roll(
		gomock.Any(),
		models.RollRequest{Value: "2024-01-31", Field: "month_of_year", Amount: 1},
	).Return(models.ValueResponse{Value: "2024-02-29", Kind: models.KindDate}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/roll",
		models.RollRequest{Value: "2024-01-31", Field: "month_of_year", Amount: 1})
	w := httptest.NewRecorder()
	handler.handleRoll(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "2024-02-29", resp["value"])
}

func (s *CalcHandlerSuite) TestHandleTruncate_InternalErrorSuppressed() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().Truncate(gomock.Any(), gomock.Any()).
		Return(models.ValueResponse{}, dErrors.New(dErrors.CodeInternal, "pgx: connection refused on db-host:5432"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/truncate",
		models.TruncateRequest{Value: "10:15:30.123", Unit: "minutes"})
	w := httptest.NewRecorder()
	handler.handleTruncate(w, req)

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "internal_error", resp["error"])
	_, leaked := resp["error_description"]
	assert.False(s.T(), leaked, "internal detail must not reach the body")
}

func (s *CalcHandlerSuite) TestHandleUntil() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().Until(
		gomock.Any(),
		models.UntilRequest{Start: "2024-01-01", End: "2025-01-01", Unit: "days"},
	).Return(models.AmountResponse{Amount: 366, Unit: "days"}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/until",
		models.UntilRequest{Start: "2024-01-01", End: "2025-01-01", Unit: "days"})
	w := httptest.NewRecorder()
	handler.handleUntil(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), float64(366), resp["amount"])
	assert.Equal(s.T(), "days", resp["unit"])
}

func (s *CalcHandlerSuite) TestHandleValidateDate_Violation() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().ValidateDate(
		gomock.Any(),
		models.ValidateDateRequest{Year: 2023, Month: 4, Day: 31},
	).Return(models.ValidateDateResponse{
		Valid:     false,
		Violation: &models.FieldViolation{Field: "day_of_month", Value: 31, Min: 1, Max: 30},
	}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/dates/validate",
		models.ValidateDateRequest{Year: 2023, Month: 4, Day: 31})
	w := httptest.NewRecorder()
	handler.handleValidateDate(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), false, resp["valid"])
	violation := resp["violation"].(map[string]any)
	assert.Equal(s.T(), "day_of_month", violation["field"])
	assert.Equal(s.T(), float64(30), violation["max"])
}

func (s *CalcHandlerSuite) TestHandleDateFields() {
	handler, mockService, _ := newTestHandler(s.T())
	mockService.EXPECT().DateFields(gomock.Any(), "2024-03-01", "coptic").
		Return(models.DateFieldsResponse{
			Date:       "2024-03-01",
			Chronology: "coptic",
			Fields: []models.FieldValue{
				{Field: "month_of_year", Value: 7, Min: 1, Max: 13},
			},
		}, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/v1/dates/fields?date=2024-03-01&chronology=coptic")
	w := httptest.NewRecorder()
	handler.handleDateFields(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "coptic", resp["chronology"])
	fields := resp["fields"].([]any)
	require.Len(s.T(), fields, 1)
	assert.Equal(s.T(), "month_of_year", fields[0].(map[string]any)["field"])
}

// The routed tests go through Register's full middleware chain rather
// than calling the handler methods directly.

func (s *CalcHandlerSuite) TestRoutedMinus() {
	_, mockService, r := newTestHandler(s.T())
	mockService.EXPECT().Minus(
		gomock.Any(),
		models.ShiftRequest{Value: "2024-06-01T10:30", Amount: 90, Unit: "minutes"},
	).Return(models.ValueResponse{Value: "2024-06-01T09:00", Kind: models.KindDateTime}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/minus",
		models.ShiftRequest{Value: "2024-06-01T10:30", Amount: 90, Unit: "minutes"})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[models.ValueResponse](s.T(), rr)
	assert.Equal(s.T(), "2024-06-01T09:00", resp.Value)
	assert.Equal(s.T(), models.KindDateTime, resp.Kind)
}

func (s *CalcHandlerSuite) TestRoutedConvertOffset() {
	_, mockService, r := newTestHandler(s.T())
	mockService.EXPECT().ConvertOffset(
		gomock.Any(),
		models.ConvertOffsetRequest{Value: "2024-06-01T10:30+02:00", Offset: "-05:00", Mode: models.ModeSameInstant},
	).Return(models.ValueResponse{Value: "2024-06-01T03:30-05:00", Kind: models.KindOffsetDateTime}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/calc/offset/convert",
		models.ConvertOffsetRequest{Value: "2024-06-01T10:30+02:00", Offset: "-05:00", Mode: models.ModeSameInstant})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "value", "2024-06-01T03:30-05:00")
}

func (s *CalcHandlerSuite) TestRoutedContentTypeRequired() {
	_, _, r := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodPost, "/v1/calc/plus", nil)
	req.Header.Set("Content-Type", "text/plain")
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *CalcHandlerSuite) TestRoutedListings() {
	_, mockService, r := newTestHandler(s.T())
	mockService.EXPECT().Chronologies(gomock.Any()).Return(models.ChronologiesResponse{
		Chronologies: []models.ChronologyInfo{
			{Name: "iso", MonthsInYear: 12, DaysInYear: 365, DaysInLeapYear: 366},
			{Name: "coptic", MonthsInYear: 13, DaysInYear: 365, DaysInLeapYear: 366},
		},
	}, nil)
	mockService.EXPECT().RegistryUnits(gomock.Any()).Return(models.RegistryUnitsResponse{
		Units: []models.UnitInfo{
			{Name: "nanos", TimeBased: true, EstimatedNanos: 1},
		},
	}, nil)

	rr := testutil.DoRequest(r, testutil.NewRequest(s.T(), http.MethodGet, "/v1/chronologies"))
	testutil.AssertStatusOK(s.T(), rr)
	chronologies := testutil.UnmarshalResponse[models.ChronologiesResponse](s.T(), rr)
	require.Len(s.T(), chronologies.Chronologies, 2)
	assert.Equal(s.T(), 13, chronologies.Chronologies[1].MonthsInYear)

	rr = testutil.DoRequest(r, testutil.NewRequest(s.T(), http.MethodGet, "/v1/registry/units"))
	testutil.AssertStatusOK(s.T(), rr)
	units := testutil.UnmarshalResponse[models.RegistryUnitsResponse](s.T(), rr)
	require.Len(s.T(), units.Units, 1)
	assert.Equal(s.T(), "nanos", units.Units[0].Name)
}

func (s *CalcHandlerSuite) TestRoutedNow() {
	_, mockService, r := newTestHandler(s.T())
	mockService.EXPECT().Now(gomock.Any(), "cairo").Return(models.NowResponse{
		Now:           "2026-08-23T14:00:00+02:00",
		Zone:          "cairo",
		OffsetSeconds: 7200,
	}, nil)

	rr := testutil.DoRequest(r, testutil.NewRequest(s.T(), http.MethodGet, "/v1/now?zone=cairo"))

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[models.NowResponse](s.T(), rr)
	assert.Equal(s.T(), "cairo", resp.Zone)
	assert.Equal(s.T(), 7200, resp.OffsetSeconds)
}

func (s *CalcHandlerSuite) TestRoutedNow_ZoneNotFound() {
	_, mockService, r := newTestHandler(s.T())
	mockService.EXPECT().Now(gomock.Any(), "atlantis").
		Return(models.NowResponse{}, dErrors.New(dErrors.CodeNotFound, "zone \"atlantis\" is not registered"))

	rr := testutil.DoRequest(r, testutil.NewRequest(s.T(), http.MethodGet, "/v1/now?zone=atlantis"))

	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}
