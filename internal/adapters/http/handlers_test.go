package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silkmarket/core/internal/adapters/repository"
	"github.com/silkmarket/core/internal/application/services"
	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/infrastructure/persistence"
)

const testSecret = "s3cret"

func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()
	log := logger.NewNop()

	sink := persistence.NewFileSink(filepath.Join(t.TempDir(), "silk_market.json"))
	store, err := repository.Open(context.Background(), sink, log, false)
	require.NoError(t, err)

	h := &Handlers{
		Cocoon:     NewCocoonHandler(services.NewCocoonService(repository.NewCocoonRepository(store), log), log),
		Silk:       NewSilkHandler(services.NewSilkService(repository.NewSilkRepository(store), log), log),
		Admin:      NewAdminHandler(services.NewAuthService(services.NewPlaintextVerifier(testSecret), log), log),
		Calculator: NewCalculatorHandler(services.NewCalculatorService()),
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(log)
	h.Register(e.Group("/api"))
	return e
}

func do(e *echo.Echo, method, path, body, credential string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if credential != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+credential)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListEndpointsReturnEmptyArrays(t *testing.T) {
	e := newTestAPI(t)

	for _, path := range []string{"/api/cocoon", "/api/cocoon/locations", "/api/cocoon/monthly", "/api/silk", "/api/silk/locations"} {
		rec := do(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, "[]", rec.Body.String(), path)
	}
}

func TestAdminRoutesRequireCredential(t *testing.T) {
	e := newTestAPI(t)
	body := `{"location":"Kolar","date":"2024-01-15","max_price":1,"avg_price":1,"min_price":1,"quantity":1}`

	rec := do(e, http.MethodPost, "/api/admin/cocoon", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgNoAuthHeader, decode[ErrorResponse](t, rec).Error)

	rec = do(e, http.MethodPost, "/api/admin/cocoon", body, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgInvalidPassword, decode[ErrorResponse](t, rec).Error)

	rec = do(e, http.MethodDelete, "/api/admin/silk/1", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/api/cocoon", "", "")
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestLogin(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/api/admin/login", "", testSecret)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Admin authenticated"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/admin/login", "", "nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/api/admin/login", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgNoAuthHeader, decode[ErrorResponse](t, rec).Error)
}

func TestCocoonCRUD(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/api/admin/cocoon",
		`{"location":"  Kolar ","date":"2024-01-15","max_price":20,"avg_price":12,"min_price":5,"quantity":1}`, testSecret)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[MessageResponse](t, rec)
	assert.True(t, created.Success)
	require.NotNil(t, created.ID)
	assert.Equal(t, int64(1), *created.ID)

	rec = do(e, http.MethodPost, "/api/admin/cocoon",
		`{"location":"Kolar","date":"2024-01-20","max_price":15,"avg_price":8,"min_price":6,"quantity":2}`, testSecret)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/cocoon/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kolar", decode[entities.CocoonRate](t, rec).Location)

	rec = do(e, http.MethodGet, "/api/cocoon/locations", "", "")
	locations := decode[[]entities.LocationSummary](t, rec)
	require.Len(t, locations, 1)
	assert.Equal(t, entities.LocationSummary{
		Location: "Kolar", HighestPrice: 20, AveragePrice: 10, MinimumPrice: 5, TotalQuantity: 3, LotCount: 2,
	}, locations[0])

	rec = do(e, http.MethodGet, "/api/cocoon/monthly?type=highest", "", "")
	assert.JSONEq(t, `[{"month":"2024-01","location":"Kolar","price":17.5}]`, rec.Body.String())

	rec = do(e, http.MethodPut, "/api/admin/cocoon/1", `{"quantity":4}`, testSecret)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Cocoon rate updated successfully"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/cocoon/1", "", "")
	updated := decode[entities.CocoonRate](t, rec)
	assert.Equal(t, 4.0, updated.Quantity)
	assert.Equal(t, 20.0, updated.MaxPrice)

	rec = do(e, http.MethodDelete, "/api/admin/cocoon/1", "", testSecret)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/cocoon", "", "")
	list := decode[[]entities.CocoonRate](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)
}

func TestCocoonUpdateErrors(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPut, "/api/admin/cocoon/7", `{"quantity":4}`, testSecret)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cocoon rate not found", decode[ErrorResponse](t, rec).Error)

	rec = do(e, http.MethodPut, "/api/admin/cocoon/7", `{}`, testSecret)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No valid fields to update", decode[ErrorResponse](t, rec).Error)

	rec = do(e, http.MethodPut, "/api/admin/cocoon/7", `{"location":"   "}`, testSecret)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "location", decode[ValidationErrorResponse](t, rec).Errors[0].Field)

	rec = do(e, http.MethodDelete, "/api/admin/cocoon/7", "", testSecret)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodDelete, "/api/admin/cocoon/abc", "", testSecret)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/api/admin/cocoon",
		`{"location":"","date":"15/01/2024","max_price":-1,"avg_price":1,"min_price":1}`, testSecret)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[ValidationErrorResponse](t, rec)
	fields := map[string]string{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "Location is required", fields["location"])
	assert.Equal(t, "Valid date is required", fields["date"])
	assert.Equal(t, "Max price must be a positive number", fields["max_price"])
	assert.Contains(t, fields, "quantity")
	assert.NotContains(t, fields, "avg_price")

	rec = do(e, http.MethodPost, "/api/admin/silk", `{"location":"Kolar","price":"cheap","date":"2024-01-15"}`, testSecret)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "price", decode[ValidationErrorResponse](t, rec).Errors[0].Field)

	rec = do(e, http.MethodGet, "/api/silk", "", "")
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSilkLatestPerLocation(t *testing.T) {
	e := newTestAPI(t)

	for _, body := range []string{
		`{"location":"Mysuru","price":3500,"date":"2024-01-15"}`,
		`{"location":"Mysuru","price":3600,"date":"2024-01-16T08:00:00Z"}`,
		`{"location":"Kolar","price":3400,"date":"2024-01-14"}`,
	} {
		rec := do(e, http.MethodPost, "/api/admin/silk", body, testSecret)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(e, http.MethodGet, "/api/silk/locations", "", "")
	latest := decode[[]entities.SilkPrice](t, rec)
	require.Len(t, latest, 2)
	assert.Equal(t, "Kolar", latest[0].Location)
	assert.Equal(t, 3600.0, latest[1].Price)

	rec = do(e, http.MethodPut, "/api/admin/silk/3", `{"price":3450}`, testSecret)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/silk/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Silk price not found", decode[ErrorResponse](t, rec).Error)
}

func TestCalculatorEndpoint(t *testing.T) {
	e := newTestAPI(t)

	rec := do(e, http.MethodPost, "/api/calculator",
		`{"unit_price":200,"total_weight":5,"batch_capacity":1,"yield_per_batch":50,"sell_rate":1200}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"material_cost":1000,"commission":10,"transport":10,"total_cost":1020,
		"batch_count":5,"output_kg":0.25,"revenue":300,"profit_loss":-720,
		"percentage":-70.5882,"status":"loss"
	}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/calculator",
		`{"unit_price":200,"total_weight":5,"batch_capacity":0,"yield_per_batch":50,"sell_rate":1200}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[ValidationErrorResponse](t, rec).Errors
	require.Len(t, errs, 1)
	assert.Equal(t, "batch_capacity", errs[0].Field)
	assert.Equal(t, "Batch capacity must be greater than zero", errs[0].Message)
}
