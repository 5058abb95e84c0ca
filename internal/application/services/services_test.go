package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/silkmarket/core/internal/adapters/repository"
	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/config"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/infrastructure/persistence"
	"github.com/silkmarket/core/internal/ports"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateSeedScenario(t *testing.T) {
	b, err := Calculate(CalculatorInput{
		UnitPrice:     dec("200"),
		TotalWeight:   dec("5"),
		BatchCapacity: dec("1"),
		YieldPerBatch: dec("50"),
		SellRate:      dec("1200"),
	})
	require.NoError(t, err)

	assert.True(t, b.MaterialCost.Equal(dec("1000")))
	assert.True(t, b.Commission.Equal(dec("10")))
	assert.True(t, b.Transport.Equal(dec("10")))
	assert.True(t, b.TotalCost.Equal(dec("1020")))
	assert.True(t, b.BatchCount.Equal(dec("5")))
	assert.True(t, b.OutputKg.Equal(dec("0.25")))
	assert.True(t, b.Revenue.Equal(dec("300")))
	assert.True(t, b.ProfitLoss.Equal(dec("-720")))
	assert.InDelta(t, -70.588, b.Percentage.InexactFloat64(), 0.001)
	assert.Equal(t, StatusLoss, b.Status)
}

func TestCalculateProfitAndBreakEven(t *testing.T) {
	b, err := Calculate(CalculatorInput{
		UnitPrice: dec("100"), TotalWeight: dec("10"), BatchCapacity: dec("2"),
		YieldPerBatch: dec("400"), SellRate: dec("1000"),
	})
	require.NoError(t, err)
	// cost 1000 + 10 + 20; output 5 batches * 0.4 kg
	assert.True(t, b.Revenue.Equal(dec("2000")))
	assert.Equal(t, StatusProfit, b.Status)

	b, err = Calculate(CalculatorInput{BatchCapacity: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, StatusBreakEven, b.Status)
	assert.True(t, b.Percentage.IsZero())
}

func TestCalculateRejectsBadInput(t *testing.T) {
	_, err := Calculate(CalculatorInput{
		UnitPrice: dec("-1"), TotalWeight: dec("5"), BatchCapacity: dec("0"),
		YieldPerBatch: dec("50"), SellRate: dec("1200"),
	})
	require.Error(t, err)

	var verrs entities.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"unit_price", "batch_capacity"}, fields)
}

func TestCalculatorServiceReturnsFloats(t *testing.T) {
	resp, err := NewCalculatorService().Calculate(ports.CalculatorRequest{
		UnitPrice: ptr(200.0), TotalWeight: ptr(5.0), BatchCapacity: ptr(1.0),
		YieldPerBatch: ptr(50.0), SellRate: ptr(1200.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1020.0, resp.TotalCost)
	assert.Equal(t, 0.25, resp.OutputKg)
	assert.Equal(t, -720.0, resp.ProfitLoss)
	assert.Equal(t, -70.5882, resp.Percentage)
	assert.Equal(t, "loss", resp.Status)
}

func TestPlaintextVerifier(t *testing.T) {
	v := NewPlaintextVerifier("admin123")
	assert.True(t, v.Verify("admin123"))
	assert.False(t, v.Verify("admin1234"))
	assert.False(t, v.Verify(""))

	assert.False(t, NewPlaintextVerifier("").Verify(""))
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier(string(hash))
	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("S3cret"))
	assert.False(t, v.Verify(""))
}

func TestNewCredentialVerifierPrefersHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
	require.NoError(t, err)

	v, err := NewCredentialVerifier(config.AdminConfig{Password: "plain", PasswordHash: string(hash)})
	require.NoError(t, err)
	assert.Equal(t, "bcrypt", v.Mode())
	assert.True(t, v.Verify("from-hash"))
	assert.False(t, v.Verify("plain"))

	v, err = NewCredentialVerifier(config.AdminConfig{Password: "plain"})
	require.NoError(t, err)
	assert.Equal(t, "plaintext", v.Mode())

	_, err = NewCredentialVerifier(config.AdminConfig{PasswordHash: "not-a-hash"})
	assert.Error(t, err)
}

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("rotate-me")
	require.NoError(t, err)
	assert.True(t, NewBcryptVerifier(hash).Verify("rotate-me"))

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestAuthServiceAuthenticate(t *testing.T) {
	svc := NewAuthService(NewPlaintextVerifier("admin123"), logger.NewNop())
	ctx := context.Background()

	assert.NoError(t, svc.Authenticate(ctx, "admin123"))
	assert.ErrorIs(t, svc.Authenticate(ctx, "wrong"), entities.ErrUnauthorized)
	assert.ErrorIs(t, svc.Authenticate(ctx, ""), entities.ErrUnauthorized)
}

func newMarketServices(t *testing.T) (*CocoonService, *SilkService) {
	t.Helper()
	sink := persistence.NewFileSink(filepath.Join(t.TempDir(), "silk_market.json"))
	store, err := repository.Open(context.Background(), sink, logger.NewNop(), false)
	require.NoError(t, err)

	log := logger.NewNop()
	return NewCocoonService(repository.NewCocoonRepository(store), log),
		NewSilkService(repository.NewSilkRepository(store), log)
}

func TestCocoonServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	cocoon, _ := newMarketServices(t)

	res, err := cocoon.Create(ctx, ports.CreateCocoonRequest{
		Location: "Kolar", Date: "2024-02-01",
		MaxPrice: ptr(20.0), AvgPrice: ptr(10.0), MinPrice: ptr(5.0), Quantity: ptr(3.0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)

	rec, err := cocoon.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Kolar", rec.Location)

	_, err = cocoon.Update(ctx, 1, ports.UpdateCocoonRequest{})
	assert.ErrorIs(t, err, entities.ErrNoFieldsToUpdate)

	_, err = cocoon.Update(ctx, 99, ports.UpdateCocoonRequest{Quantity: ptr(1.0)})
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = cocoon.Update(ctx, 1, ports.UpdateCocoonRequest{Quantity: ptr(7.0)})
	require.NoError(t, err)
	assert.Equal(t, 7.0, cocoon.Locations(ctx)[0].TotalQuantity)

	monthly := cocoon.Monthly(ctx, entities.PriceTypeHighest)
	require.Len(t, monthly, 1)
	assert.Equal(t, entities.MonthlyPrice{Month: "2024-02", Location: "Kolar", Price: 20}, monthly[0])

	_, err = cocoon.Delete(ctx, 1)
	require.NoError(t, err)
	_, err = cocoon.Delete(ctx, 1)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	_, err = cocoon.Get(ctx, 1)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.NotNil(t, cocoon.List(ctx))
	assert.Empty(t, cocoon.List(ctx))
}

func TestSilkServiceLatestPerLocation(t *testing.T) {
	ctx := context.Background()
	_, silk := newMarketServices(t)

	for _, req := range []ports.CreateSilkRequest{
		{Location: "Mysuru", Price: ptr(3500.0), Date: "2024-01-15"},
		{Location: "Mysuru", Price: ptr(3600.0), Date: "2024-01-20"},
		{Location: "Kolar", Price: ptr(3400.0), Date: "2024-01-18"},
	} {
		_, err := silk.Create(ctx, req)
		require.NoError(t, err)
	}

	latest := silk.Locations(ctx)
	require.Len(t, latest, 2)
	assert.Equal(t, "Kolar", latest[0].Location)
	assert.Equal(t, 3600.0, latest[1].Price)

	_, err := silk.Update(ctx, 2, ports.UpdateSilkRequest{})
	assert.ErrorIs(t, err, entities.ErrNoFieldsToUpdate)

	_, err = silk.Get(ctx, 4)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
