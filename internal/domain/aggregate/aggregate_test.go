package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silkmarket/core/internal/domain/entities"
)

func cocoon(location, date string, max, avg, min, qty float64) entities.CocoonRate {
	return entities.CocoonRate{Location: location, Date: date, MaxPrice: max, AvgPrice: avg, MinPrice: min, Quantity: qty}
}

func TestLocationSummariesSingleLocation(t *testing.T) {
	rates := []entities.CocoonRate{
		cocoon("Karnataka", "2024-01-15", 10, 8, 5, 1),
		cocoon("Karnataka", "2024-01-16", 20, 12, 9, 2),
	}

	got := LocationSummaries(rates)
	require.Len(t, got, 1)
	assert.Equal(t, entities.LocationSummary{
		Location:      "Karnataka",
		HighestPrice:  20,
		AveragePrice:  10,
		MinimumPrice:  5,
		TotalQuantity: 3,
		LotCount:      2,
	}, got[0])
}

func TestLocationSummariesKeepsFirstAppearanceOrder(t *testing.T) {
	rates := []entities.CocoonRate{
		cocoon("West Bengal", "2024-01-15", 470, 440, 420, 2000),
		cocoon("Karnataka", "2024-01-15", 450, 420, 400, 1500),
		cocoon("West Bengal", "2024-01-16", 480, 450, 430, 2200),
	}

	got := LocationSummaries(rates)
	require.Len(t, got, 2)
	assert.Equal(t, "West Bengal", got[0].Location)
	assert.Equal(t, "Karnataka", got[1].Location)
	assert.Equal(t, 2, got[0].LotCount)
	assert.InDelta(t, 445.0, got[0].AveragePrice, 1e-9)
}

func TestLocationSummariesEmpty(t *testing.T) {
	got := LocationSummaries(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMonthlyAverages(t *testing.T) {
	rates := []entities.CocoonRate{
		cocoon("Karnataka", "2024-01-15", 450, 420, 400, 1),
		cocoon("Karnataka", "2024-01-16", 460, 430, 410, 1),
		cocoon("Karnataka", "2024-02-01", 500, 480, 470, 1),
		cocoon("Tamil Nadu", "2024-01-15", 440, 410, 390, 1),
	}

	got := MonthlyAverages(rates, entities.PriceTypeAverage)
	assert.Equal(t, []entities.MonthlyPrice{
		{Month: "2024-01", Location: "Karnataka", Price: 425},
		{Month: "2024-02", Location: "Karnataka", Price: 480},
		{Month: "2024-01", Location: "Tamil Nadu", Price: 410},
	}, got)

	highest := MonthlyAverages(rates, entities.PriceTypeHighest)
	assert.Equal(t, 455.0, highest[0].Price)

	minimum := MonthlyAverages(rates, entities.PriceTypeMinimum)
	assert.Equal(t, 405.0, minimum[0].Price)
}

func TestMonthlyAveragesUnknownTypeFallsBackToAverage(t *testing.T) {
	rates := []entities.CocoonRate{cocoon("Karnataka", "2024-01-15", 450, 420, 400, 1)}

	got := MonthlyAverages(rates, entities.ParsePriceType("median"))
	require.Len(t, got, 1)
	assert.Equal(t, 420.0, got[0].Price)
}

func TestLatestSilkByLocation(t *testing.T) {
	prices := []entities.SilkPrice{
		{ID: 1, Location: "Tamil Nadu", Price: 3450, Date: "2024-01-15"},
		{ID: 2, Location: "Karnataka", Price: 3550, Date: "2024-01-16"},
		{ID: 3, Location: "Karnataka", Price: 3500, Date: "2024-01-15"},
		{ID: 4, Location: "Tamil Nadu", Price: 3500, Date: "2024-01-16"},
	}

	got := LatestSilkByLocation(prices)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestLatestSilkByLocationTieKeepsFirstScanned(t *testing.T) {
	prices := []entities.SilkPrice{
		{ID: 7, Location: "Karnataka", Price: 3600, Date: "2024-01-16"},
		{ID: 8, Location: "Karnataka", Price: 3400, Date: "2024-01-16"},
	}

	got := LatestSilkByLocation(prices)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
}

func TestSortCocoonRates(t *testing.T) {
	rates := []entities.CocoonRate{
		cocoon("West Bengal", "2024-01-15", 0, 0, 0, 0),
		cocoon("Karnataka", "2024-01-16", 0, 0, 0, 0),
		cocoon("Karnataka", "2024-01-15", 0, 0, 0, 0),
		cocoon("Assam", "2024-01-16T08:00:00Z", 0, 0, 0, 0),
	}

	SortCocoonRates(rates)

	var order []string
	for _, r := range rates {
		order = append(order, r.Date+" "+r.Location)
	}
	assert.Equal(t, []string{
		"2024-01-16T08:00:00Z Assam",
		"2024-01-16 Karnataka",
		"2024-01-15 Karnataka",
		"2024-01-15 West Bengal",
	}, order)
}

func TestCompareDates(t *testing.T) {
	assert.Equal(t, 1, CompareDates("2024-02-01", "2024-01-31"))
	assert.Equal(t, 0, CompareDates("2024-02-01", "2024-02-01T00:00:00Z"))
	assert.Equal(t, -1, CompareDates("garbage-a", "garbage-b"))
}
