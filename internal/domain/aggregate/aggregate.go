// Package aggregate computes the dashboard views over cocoon and silk records.
//
// All functions are pure: they read the slices they are given in order and
// never modify them. Input order matters for the output order of
// LocationSummaries and MonthlyAverages and for tie-breaking in LatestSilkByLocation.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/silkmarket/core/internal/domain/entities"
)

// LocationSummaries groups rates by location. Locations appear in order of
// their first record; LotCount is the number of records in the group.
func LocationSummaries(rates []entities.CocoonRate) []entities.LocationSummary {
	out := []entities.LocationSummary{}
	index := make(map[string]int)
	avgSums := []float64{}

	for _, r := range rates {
		i, ok := index[r.Location]
		if !ok {
			i = len(out)
			index[r.Location] = i
			out = append(out, entities.LocationSummary{
				Location:     r.Location,
				HighestPrice: math.Inf(-1),
				MinimumPrice: math.Inf(1),
			})
			avgSums = append(avgSums, 0)
		}

		s := &out[i]
		s.HighestPrice = math.Max(s.HighestPrice, r.MaxPrice)
		s.MinimumPrice = math.Min(s.MinimumPrice, r.MinPrice)
		s.TotalQuantity += r.Quantity
		s.LotCount++
		avgSums[i] += r.AvgPrice
	}

	for i := range out {
		out[i].AveragePrice = avgSums[i] / float64(out[i].LotCount)
	}
	return out
}

// MonthlyAverages averages the column chosen by priceType per (month, location)
// pair, where month is the first seven characters of the date. Rows come out
// in order of each pair's first record.
func MonthlyAverages(rates []entities.CocoonRate, priceType entities.PriceType) []entities.MonthlyPrice {
	type key struct{ month, location string }

	out := []entities.MonthlyPrice{}
	index := make(map[key]int)
	counts := []int{}

	for _, r := range rates {
		k := key{month: r.Month(), location: r.Location}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, entities.MonthlyPrice{Month: k.month, Location: k.location})
			counts = append(counts, 0)
		}
		out[i].Price += r.Price(priceType)
		counts[i]++
	}

	for i := range out {
		out[i].Price /= float64(counts[i])
	}
	return out
}

// LatestSilkByLocation picks, per location, the record with the latest date.
// A later record only replaces the current pick when its date is strictly
// newer, so on equal dates the earliest record in prices wins. The result is
// sorted by location.
func LatestSilkByLocation(prices []entities.SilkPrice) []entities.SilkPrice {
	latest := make(map[string]entities.SilkPrice)
	for _, p := range prices {
		cur, ok := latest[p.Location]
		if !ok || DateAfter(p.Date, cur.Date) {
			latest[p.Location] = p
		}
	}

	out := make([]entities.SilkPrice, 0, len(latest))
	for _, p := range latest {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// SortCocoonRates orders rates by date descending then location ascending, in place.
func SortCocoonRates(rates []entities.CocoonRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		if c := CompareDates(rates[i].Date, rates[j].Date); c != 0 {
			return c > 0
		}
		return rates[i].Location < rates[j].Location
	})
}

// SortSilkPrices orders prices by date descending then location ascending, in place.
func SortSilkPrices(prices []entities.SilkPrice) {
	sort.SliceStable(prices, func(i, j int) bool {
		if c := CompareDates(prices[i].Date, prices[j].Date); c != 0 {
			return c > 0
		}
		return prices[i].Location < prices[j].Location
	})
}

// DateAfter reports whether date a is strictly later than date b.
func DateAfter(a, b string) bool {
	return CompareDates(a, b) > 0
}

// CompareDates compares two observation dates chronologically. Dates that
// fail to parse fall back to string comparison.
func CompareDates(a, b string) int {
	ta, errA := entities.ParseDate(a)
	tb, errB := entities.ParseDate(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return ta.Compare(tb)
}
