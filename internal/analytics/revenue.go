package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"remit-analytics/internal/domain"
)

// RevenueResult holds the transaction revenue pipeline output.
type RevenueResult struct {
	Corridors []*domain.CorridorMonthMetric
	Segments  []*domain.SegmentSummary

	// DroppedNoRate counts completed transactions excluded because no
	// exchange rate row existed for their (currency_pair, date). The
	// rate join is deliberately inner; the drop is surfaced, not fixed.
	DroppedNoRate int
}

// convertedTx is a completed transaction that survived the rate join.
type convertedTx struct {
	userID       int64
	currencyPair string
	month        time.Time
	sourceUSD    decimal.Decimal
	convertedUSD decimal.Decimal
	feeUSD       decimal.Decimal
	revenueUSD   decimal.Decimal
}

// ComputeRevenueMetrics builds the corridor revenue table and the user
// segmentation summary. Only completed transactions from non-test users
// participate. The exchange-rate join requires an exact (pair, date) match;
// unmatched transactions drop out of every downstream aggregate, including
// segmentation.
func ComputeRevenueMetrics(
	users []*domain.User,
	transactions []*domain.Transaction,
	rates []*domain.ExchangeRate,
	fees []*domain.TransactionFee,
) *RevenueResult {
	usersByID := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		if u.IsTestUser() {
			continue
		}
		usersByID[u.ID] = u
	}

	rateByKey := make(map[string]float64, len(rates))
	for _, r := range rates {
		rateByKey[r.LookupKey()] = r.Rate
	}

	// When a pair carries several active fee rows, the lexically lowest
	// fee_type wins, matching the store lookup contract.
	activeFeeByPair := make(map[string]*domain.TransactionFee, len(fees))
	for _, f := range fees {
		if !f.IsActive {
			continue
		}
		if cur, ok := activeFeeByPair[f.CurrencyPair]; !ok || f.FeeType < cur.FeeType {
			activeFeeByPair[f.CurrencyPair] = f
		}
	}

	result := &RevenueResult{}

	var converted []convertedTx
	for _, tx := range transactions {
		if tx.Status != domain.StatusCompleted {
			continue
		}
		if _, ok := usersByID[tx.UserID]; !ok {
			continue
		}

		pair := tx.CurrencyPair()
		rate, ok := rateByKey[domain.RateLookupKey(pair, tx.InitiatedAt)]
		if !ok {
			result.DroppedNoRate++
			continue
		}

		sourceUSD := CentsToUSD(tx.SourceAmount)
		converted = append(converted, convertedTx{
			userID:       tx.UserID,
			currencyPair: pair,
			month:        TruncateMonth(tx.InitiatedAt),
			sourceUSD:    sourceUSD,
			convertedUSD: sourceUSD.Mul(decimal.NewFromFloat(rate)),
			feeUSD:       CentsToUSD(tx.FeeAmount),
			revenueUSD:   decimal.NewFromFloat(tx.RevenueUSD),
		})
	}

	result.Corridors = buildCorridorMetrics(converted, activeFeeByPair)
	result.Segments = buildSegmentSummary(usersByID, converted)

	return result
}

type corridorAccum struct {
	currencyPair string
	month        time.Time

	txCount   int
	users     map[int64]struct{}
	volume    decimal.Decimal
	converted decimal.Decimal
	fees      decimal.Decimal
	revenue   decimal.Decimal
}

func buildCorridorMetrics(txs []convertedTx, activeFeeByPair map[string]*domain.TransactionFee) []*domain.CorridorMonthMetric {
	groups := make(map[string]*corridorAccum)
	for _, tx := range txs {
		key := tx.currencyPair + "|" + MonthKey(tx.month)
		acc, ok := groups[key]
		if !ok {
			acc = &corridorAccum{
				currencyPair: tx.currencyPair,
				month:        tx.month,
				users:        make(map[int64]struct{}),
			}
			groups[key] = acc
		}
		acc.txCount++
		acc.users[tx.userID] = struct{}{}
		acc.volume = acc.volume.Add(tx.sourceUSD)
		acc.converted = acc.converted.Add(tx.convertedUSD)
		acc.fees = acc.fees.Add(tx.feeUSD)
		acc.revenue = acc.revenue.Add(tx.revenueUSD)
	}

	metrics := make([]*domain.CorridorMonthMetric, 0, len(groups))
	for _, acc := range groups {
		m := &domain.CorridorMonthMetric{
			CurrencyPair:      acc.currencyPair,
			Month:             acc.month,
			TransactionCount:  acc.txCount,
			UniqueUsers:       len(acc.users),
			TotalVolumeUSD:    acc.volume.Round(2).InexactFloat64(),
			TotalConvertedUSD: acc.converted.Round(2).InexactFloat64(),
			TotalFeesUSD:      acc.fees.Round(2).InexactFloat64(),
			TotalRevenueUSD:   acc.revenue.Round(2).InexactFloat64(),
		}

		if avg := SafeDivide(m.TotalVolumeUSD, float64(m.TransactionCount)); avg != nil {
			v := Round2(*avg)
			m.AvgTransactionUSD = &v
		}
		m.EffectiveFeeRate = SafeDivide(m.TotalFeesUSD, m.TotalVolumeUSD)
		m.PricingRecommendation = PricingRecommendation(m.EffectiveFeeRate)

		if f, ok := activeFeeByPair[acc.currencyPair]; ok {
			feeType := f.FeeType
			feeValue := f.FeeValue
			m.ConfiguredFeeType = &feeType
			m.ConfiguredFeeValue = &feeValue
		}

		metrics = append(metrics, m)
	}

	// Output order: month ASC, total fees DESC, corridor ASC as tiebreak.
	sort.Slice(metrics, func(i, j int) bool {
		a, b := metrics[i], metrics[j]
		if !a.Month.Equal(b.Month) {
			return a.Month.Before(b.Month)
		}
		if a.TotalFeesUSD != b.TotalFeesUSD {
			return a.TotalFeesUSD > b.TotalFeesUSD
		}
		return a.CurrencyPair < b.CurrencyPair
	})

	return metrics
}

// buildSegmentSummary classifies every non-test user into exactly one
// segment and aggregates counts and value per segment. Users with zero
// surviving completed transactions land in Dormant.
func buildSegmentSummary(usersByID map[int64]*domain.User, txs []convertedTx) []*domain.SegmentSummary {
	counts := make(map[int64]int)
	values := make(map[int64]decimal.Decimal)
	for _, tx := range txs {
		counts[tx.userID]++
		values[tx.userID] = values[tx.userID].Add(tx.sourceUSD)
	}

	segmentUsers := make(map[string]int)
	segmentValue := make(map[string]decimal.Decimal)
	for id := range usersByID {
		value := values[id].Round(2)
		segment := UserSegment(counts[id], value.InexactFloat64())
		segmentUsers[segment]++
		segmentValue[segment] = segmentValue[segment].Add(value)
	}

	// Ladder order, skipping empty segments.
	order := []string{
		domain.SegmentHighValue,
		domain.SegmentRegular,
		domain.SegmentOccasional,
		domain.SegmentDormant,
	}
	summaries := make([]*domain.SegmentSummary, 0, len(segmentUsers))
	for _, segment := range order {
		if n, ok := segmentUsers[segment]; ok {
			summaries = append(summaries, &domain.SegmentSummary{
				Segment:       segment,
				UserCount:     n,
				TotalValueUSD: segmentValue[segment].Round(2).InexactFloat64(),
			})
		}
	}
	return summaries
}
