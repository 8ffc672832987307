// Package reports aggregates quotes into drafting activity reports.
// All functions are pure, reading the quotes is up to the caller.
package reports

import (
	"time"

	"github.com/quote-zero/backend/internal/models"
	"github.com/quote-zero/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Bucket is the aggregate of all quotes drafted in one calendar
// interval of the reporting window.
type Bucket struct {
	Label   string          `json:"label" example:"Jun/24"`   // Display label derived from the interval start
	From    time.Time       `json:"from"`                     // Start of the interval
	To      time.Time       `json:"to"`                       // End of the interval, inclusive
	Count   uint            `json:"count" example:"2"`        // Number of quotes drafted in the interval
	Total   decimal.Decimal `json:"total" example:"300"`      // Sum of the quote totals
	Average decimal.Decimal `json:"average" example:"150"`    // Total divided by count, 0 for empty buckets
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status models.QuoteStatus `json:"status" example:"draft"`
	Count  uint               `json:"count" example:"7"`
}

// Report is the aggregation of all quotes drafted in the reporting
// window for one period granularity.
type Report struct {
	Period   types.Period    `json:"period" example:"month"`
	Buckets  []Bucket        `json:"buckets"`
	Statuses []StatusCount   `json:"statuses"` // Status distribution over the whole window
	Count    uint            `json:"count" example:"14"`
	Total    decimal.Decimal `json:"total" example:"2100.50"`
	Average  decimal.Decimal `json:"average" example:"150.04"`
}

// Aggregate builds the report for the quotes drafted in the reporting
// window ending at now. Quotes outside the window are ignored, empty
// buckets are kept with all metrics at zero so that the sequence of
// intervals is always complete.
func Aggregate(quotes []models.Quote, period types.Period, now time.Time, weekStart time.Weekday) Report {
	intervals := period.Intervals(now, weekStart)

	buckets := make([]Bucket, 0, len(intervals))
	for _, interval := range intervals {
		buckets = append(buckets, Bucket{
			Label:   interval.Label(period),
			From:    interval.Start,
			To:      interval.End,
			Total:   decimal.Zero,
			Average: decimal.Zero,
		})
	}

	statuses := map[models.QuoteStatus]uint{
		models.StatusDraft:    0,
		models.StatusSent:     0,
		models.StatusApproved: 0,
	}

	report := Report{
		Period:  period,
		Total:   decimal.Zero,
		Average: decimal.Zero,
	}

	for _, quote := range quotes {
		for i, interval := range intervals {
			if !interval.Contains(quote.CreatedAt) {
				continue
			}

			buckets[i].Count++
			buckets[i].Total = buckets[i].Total.Add(quote.Total)

			report.Count++
			report.Total = report.Total.Add(quote.Total)
			statuses[quote.Status]++

			break
		}
	}

	for i := range buckets {
		if buckets[i].Count > 0 {
			buckets[i].Average = average(buckets[i].Total, buckets[i].Count)
		}
	}

	if report.Count > 0 {
		report.Average = average(report.Total, report.Count)
	}

	report.Buckets = buckets
	report.Statuses = []StatusCount{
		{models.StatusDraft, statuses[models.StatusDraft]},
		{models.StatusSent, statuses[models.StatusSent]},
		{models.StatusApproved, statuses[models.StatusApproved]},
	}

	return report
}

func average(total decimal.Decimal, count uint) decimal.Decimal {
	return total.DivRound(decimal.NewFromUint64(uint64(count)), 8)
}
