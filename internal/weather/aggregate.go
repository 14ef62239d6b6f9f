package weather

import (
	"sort"
	"time"
)

// Sample is a single timed reading used to build daily summaries from
// providers that only report sub-daily data.
type Sample struct {
	Time         time.Time
	TemperatureC float64
	Condition    Condition
	Description  string
	Icon         string
}

// SummarizeDays groups samples by calendar day in each sample's own time zone.
// Temperatures become the day's min and max; the condition is the one seen
// most often, ties going to the one seen first. Days are returned in order.
func SummarizeDays(samples []Sample) []DailySummary {
	type bucket struct {
		summary DailySummary
		counts  map[Condition]int
		order   []Condition
		first   map[Condition]Sample
	}

	buckets := make(map[string]*bucket)
	for _, s := range samples {
		y, m, d := s.Time.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, s.Time.Location())

		key := day.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				summary: DailySummary{Day: day, MaxTemperature: s.TemperatureC, MinTemperature: s.TemperatureC},
				counts:  make(map[Condition]int),
				first:   make(map[Condition]Sample),
			}
			buckets[key] = b
		}

		if s.TemperatureC > b.summary.MaxTemperature {
			b.summary.MaxTemperature = s.TemperatureC
		}
		if s.TemperatureC < b.summary.MinTemperature {
			b.summary.MinTemperature = s.TemperatureC
		}

		if _, seen := b.first[s.Condition]; !seen {
			b.first[s.Condition] = s
			b.order = append(b.order, s.Condition)
		}
		b.counts[s.Condition]++
	}

	out := make([]DailySummary, 0, len(buckets))
	for _, b := range buckets {
		best := ConditionUnknown
		bestCount := 0
		for _, cond := range b.order {
			if b.counts[cond] > bestCount {
				best = cond
				bestCount = b.counts[cond]
			}
		}

		rep := b.first[best]
		b.summary.Condition = best
		b.summary.Description = rep.Description
		b.summary.Icon = rep.Icon
		if b.summary.Icon == "" {
			b.summary.Icon = best.Icon()
		}
		out = append(out, b.summary)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// SeriesFromSamples extracts the temperature series from samples in order.
func SeriesFromSamples(samples []Sample) TemperatureSeries {
	s := TemperatureSeries{
		Timestamps: make([]time.Time, 0, len(samples)),
		Values:     make([]float64, 0, len(samples)),
	}
	for _, sm := range samples {
		s.Timestamps = append(s.Timestamps, sm.Time)
		s.Values = append(s.Values, sm.TemperatureC)
	}
	return s
}
