// Package stats contains charge distribution calculations and reporting.
package stats

import (
	"github.com/odesza/chargehud/internal/model"
)

// Bucket is one bar of the frame-count histogram: all charges whose frame
// count falls in [Lo, Hi].
type Bucket struct {
	Lo    uint64
	Hi    uint64
	Count int
}

// Histogram buckets charges by frame count using a fixed bucket width. A
// width of zero defaults to 5 frames, which resolves the jump-height steps
// most charge platformers use.
func Histogram(charges []model.ChargeRecord, width uint64) []Bucket {
	if width == 0 {
		width = 5
	}
	if len(charges) == 0 {
		return nil
	}
	min, max := charges[0].Frames, charges[0].Frames
	for _, rec := range charges {
		if rec.Frames < min {
			min = rec.Frames
		}
		if rec.Frames > max {
			max = rec.Frames
		}
	}
	lo := (min / width) * width
	buckets := make([]Bucket, 0, (max-lo)/width+1)
	for start := lo; start <= max; start += width {
		buckets = append(buckets, Bucket{Lo: start, Hi: start + width - 1})
	}
	for _, rec := range charges {
		buckets[(rec.Frames-lo)/width].Count++
	}
	return buckets
}

// Summary computes the aggregate for an in-memory charge list. It matches
// store.AggregateCharges for the same records.
func Summary(charges []model.ChargeRecord) model.ChargeAggregate {
	var agg model.ChargeAggregate
	if len(charges) == 0 {
		return agg
	}
	agg.Count = len(charges)
	agg.MinFrames = charges[0].Frames
	var sum uint64
	for _, rec := range charges {
		if rec.Frames < agg.MinFrames {
			agg.MinFrames = rec.Frames
		}
		if rec.Frames > agg.MaxFrames {
			agg.MaxFrames = rec.Frames
		}
		sum += rec.Frames
	}
	agg.MeanFrames = float64(sum) / float64(agg.Count)
	return agg
}
