package stats

import (
	"strings"
	"testing"

	"github.com/odesza/chargehud/internal/model"
)

func recordsWithFrames(frames ...uint64) []model.ChargeRecord {
	recs := make([]model.ChargeRecord, len(frames))
	for i, f := range frames {
		recs[i] = model.ChargeRecord{Frames: f}
	}
	return recs
}

func TestHistogramBuckets(t *testing.T) {
	buckets := Histogram(recordsWithFrames(12, 13, 14, 27, 30), 5)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 buckets (10..34), got %d: %+v", len(buckets), buckets)
	}
	if buckets[0].Lo != 10 || buckets[0].Hi != 14 || buckets[0].Count != 3 {
		t.Fatalf("first bucket: %+v", buckets[0])
	}
	if buckets[3].Lo != 25 || buckets[3].Count != 1 {
		t.Fatalf("bucket 25-29: %+v", buckets[3])
	}
	if buckets[4].Lo != 30 || buckets[4].Count != 1 {
		t.Fatalf("bucket 30-34: %+v", buckets[4])
	}
}

func TestHistogramEmpty(t *testing.T) {
	if buckets := Histogram(nil, 5); buckets != nil {
		t.Fatalf("empty input produced buckets: %+v", buckets)
	}
}

func TestHistogramDefaultWidth(t *testing.T) {
	buckets := Histogram(recordsWithFrames(7), 0)
	if len(buckets) != 1 || buckets[0].Lo != 5 || buckets[0].Hi != 9 {
		t.Fatalf("default width bucket: %+v", buckets)
	}
}

func TestSummary(t *testing.T) {
	agg := Summary(recordsWithFrames(30, 60, 90))
	if agg.Count != 3 || agg.MinFrames != 30 || agg.MaxFrames != 90 || agg.MeanFrames != 60 {
		t.Fatalf("summary: %+v", agg)
	}
	if empty := Summary(nil); empty.Count != 0 {
		t.Fatalf("empty summary: %+v", empty)
	}
}

func TestRenderHistogram(t *testing.T) {
	out := RenderHistogram(Histogram(recordsWithFrames(10, 11, 20), 5), 60)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bars, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "10-14") || !strings.HasSuffix(lines[0], "2") {
		t.Fatalf("first bar: %q", lines[0])
	}
	if !strings.ContainsRune(out, barRune) {
		t.Fatalf("no bars rendered:\n%s", out)
	}
}

func TestRenderHistogramEmpty(t *testing.T) {
	if out := RenderHistogram(nil, 60); !strings.Contains(out, "no charges") {
		t.Fatalf("empty render: %q", out)
	}
}
