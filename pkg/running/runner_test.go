package running

import (
	"context"
	"testing"

	"ResultAggregator/pkg/results"
)

func TestRunAggregatesAllShots(t *testing.T) {
	const shots = 100

	r := NewRunner[results.Scalar](shots)
	r.Workers = 4

	agg, err := r.Run(context.Background(), func(shot int, rec *results.Container[results.Scalar]) {
		rec.AddPershot("index", "shot", results.Scalar(shot))
		rec.AddAverage("statistics", "index", "0", results.Scalar(shot), false)
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	snap, ok := agg.Pershot("index")
	if !ok {
		t.Fatal("pershot snapshot missing from aggregate")
	}
	if got := len(snap.Values("shot")); got != shots {
		t.Errorf("aggregate holds %d pershot values; want %d", got, shots)
	}

	avg, _ := agg.Average("statistics")
	d, ok := avg.Stats("index", "0")
	if !ok {
		t.Fatal("average stats missing from aggregate")
	}
	if d.Count() != shots {
		t.Errorf("average count = %d; want %d", d.Count(), shots)
	}
	// Mean of 0..99 is 49.5 regardless of worker scheduling.
	if got := float64(d.Mean()); got != 49.5 {
		t.Errorf("average mean = %v; want 49.5", got)
	}
}

func TestRunMatchesSerialAggregate(t *testing.T) {
	const shots = 64

	fn := func(shot int, rec *results.Container[results.Scalar]) {
		rec.AddAverage("statistics", "sq", "0", results.Scalar(shot*shot), true)
	}

	serial := results.New[results.Scalar]()
	for i := 0; i < shots; i++ {
		fn(i, serial)
	}

	r := NewRunner[results.Scalar](shots)
	r.Workers = 8
	parallel, err := r.Run(context.Background(), fn)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	sAvg, _ := serial.Average("statistics")
	pAvg, _ := parallel.Average("statistics")
	sd, _ := sAvg.Stats("sq", "0")
	pd, _ := pAvg.Stats("sq", "0")

	if sd.Count() != pd.Count() {
		t.Fatalf("count: serial %d parallel %d", sd.Count(), pd.Count())
	}
	if sd.Mean() != pd.Mean() {
		t.Errorf("mean: serial %v parallel %v", sd.Mean(), pd.Mean())
	}
	if sd.Variance() != pd.Variance() {
		t.Errorf("variance: serial %v parallel %v", sd.Variance(), pd.Variance())
	}
}

func TestRunCancelledReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner[results.Scalar](1000)
	_, err := r.Run(ctx, func(shot int, rec *results.Container[results.Scalar]) {
		rec.AddPershot("index", "shot", results.Scalar(shot))
	})
	if err == nil {
		t.Error("Run() on a cancelled context returned nil error")
	}
}
