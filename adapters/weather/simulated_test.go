package weather

import (
	"context"
	"testing"
	"time"
)

func TestSimulatedProviderDeterministic(t *testing.T) {
	p := NewSimulatedProvider()
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	a := p.ForDate(date, 47.6, -122.3)
	b := p.ForDate(date, 47.6, -122.3)
	if *a != *b {
		t.Errorf("Same day and place should yield the same snapshot: %+v vs %+v", a, b)
	}

	elsewhere := p.ForDate(date, -33.9, 151.2)
	if a.Temperature == elsewhere.Temperature {
		t.Error("Different coordinates should yield different conditions")
	}

	nextDay := p.ForDate(date.AddDate(0, 0, 1), 47.6, -122.3)
	if *a == *nextDay {
		t.Error("Consecutive days should differ")
	}
}

func TestSimulatedProviderCurrent(t *testing.T) {
	p := NewSimulatedProvider()
	p.now = func() time.Time {
		return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	}

	snap, err := p.Current(context.Background(), 47.6, -122.3)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if snap.Description == "" || snap.Icon == "" {
		t.Errorf("Expected populated conditions, got %+v", snap)
	}
	if snap.Humidity < 0 || snap.Humidity > 100 {
		t.Errorf("Humidity out of range: %v", snap.Humidity)
	}
}
