package gps

import (
	"math"
	"strings"
	"testing"

	model "field-service.com/field-service/internal/models"
)

func TestHaversineZeroForIdenticalCoordinates(t *testing.T) {
	coords := [][2]float64{
		{0, 0},
		{21.0285, 105.8542},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}

	for _, c := range coords {
		if d := Haversine(c[0], c[1], c[0], c[1]); d != 0 {
			t.Errorf("expected zero distance at (%v, %v), got %v", c[0], c[1], d)
		}
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{21.0285, 105.8542, 21.0286, 105.8543},
		{10.762622, 106.660172, 21.028511, 105.804817},
		{-12.0464, -77.0428, 51.5074, -0.1278},
	}

	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestHaversineMonotonicWithSeparation(t *testing.T) {
	const lat, lng = 21.0285, 105.8542

	prev := 0.0
	for _, offset := range []float64{0.0001, 0.0005, 0.001, 0.01, 0.1} {
		d := Haversine(lat, lng, lat+offset, lng)
		if d <= prev {
			t.Errorf("distance should grow with separation: offset %v gave %v after %v", offset, d, prev)
		}
		prev = d
	}
}

func TestVerifyNilTargetSkipsVerification(t *testing.T) {
	result := Verify(nil, 21.0285, 105.8542, 100)

	if result.DistanceMeters != 0 {
		t.Errorf("expected zero distance, got %v", result.DistanceMeters)
	}
	if !result.WithinRange {
		t.Error("expected within range")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestVerifyNearbyReportsNoWarning(t *testing.T) {
	target := &model.GeoLocation{Lat: 21.0285, Lng: 105.8542}

	result := Verify(target, 21.0286, 105.8543, 100)

	if result.DistanceMeters < 10 || result.DistanceMeters > 20 {
		t.Errorf("expected roughly 14m, got %v", result.DistanceMeters)
	}
	if !result.WithinRange {
		t.Error("expected within range")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestVerifyFarProducesWarningWithoutBlocking(t *testing.T) {
	target := &model.GeoLocation{Lat: 21.0285, Lng: 105.8542}

	result := Verify(target, 21.0295, 105.8552, 100)

	if result.DistanceMeters < 140 || result.DistanceMeters > 165 {
		t.Errorf("expected roughly 150m, got %v", result.DistanceMeters)
	}
	if result.WithinRange {
		t.Error("expected out of range")
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "vượt quá giới hạn") {
		t.Errorf("expected Vietnamese warning, got %q", result.Warnings[0])
	}
}

func TestVerifyThresholdBoundary(t *testing.T) {
	target := &model.GeoLocation{Lat: 21.0285, Lng: 105.8542}

	// ~15m apart with a 15.5m threshold: inside; with a 10m threshold: outside.
	inside := Verify(target, 21.0286, 105.8543, 16)
	if !inside.WithinRange {
		t.Errorf("expected within 16m threshold, distance %v", inside.DistanceMeters)
	}

	outside := Verify(target, 21.0286, 105.8543, 10)
	if outside.WithinRange {
		t.Errorf("expected outside 10m threshold, distance %v", outside.DistanceMeters)
	}
	if len(outside.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", outside.Warnings)
	}
}
