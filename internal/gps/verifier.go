package gps

import (
	"fmt"
	"math"

	model "field-service.com/field-service/internal/models"
)

const earthRadiusMeters = 6371000.0

// Result describes how far a reported coordinate is from the task's target
// location. Warnings are advisory only and never block an event.
type Result struct {
	DistanceMeters float64  `json:"distance_meters"`
	WithinRange    bool     `json:"within_range"`
	Warnings       []string `json:"warnings"`
}

// Verify computes the great-circle distance between the target location and
// the reported coordinate. A nil target skips verification entirely.
func Verify(target *model.GeoLocation, lat, lng, warnDistanceMeters float64) Result {
	if target == nil {
		return Result{DistanceMeters: 0, WithinRange: true, Warnings: []string{}}
	}

	distance := Haversine(target.Lat, target.Lng, lat, lng)

	result := Result{
		DistanceMeters: distance,
		WithinRange:    distance <= warnDistanceMeters,
		Warnings:       []string{},
	}

	if !result.WithinRange {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Vị trí ghi nhận cách địa điểm công việc %.0fm, vượt quá giới hạn %.0fm",
			distance, warnDistanceMeters,
		))
	}

	return result
}

// Haversine returns the great-circle distance in meters between two
// coordinates given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
