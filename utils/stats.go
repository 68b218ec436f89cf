package utils

import (
	"time"

	"github.com/sheikhrachel/go-life/model"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	Population           int
	PeakPopulation       int
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	BoundingBoxSize      int // 0 while the world is empty
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update samples the world at the given generation; duration is the time the
// previous frame took
func (s *Stats) Update(generation int, world *model.World, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	s.Population = world.Population()
	s.PeakPopulation = max(s.PeakPopulation, s.Population)

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(s.Population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(s.Population) * 0.1)
	}

	s.BoundingBoxSize = 0
	if b, ok := world.Bounds(); ok {
		s.BoundingBoxSize = b.Area()
	}
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
