package utils

import (
	"sync"
	"time"

	"github.com/sheikhrachel/go-life/model"
)

// Stats tracks performance and population of a running simulation. It is a
// snapshot observer and is safe to read while snapshots arrive.
type Stats struct {
	mu sync.Mutex

	GenerationsPerSecond float64
	AveragePopulation    float64
	Population           int
	TotalGenerations     int
	StartTime            time.Time

	lastGeneration int
	lastHash       string
	lastState      model.RunState
	lastUpdate     time.Time

	historySize int
	history     []string // Recent grid fingerprints for cycle detection
	stagnant    bool
}

func NewStats(historySize int) *Stats {
	return &Stats{StartTime: time.Now(), historySize: historySize}
}

// Notify folds a snapshot into the running figures
func (s *Stats) Notify(snap model.Snapshot) {
	s.Update(snap, time.Now())
}

// Update folds a snapshot taken at now into the running figures
func (s *Stats) Update(snap model.Snapshot, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	population := snap.Population()
	hash := snap.Hash()
	s.Population = population

	switch {
	case snap.Generation < s.lastGeneration, snap.Generation == s.lastGeneration && hash != s.lastHash:
		// Reset or manual edit: start measuring afresh
		s.history = nil
		s.stagnant = false
		s.GenerationsPerSecond = 0
		s.AveragePopulation = float64(population)
	case snap.Generation == s.lastGeneration:
		// Run state change only
	default:
		// Only time generations produced back to back by a running simulation
		running := s.lastState == model.Running && snap.State == model.Running
		if elapsed := now.Sub(s.lastUpdate); running && !s.lastUpdate.IsZero() && elapsed > 0 {
			s.GenerationsPerSecond = float64(snap.Generation-s.lastGeneration) / elapsed.Seconds()
		}

		// Simple moving average for population
		if s.AveragePopulation == 0 {
			s.AveragePopulation = float64(population)
		} else {
			s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
		}
		s.updateHistory(hash)
	}

	s.TotalGenerations = snap.Generation
	s.lastGeneration = snap.Generation
	s.lastHash = hash
	s.lastState = snap.State
	s.lastUpdate = now
}

// updateHistory records a fingerprint and checks it against the recent ones
func (s *Stats) updateHistory(hash string) {
	if s.historySize <= 0 {
		return
	}

	s.stagnant = false
	for _, h := range s.history {
		if h == hash {
			s.stagnant = true
			break
		}
	}

	s.history = append(s.history, hash)
	if len(s.history) > s.historySize {
		s.history = s.history[1:]
	}
}

// IsStagnant reports whether the latest generation repeats a recent one
func (s *Stats) IsStagnant() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stagnant
}

// Status summarizes the simulation as Active, Stagnant or Extinct
func (s *Stats) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.Population == 0:
		return "Extinct"
	case s.stagnant:
		return "Stagnant"
	default:
		return "Active"
	}
}

// Rates returns the current generations per second and average population
func (s *Stats) Rates() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.GenerationsPerSecond, s.AveragePopulation
}
