package utils

import (
	"testing"
	"time"

	"github.com/sheikhrachel/go-life/model"
)

func blinker() *model.Grid {
	g := model.NewGrid(8, 8)
	g.Set(3, 2, true)
	g.Set(3, 3, true)
	g.Set(3, 4, true)
	return g
}

func TestStatsDetectsOscillation(t *testing.T) {
	s := NewStats(5)
	g := blinker()
	now := time.Unix(0, 0)

	s.Update(model.Take(g, 0, model.Running), now)
	for gen := 1; gen <= 2; gen++ {
		g.Advance()
		now = now.Add(100 * time.Millisecond)
		s.Update(model.Take(g, gen, model.Running), now)
		if s.IsStagnant() {
			t.Fatalf("stagnant too early at generation %d", gen)
		}
	}

	g.Advance()
	s.Update(model.Take(g, 3, model.Running), now.Add(100*time.Millisecond))
	if !s.IsStagnant() || s.Status() != "Stagnant" {
		t.Fatalf("period-2 blinker not flagged, status %s", s.Status())
	}

	gps, avg := s.Rates()
	if gps < 9.9 || gps > 10.1 {
		t.Fatalf("generations per second %.2f, expected 10", gps)
	}
	if avg < 2.99 || avg > 3.01 {
		t.Fatalf("average population %.2f, expected 3", avg)
	}
}

func TestStatsResetOnClear(t *testing.T) {
	s := NewStats(5)
	g := blinker()
	now := time.Unix(0, 0)
	for gen := 0; gen <= 3; gen++ {
		s.Update(model.Take(g, gen, model.Running), now)
		g.Advance()
		now = now.Add(time.Second)
	}

	g.Clear()
	s.Update(model.Take(g, 0, model.Stopped), now)
	if s.IsStagnant() || s.Status() != "Extinct" || s.TotalGenerations != 0 {
		t.Fatalf("after clear stagnant=%v status=%s total=%d", s.IsStagnant(), s.Status(), s.TotalGenerations)
	}
}

func TestStatsIgnoresRunStateChanges(t *testing.T) {
	s := NewStats(5)
	g := blinker()
	now := time.Unix(0, 0)
	s.Update(model.Take(g, 0, model.Stopped), now)
	g.Advance()
	s.Update(model.Take(g, 1, model.Running), now.Add(time.Second))
	g.Advance()
	s.Update(model.Take(g, 2, model.Running), now.Add(2*time.Second))
	s.Update(model.Take(g, 2, model.Stopped), now.Add(3*time.Second))

	if gps, _ := s.Rates(); gps != 1 {
		t.Fatalf("stop reset the rate to %.2f", gps)
	}
	if s.Status() != "Active" {
		t.Fatalf("status %s", s.Status())
	}
}

func TestStatsRateIgnoresManualSteps(t *testing.T) {
	s := NewStats(5)
	g := blinker()
	now := time.Unix(0, 0)

	s.Update(model.Take(g, 0, model.Running), now)
	for gen := 1; gen <= 2; gen++ {
		g.Advance()
		now = now.Add(100 * time.Millisecond)
		s.Update(model.Take(g, gen, model.Running), now)
	}
	s.Update(model.Take(g, 2, model.Stopped), now)

	// single step after a long pause
	g.Advance()
	s.Update(model.Take(g, 3, model.Stopped), now.Add(time.Minute))
	if gps, _ := s.Rates(); gps < 9.9 || gps > 10.1 {
		t.Fatalf("manual step changed the rate to %.2f", gps)
	}
	if s.TotalGenerations != 3 {
		t.Fatalf("total generations %d", s.TotalGenerations)
	}

	// resuming measures from the Start snapshot, not the pause
	s.Update(model.Take(g, 3, model.Running), now.Add(2*time.Minute))
	g.Advance()
	s.Update(model.Take(g, 4, model.Running), now.Add(2*time.Minute+500*time.Millisecond))
	if gps, _ := s.Rates(); gps < 1.9 || gps > 2.1 {
		t.Fatalf("rate after resume %.2f, expected 2", gps)
	}
}
