// ABOUTME: Tests for the clock implementations.
// ABOUTME: FakeClock must only move when told to.
package tracker

import (
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(testNow)
	if !c.Now().Equal(testNow) {
		t.Fatalf("Now = %v, want %v", c.Now(), testNow)
	}

	c.Advance(90 * time.Minute)
	if want := testNow.Add(90 * time.Minute); !c.Now().Equal(want) {
		t.Errorf("after Advance: %v, want %v", c.Now(), want)
	}

	c.Set(testNow)
	c.AdvanceDays(3)
	if want := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC); !c.Now().Equal(want) {
		t.Errorf("after AdvanceDays: %v, want %v", c.Now(), want)
	}
}

func TestRealClockIsNow(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	if got.Before(before) || got.Sub(before) > time.Minute {
		t.Errorf("RealClock.Now = %v, expected about %v", got, before)
	}
}
