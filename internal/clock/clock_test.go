package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	want := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	var c Clock = Fixed(want)
	if got := c.Now(); !got.Equal(want) {
		t.Errorf("Fixed.Now() = %v, want %v", got, want)
	}
}

func TestSystem(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("System.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestFunc(t *testing.T) {
	calls := 0
	c := Func(func() time.Time {
		calls++
		return time.Unix(0, 0)
	})
	c.Now()
	c.Now()
	if calls != 2 {
		t.Errorf("Func called %d times, want 2", calls)
	}
}
