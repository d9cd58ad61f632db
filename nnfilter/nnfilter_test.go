package nnfilter

import "testing"

func TestStageBypassWhenOrderZero(t *testing.T) {
	s := NewStage(0, 0)
	for _, in := range []int32{0, 1, -1, 12345, -9999} {
		if got := s.Decompress(in); got != in {
			t.Errorf("Decompress(%d) with order 0: got %d, want %d", in, got, in)
		}
	}
}

func TestStageResetIdempotent(t *testing.T) {
	s := NewStage(16, 11)
	for _, in := range []int32{1, 2, 3, -4, 5, -6} {
		s.Decompress(in)
	}
	s.Reset()
	a := append([]int16{}, s.coeffs...)
	s.Reset()
	b := append([]int16{}, s.coeffs...)
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("reset not idempotent at %d: %d != %d", i, a[i], b[i])
		}
	}
	if s.delayPos != s.order {
		t.Errorf("delayPos after reset: got %d, want %d", s.delayPos, s.order)
	}
}

func TestStageWrapsHistory(t *testing.T) {
	s := NewStage(4, 0)
	// Drive the stage through more than 2*order samples to force at least
	// one wrap-copy of the history ring.
	for i := 0; i < 20; i++ {
		s.Decompress(int32(i%5) - 2)
	}
	if s.delayPos < s.order || s.delayPos >= 2*s.order {
		t.Errorf("delayPos out of window after wraps: %d (order %d)", s.delayPos, s.order)
	}
}

func TestCascadeForwardOrder(t *testing.T) {
	c := NewCascade(3) // fset 3 -> level 4000: two stages (32, 256)
	if got, want := c.NumStages(), 2; got != want {
		t.Fatalf("NumStages: got %d, want %d", got, want)
	}
	// Forward order: the cascade must match stage 0 then stage 1 applied by
	// hand to the same inputs.
	s0, s1 := NewStage(32, 10), NewStage(256, 13)
	for i := 0; i < 64; i++ {
		in := int32(i*7 - 200)
		if got, want := c.Decompress(in), s1.Decompress(s0.Decompress(in)); got != want {
			t.Fatalf("cascade output at %d: got %d, want %d (stage 0 then stage 1)", i, got, want)
		}
	}
	// Deterministic: running the same input sequence twice must produce the
	// same output sequence.
	run := func() []int32 {
		c := NewCascade(4) // level 5000: three stages
		out := make([]int32, 64)
		for i := range out {
			out[i] = c.Decompress(int32(i*7 - 200))
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cascade not deterministic at %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestCascadeFastLevelHasNoStages(t *testing.T) {
	c := NewCascade(0)
	if got := c.NumStages(); got != 0 {
		t.Fatalf("NumStages for fset 0: got %d, want 0", got)
	}
	if got := c.Decompress(42); got != 42 {
		t.Fatalf("Decompress with no stages: got %d, want 42", got)
	}
}
