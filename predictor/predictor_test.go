package predictor

import "testing"

func TestResetIdempotent(t *testing.T) {
	p := New()
	for i := 0; i < 100; i++ {
		p.DecodeMono(int32(i%7 - 3))
	}
	p.Reset()
	a := snapshot(p)
	p.Reset()
	b := snapshot(p)
	if a != b {
		t.Fatalf("reset not idempotent: %+v != %+v", a, b)
	}
}

// snapshot captures the comparable parts of predictor state.
type state struct {
	bufPos int
	ch0    channelState
	ch1    channelState
}

func snapshot(p *Predictor) state {
	return state{bufPos: p.bufPos, ch0: p.channels[0], ch1: p.channels[1]}
}

func TestDecodeMonoDeterministic(t *testing.T) {
	run := func() []int32 {
		p := New()
		out := make([]int32, 200)
		for i := range out {
			out[i] = p.DecodeMono(int32(i*3 - 100))
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decode not deterministic at %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestDecodeStereoDeterministic(t *testing.T) {
	run := func() [][2]int32 {
		p := New()
		out := make([][2]int32, 200)
		for i := range out {
			l, r := p.DecodeStereo(int32(i*5-50), int32(i*2-25))
			out[i] = [2]int32{l, r}
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decode not deterministic at %d: %v != %v", i, a[i], b[i])
		}
	}
}

// TestWrapsRingBuffer drives the predictor through more than `history`
// samples to force at least one ring wrap-copy, and checks the ring cursor
// is back inside [0, history) after the wrap.
func TestWrapsRingBuffer(t *testing.T) {
	p := New()
	for i := 0; i < history+10; i++ {
		p.DecodeMono(int32(i%11) - 5)
	}
	if p.bufPos < 0 || p.bufPos >= history {
		t.Fatalf("bufPos out of range after wrap: %d", p.bufPos)
	}
}

func TestInitialSeedCoeffsA(t *testing.T) {
	p := New()
	want := seedCoeffsA
	if p.channels[0].coeffsA != want {
		t.Errorf("channel 0 initial coeffsA: got %v, want %v", p.channels[0].coeffsA, want)
	}
	if p.channels[1].coeffsA != want {
		t.Errorf("channel 1 initial coeffsA: got %v, want %v", p.channels[1].coeffsA, want)
	}
}
