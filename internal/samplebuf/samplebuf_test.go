package samplebuf

import "testing"

func TestPushNextMono(t *testing.T) {
	b := New()
	b.Push(1)
	b.Push(2)
	b.Push(3)
	for _, want := range []int32{1, 2, 3} {
		got, ok := b.Next()
		if !ok || got != want {
			t.Fatalf("Next(): got (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := b.Next(); ok {
		t.Fatalf("Next() after drain: got ok=true, want false")
	}
}

func TestPushStereoInterleaved(t *testing.T) {
	b := New()
	b.PushStereo(10, 20)
	b.PushStereo(30, 40)
	want := []int32{10, 20, 30, 40}
	for _, w := range want {
		got, ok := b.Next()
		if !ok || got != w {
			t.Fatalf("Next(): got (%d, %v), want (%d, true)", got, ok, w)
		}
	}
}

func TestClearResetsBuffer(t *testing.T) {
	b := New()
	b.Push(1)
	b.Push(2)
	b.Next()
	b.Clear()
	if b.Remaining() != 0 {
		t.Fatalf("Remaining() after Clear(): got %d, want 0", b.Remaining())
	}
	if _, ok := b.Next(); ok {
		t.Fatalf("Next() after Clear(): got ok=true, want false")
	}
}
