package checksum

import (
	"hash/crc32"
	"testing"
)

func TestVerifyFrameMatch(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	want := crc32.ChecksumIEEE(pcm)
	if !VerifyFrame(pcm, want) {
		t.Fatalf("VerifyFrame: expected match")
	}
}

func TestVerifyFrameMismatch(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	if VerifyFrame(pcm, 0xDEADBEEF) {
		t.Fatalf("VerifyFrame: expected mismatch")
	}
}
