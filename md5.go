package ape

import (
	"crypto/md5"
	"encoding/binary"
	"io"
)

// VerifyMD5 decodes s from its current position to the end and compares the
// MD5 digest of the resulting little-endian PCM byte stream against the
// reference digest recorded in the file's descriptor. It consumes the
// stream: callers that also want the samples should decode from a second
// Stream over the same data, or collect samples themselves while hashing.
//
// Bytes-per-sample follows the declared bit depth: 1 byte for 8-bit, 2 for
// 16-bit, 3 for 24-bit: the low bytes of the core's native int32 output,
// written little-endian (two's-complement truncation).
func (s *Stream) VerifyMD5() (bool, error) {
	h := md5.New()
	width := s.desc.BitsPerSample / 8

	buf := make([]byte, 4)
	for {
		sample, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
		binary.LittleEndian.PutUint32(buf, uint32(sample))
		if _, err := h.Write(buf[:width]); err != nil {
			return false, err
		}
	}

	var got [16]byte
	copy(got[:], h.Sum(nil))
	return got == s.desc.FileMD5, nil
}
