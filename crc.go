package ape

import (
	"encoding/binary"

	"github.com/mewkiz/ape/internal/checksum"
)

// VerifyFrameCRC decodes frame i and checks its decoded PCM bytes against
// the CRC-32 field parsed from that frame's prefix. The core itself never
// performs this check (the CRC is parsed but not validated while
// decoding); it is a separate, optional pass a caller can run per frame.
//
// VerifyFrameCRC decodes frame i directly through the stream's frame
// decoder, so it should not be interleaved with calls to Next: it clears
// and refills the same sample buffer Next drains.
func (s *Stream) VerifyFrameCRC(i int) (bool, error) {
	if err := s.dec.DecodeFrame(i); err != nil {
		return false, err
	}

	width := int(s.desc.BitsPerSample / 8)
	pcm := make([]byte, 0, s.dec.Buffer().Remaining()*width)
	tmp := make([]byte, 4)
	for {
		sample, ok := s.dec.Buffer().Next()
		if !ok {
			break
		}
		binary.LittleEndian.PutUint32(tmp, uint32(sample))
		pcm = append(pcm, tmp[:width]...)
	}

	return checksum.VerifyFrame(pcm, s.dec.LastCRC()), nil
}
