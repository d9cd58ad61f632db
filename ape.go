// Package ape provides access to Monkey's Audio (APE) files, version 3990
// and later. Given a seekable byte source, it reconstructs the original
// linear PCM sample stream bit-for-bit via Open/NewStream and the Next
// iterator.
package ape

import (
	"io"
	"os"

	"github.com/mewkiz/ape/apeerr"
	"github.com/mewkiz/ape/frame"
	"github.com/mewkiz/ape/internal/bufseekio"
	"github.com/mewkiz/ape/meta"
)

// Info summarizes the stream properties a caller needs to interpret the
// samples produced by Next.
type Info struct {
	Channels         int
	BitsPerSample    int
	SampleRate       int
	CompressionLevel int
	// TotalSamples is the number of per-channel blocks in the stream; the
	// total count of int32 values Next will yield is TotalSamples*Channels.
	TotalSamples uint64
}

// Stream is an open Monkey's Audio bitstream, positioned for sequential
// sample decode.
type Stream struct {
	desc   *meta.Descriptor
	dec    *frame.Decoder
	closer io.Closer

	frameIdx int
	done     bool
}

// Open opens the named file and returns a parsed APE stream ready for Next.
// The returned Stream must be closed by the caller.
func Open(filePath string) (*Stream, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, apeerr.Wrap(apeerr.IO, err, "open file")
	}
	s, err := NewStream(bufseekio.NewReadSeeker(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// NewStream parses the descriptor, header and seek table from r and returns
// a Stream ready to decode frames on demand. r must remain valid and
// positioned for the lifetime of the returned Stream.
func NewStream(r io.ReadSeeker) (*Stream, error) {
	desc, err := meta.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Stream{
		desc: desc,
		dec:  frame.NewDecoder(r, desc),
	}, nil
}

// Info reports the stream's channel count, sample depth, sample rate and
// total sample count.
func (s *Stream) Info() Info {
	return Info{
		Channels:         int(s.desc.Channels),
		BitsPerSample:    int(s.desc.BitsPerSample),
		SampleRate:       int(s.desc.SampleRate),
		CompressionLevel: int(s.desc.CompressionLevel),
		TotalSamples:     s.desc.TotalBlocks(),
	}
}

// Next returns the next decoded sample, decoding another frame on demand
// when the current one is exhausted. It returns io.EOF once every frame has
// been produced. Any other error is returned once; every subsequent call
// then returns io.EOF.
func (s *Stream) Next() (int32, error) {
	if s.done {
		return 0, io.EOF
	}
	for s.dec.Buffer().Remaining() == 0 {
		if s.frameIdx >= int(s.desc.TotalFrames) {
			s.done = true
			return 0, io.EOF
		}
		if err := s.dec.DecodeFrame(s.frameIdx); err != nil {
			s.done = true
			return 0, err
		}
		s.frameIdx++
	}
	sample, _ := s.dec.Buffer().Next()
	return sample, nil
}

// Close releases the underlying file, if the Stream was obtained via Open.
// Streams built directly with NewStream own nothing to release and Close is
// a no-op.
func (s *Stream) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
