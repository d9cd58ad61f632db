// Package frame implements the per-frame orchestration that ties the range
// coder, NNFilter cascades and predictor together: locating a frame's raw
// bytes from the seek table, undoing the on-disk byte swap, skipping the
// frame prefix, and running the decode loop that fills a sample buffer.
package frame

import (
	"encoding/binary"
	"io"

	"github.com/mewkiz/ape/apeerr"
	"github.com/mewkiz/ape/internal/samplebuf"
	"github.com/mewkiz/ape/meta"
	"github.com/mewkiz/ape/nnfilter"
	"github.com/mewkiz/ape/predictor"
	"github.com/mewkiz/ape/rangecoder"
)

// Decoder holds the state that lives across frames of a single stream: the
// underlying reader, the per-channel NNFilter cascades, and the shared
// predictor. None of it is reused between independent streams.
type Decoder struct {
	r    io.ReadSeeker
	desc *meta.Descriptor

	filters [2]*nnfilter.Cascade
	pred    *predictor.Predictor
	buf     *samplebuf.Buffer

	raw     []byte
	lastCRC uint32
}

// NewDecoder builds a frame decoder for the stream described by desc, ready
// to decode frames in any order via DecodeFrame.
func NewDecoder(r io.ReadSeeker, desc *meta.Descriptor) *Decoder {
	fset := int(desc.CompressionLevel)/1000 - 1
	d := &Decoder{
		r:    r,
		desc: desc,
		pred: predictor.New(),
		buf:  samplebuf.New(),
	}
	d.filters[0] = nnfilter.NewCascade(fset)
	if desc.Channels == 2 {
		d.filters[1] = nnfilter.NewCascade(fset)
	}
	return d
}

// Buffer returns the sample FIFO that DecodeFrame fills. The caller drains
// it with Next before decoding the next frame.
func (d *Decoder) Buffer() *samplebuf.Buffer {
	return d.buf
}

// LastCRC returns the 32-bit CRC field parsed from the most recently
// decoded frame's prefix. The core itself never validates it (spec: "CRC
// is parsed but not validated in the core"); it is exposed so a caller can
// run it through internal/checksum.VerifyFrame against the decoded PCM
// bytes.
func (d *Decoder) LastCRC() uint32 {
	return d.lastCRC
}

// DecodeFrame decodes frame index i (0-based) into d.Buffer, clearing any
// samples left over from a previous frame first.
func (d *Decoder) DecodeFrame(i int) error {
	desc := d.desc
	if i < 0 || i >= len(desc.SeekTable) {
		return apeerr.Newf(apeerr.InvalidSeekTable, "frame %d, seek table has %d entries", i, len(desc.SeekTable))
	}

	raw := desc.SeekTable[i]
	align := int64(raw & 3)
	start := int64(raw &^ 3)

	var end int64
	if i+1 < len(desc.SeekTable) {
		end = int64(desc.SeekTable[i+1])
	} else {
		end = desc.DataOffset + int64(desc.FrameDataBytes)
	}
	if end <= start {
		return apeerr.New(apeerr.UnexpectedEOF, "empty frame byte window")
	}

	n := end - start
	if int64(cap(d.raw)) < n {
		d.raw = make([]byte, n)
	} else {
		d.raw = d.raw[:n]
	}
	if _, err := d.r.Seek(start, io.SeekStart); err != nil {
		return apeerr.Wrap(apeerr.IO, err, "seek to frame data")
	}
	if _, err := io.ReadFull(d.r, d.raw); err != nil {
		return apeerr.Wrap(apeerr.IO, err, "read frame data")
	}

	byteSwap(d.raw)

	payload, crc, err := skipFramePrefix(d.raw, align)
	if err != nil {
		return err
	}
	d.lastCRC = crc

	d.filters[0].Reset()
	if desc.Channels == 2 {
		d.filters[1].Reset()
	}
	d.pred.Reset()
	d.buf.Clear()

	rc := rangecoder.NewDecoder(payload)
	blocks := desc.FrameBlocks(i)

	if desc.Channels == 1 {
		rice := rangecoder.NewRiceState()
		for b := uint32(0); b < blocks; b++ {
			residual := rc.DecodeValue(rice)
			filtered := d.filters[0].Decompress(residual)
			sample := d.pred.DecodeMono(filtered)
			d.buf.Push(sample)
		}
		return nil
	}

	riceY, riceX := rangecoder.NewRiceState(), rangecoder.NewRiceState()
	for b := uint32(0); b < blocks; b++ {
		residualY := rc.DecodeValue(riceY)
		residualX := rc.DecodeValue(riceX)
		filteredY := d.filters[0].Decompress(residualY)
		filteredX := d.filters[1].Decompress(residualX)
		l, r := d.pred.DecodeStereo(filteredY, filteredX)
		d.buf.PushStereo(l, r)
	}
	return nil
}

// skipFramePrefix consumes, in order, the alignment skip, the 4-byte CRC,
// the optional 4-byte flags word (when the CRC's high bit is set), and the
// single discard byte that precedes the range coder's input. It returns the
// remaining range-coder payload and the parsed CRC field.
func skipFramePrefix(raw []byte, align int64) ([]byte, uint32, error) {
	if int64(len(raw)) < align {
		return nil, 0, apeerr.New(apeerr.UnexpectedEOF, "alignment skip exceeds frame window")
	}
	p := raw[align:]

	if len(p) < 4 {
		return nil, 0, apeerr.New(apeerr.UnexpectedEOF, "frame window too small for CRC")
	}
	crc := binary.BigEndian.Uint32(p[:4])
	p = p[4:]

	if crc&0x80000000 != 0 {
		if len(p) < 4 {
			return nil, 0, apeerr.New(apeerr.UnexpectedEOF, "frame window too small for flags word")
		}
		p = p[4:]
	}

	if len(p) < 1 {
		return nil, 0, apeerr.New(apeerr.UnexpectedEOF, "frame window too small for discard byte")
	}
	return p[1:], crc, nil
}

// byteSwap undoes the on-disk little-endian word swap in place: within
// every full aligned 4-byte group, byte 0 trades with byte 3 and byte 1
// trades with byte 2. Any trailing partial word is left untouched.
func byteSwap(data []byte) {
	n := len(data) - len(data)%4
	for i := 0; i < n; i += 4 {
		data[i], data[i+3] = data[i+3], data[i]
		data[i+1], data[i+2] = data[i+2], data[i+1]
	}
}
