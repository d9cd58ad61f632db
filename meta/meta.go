// Package meta parses the Monkey's Audio container preliminaries: the
// optional ID3v2 tag, the fixed-size descriptor, the header, and the seek
// table. None of this is part of the decoding core; it produces the
// Descriptor the frame orchestrator consumes to locate and size each frame.
package meta

import (
	"encoding/binary"
	"io"

	"github.com/mewkiz/ape/apeerr"
)

// Magic is the four bytes that open an APE stream, after any ID3v2 prefix.
var Magic = [4]byte{'M', 'A', 'C', ' '}

// MinVersion is the earliest descriptor version this package understands.
const MinVersion = 3990

// Descriptor is the parsed file-format preamble: the on-disk descriptor and
// header fields, the seek table, and the absolute byte offset of the first
// frame's data.
type Descriptor struct {
	// Version is the descriptor format version (>= MinVersion).
	Version uint16

	// DescriptorBytes, HeaderBytes, SeekTableBytes and HeaderDataBytes are
	// the declared sizes of the descriptor itself, the header, the seek
	// table, and any extra header data following it.
	DescriptorBytes uint32
	HeaderBytes     uint32
	SeekTableBytes  uint32
	HeaderDataBytes uint32

	// FrameDataBytes is the 64-bit total size of the frame data region,
	// reassembled from the low and high 32-bit halves on disk.
	FrameDataBytes uint64

	// TerminatingDataBytes is the size of any trailing data after the last
	// frame (tag data, padding); it is not fed to the core.
	TerminatingDataBytes uint32

	// FileMD5 is the reference MD5 digest of the decoded PCM stream.
	FileMD5 [16]byte

	// CompressionLevel is one of 1000, 2000, 3000, 4000 or 5000.
	CompressionLevel uint16
	// FormatFlags carries legacy per-file flags; the core does not interpret
	// them beyond what is already reflected in CompressionLevel/Channels.
	FormatFlags uint16
	// BlocksPerFrame is the block count of every frame but the last.
	BlocksPerFrame uint32
	// FinalFrameBlocks is the block count of the last frame.
	FinalFrameBlocks uint32
	// TotalFrames is the number of frames in the file.
	TotalFrames uint32
	// BitsPerSample is one of 8, 16 or 24.
	BitsPerSample uint16
	// Channels is 1 or 2.
	Channels uint16
	// SampleRate is the PCM sample rate in Hz.
	SampleRate uint32

	// SeekTable holds one little-endian byte offset per frame, as stored on
	// disk. The frame decoder seeks to each entry (low 2 bits cleared) as an
	// absolute position in the stream; it does not add the descriptor's start
	// offset.
	SeekTable []uint32

	// DataOffset is the absolute offset of the first frame's data.
	DataOffset int64
}

// descriptorFixedLen is the number of bytes making up the fixed-layout
// portion of the descriptor, starting right after the 4-byte magic.
const descriptorFixedLen = 48

// headerLen is the fixed byte length of the header record.
const headerLen = 24

// Parse reads the ID3v2 tag (if present), descriptor, header and seek table
// from r, which must be positioned at the very start of the stream. r must
// also support io.Seeker for the ID3v2 skip.
func Parse(r io.ReadSeeker) (*Descriptor, error) {
	if err := skipID3v2(r); err != nil {
		return nil, err
	}

	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, apeerr.Wrap(apeerr.IO, err, "seek to descriptor start")
	}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, apeerr.Wrap(apeerr.IO, err, "read magic")
	}
	if magic != Magic {
		return nil, apeerr.New(apeerr.InvalidMagic, "missing \"MAC \" signature")
	}

	buf := make([]byte, descriptorFixedLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, apeerr.Wrap(apeerr.IO, err, "read descriptor")
	}

	d := &Descriptor{}
	d.Version = binary.LittleEndian.Uint16(buf[0:2])
	// buf[2:4] is reserved padding.
	d.DescriptorBytes = binary.LittleEndian.Uint32(buf[4:8])
	d.HeaderBytes = binary.LittleEndian.Uint32(buf[8:12])
	d.SeekTableBytes = binary.LittleEndian.Uint32(buf[12:16])
	d.HeaderDataBytes = binary.LittleEndian.Uint32(buf[16:20])
	frameDataBytesLow := binary.LittleEndian.Uint32(buf[20:24])
	frameDataBytesHigh := binary.LittleEndian.Uint32(buf[24:28])
	d.FrameDataBytes = uint64(frameDataBytesLow) | uint64(frameDataBytesHigh)<<32
	d.TerminatingDataBytes = binary.LittleEndian.Uint32(buf[28:32])
	copy(d.FileMD5[:], buf[32:48])

	if d.Version < MinVersion {
		return nil, apeerr.Newf(apeerr.UnsupportedVersion, "version %d", d.Version)
	}

	// The descriptor declares its own length; anything beyond the 52 bytes
	// read above (magic plus fixed fields; a future format extension) is
	// skipped rather than parsed.
	if extra := int64(d.DescriptorBytes) - (4 + descriptorFixedLen); extra > 0 {
		if _, err := r.Seek(extra, io.SeekCurrent); err != nil {
			return nil, apeerr.Wrap(apeerr.IO, err, "skip descriptor extension")
		}
	}

	hbuf := make([]byte, headerLen)
	if _, err := io.ReadFull(r, hbuf); err != nil {
		return nil, apeerr.Wrap(apeerr.IO, err, "read header")
	}
	d.CompressionLevel = binary.LittleEndian.Uint16(hbuf[0:2])
	d.FormatFlags = binary.LittleEndian.Uint16(hbuf[2:4])
	d.BlocksPerFrame = binary.LittleEndian.Uint32(hbuf[4:8])
	d.FinalFrameBlocks = binary.LittleEndian.Uint32(hbuf[8:12])
	d.TotalFrames = binary.LittleEndian.Uint32(hbuf[12:16])
	d.BitsPerSample = binary.LittleEndian.Uint16(hbuf[16:18])
	d.Channels = binary.LittleEndian.Uint16(hbuf[18:20])
	d.SampleRate = binary.LittleEndian.Uint32(hbuf[20:24])

	switch d.CompressionLevel {
	case 1000, 2000, 3000, 4000, 5000:
	default:
		return nil, apeerr.Newf(apeerr.UnsupportedCompressionLevel, "level %d", d.CompressionLevel)
	}
	switch d.Channels {
	case 1, 2:
	default:
		return nil, apeerr.Newf(apeerr.InvalidHeader, "channels %d", d.Channels)
	}
	switch d.BitsPerSample {
	case 8, 16, 24:
	default:
		return nil, apeerr.Newf(apeerr.InvalidHeader, "bits per sample %d", d.BitsPerSample)
	}

	if d.HeaderDataBytes > 0 {
		if _, err := r.Seek(int64(d.HeaderDataBytes), io.SeekCurrent); err != nil {
			return nil, apeerr.Wrap(apeerr.IO, err, "skip extra header data")
		}
	}

	n := int(d.SeekTableBytes / 4)
	d.SeekTable = make([]uint32, n)
	sbuf := make([]byte, d.SeekTableBytes)
	if _, err := io.ReadFull(r, sbuf); err != nil {
		return nil, apeerr.Wrap(apeerr.IO, err, "read seek table")
	}
	for i := 0; i < n; i++ {
		d.SeekTable[i] = binary.LittleEndian.Uint32(sbuf[i*4 : i*4+4])
	}

	d.DataOffset = start + int64(d.DescriptorBytes) + int64(d.HeaderBytes) +
		int64(d.SeekTableBytes) + int64(d.HeaderDataBytes)

	return d, nil
}

// FrameBlocks returns the block count of frame i.
func (d *Descriptor) FrameBlocks(i int) uint32 {
	if i == int(d.TotalFrames)-1 {
		return d.FinalFrameBlocks
	}
	return d.BlocksPerFrame
}

// TotalBlocks returns the number of blocks across the whole stream,
// excluding the channel multiplier.
func (d *Descriptor) TotalBlocks() uint64 {
	if d.TotalFrames == 0 {
		return 0
	}
	return uint64(d.TotalFrames-1)*uint64(d.BlocksPerFrame) + uint64(d.FinalFrameBlocks)
}
