// Package checksum implements the optional per-frame CRC-32 verification
// collaborator. The decoding core never calls it; it is off unless a caller
// asks for it. Whole-stream MD5 verification is not here: it is
// Stream.VerifyMD5 in the root ape package.
//
// Monkey's Audio frames carry a plain CRC-32 of the frame's uncompressed PCM
// bytes, not FLAC's CRC-16/CRC-8 frame and block checksums, so this package
// reaches for the standard library's hash/crc32 rather than
// mewkiz/pkg/hashutil's FLAC-specific tables.
package checksum

import "hash/crc32"

// VerifyFrame reports whether the IEEE CRC-32 of pcm equals want, comparing
// the low 31 bits only: the top bit of a frame's CRC field is the flags-word
// marker, not part of the checksum.
func VerifyFrame(pcm []byte, want uint32) bool {
	return crc32.ChecksumIEEE(pcm)&0x7FFFFFFF == want&0x7FFFFFFF
}
