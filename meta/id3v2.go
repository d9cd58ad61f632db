package meta

import (
	"io"

	"github.com/mewkiz/ape/apeerr"
)

// id3v2HeaderLen is the fixed size of an ID3v2 tag header.
const id3v2HeaderLen = 10

// skipID3v2 advances r past a leading ID3v2 tag, if one is present. It
// leaves r positioned at the first byte of the descriptor (the "MAC "
// magic) either way.
func skipID3v2(r io.ReadSeeker) error {
	var hdr [id3v2HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return apeerr.Wrap(apeerr.IO, err, "read ID3v2 probe")
	}

	if hdr[0] != 'I' || hdr[1] != 'D' || hdr[2] != '3' {
		// No tag; rewind to the start so the descriptor read sees the magic.
		if _, err := r.Seek(-id3v2HeaderLen, io.SeekCurrent); err != nil {
			return apeerr.Wrap(apeerr.IO, err, "rewind ID3v2 probe")
		}
		return nil
	}

	// Tag size is a 4-byte syncsafe integer: 7 usable bits per byte.
	size := uint32(hdr[6])<<21 | uint32(hdr[7])<<14 | uint32(hdr[8])<<7 | uint32(hdr[9])
	if hdr[5]&0x10 != 0 {
		// Footer present: same size as the header and not counted in the
		// syncsafe size, so add it.
		size += id3v2HeaderLen
	}

	if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
		return apeerr.Wrap(apeerr.IO, err, "skip ID3v2 tag body")
	}
	return nil
}
