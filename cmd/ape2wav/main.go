// ape2wav decodes Monkey's Audio files to WAV, for reference testing against
// the package's output.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/ape"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
)

func main() {
	var force bool
	flag.BoolVar(&force, "f", false, "force overwrite")
	flag.Parse()
	for _, apePath := range flag.Args() {
		if err := ape2wav(apePath, force); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func ape2wav(apePath string, force bool) error {
	s, err := ape.Open(apePath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer s.Close()
	info := s.Info()

	wavPath := pathutil.TrimExt(apePath) + ".wav"
	if !force && osutil.Exists(wavPath) {
		return errors.Errorf("WAV file %q already present; use -f flag to force overwrite", wavPath)
	}
	w, err := os.Create(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	enc := wav.NewEncoder(w, info.SampleRate, info.BitsPerSample, info.Channels, 1)
	defer enc.Close()

	const samplesPerChunk = 4096
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: info.Channels,
			SampleRate:  info.SampleRate,
		},
		Data:           make([]int, 0, samplesPerChunk),
		SourceBitDepth: info.BitsPerSample,
	}

	for {
		sample, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WithStack(err)
		}
		buf.Data = append(buf.Data, int(sample))
		if len(buf.Data) == samplesPerChunk {
			if err := enc.Write(buf); err != nil {
				return errors.WithStack(err)
			}
			buf.Data = buf.Data[:0]
		}
	}
	if len(buf.Data) > 0 {
		if err := enc.Write(buf); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
