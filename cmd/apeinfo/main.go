// apeinfo prints the descriptor and header fields of one or more Monkey's
// Audio files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mewkiz/ape/internal/bufseekio"
	"github.com/mewkiz/ape/meta"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: apeinfo FILE...")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := info(path); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func info(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	desc, err := meta.Parse(bufseekio.NewReadSeeker(f))
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  version:           %d\n", desc.Version)
	fmt.Printf("  compression level: %d\n", desc.CompressionLevel)
	fmt.Printf("  channels:          %d\n", desc.Channels)
	fmt.Printf("  bits per sample:   %d\n", desc.BitsPerSample)
	fmt.Printf("  sample rate:       %d\n", desc.SampleRate)
	fmt.Printf("  blocks per frame:  %d\n", desc.BlocksPerFrame)
	fmt.Printf("  final frame blocks:%d\n", desc.FinalFrameBlocks)
	fmt.Printf("  total frames:      %d\n", desc.TotalFrames)
	fmt.Printf("  total samples:     %d\n", desc.TotalBlocks())
	fmt.Printf("  seek table size:   %d\n", len(desc.SeekTable))
	fmt.Printf("  data offset:       %d\n", desc.DataOffset)
	fmt.Printf("  file md5:          %x\n", desc.FileMD5)
	return nil
}
