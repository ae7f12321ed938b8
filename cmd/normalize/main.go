package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AnnTaiwan/computer-arch/config"
	"github.com/AnnTaiwan/computer-arch/fixed"
	"github.com/AnnTaiwan/computer-arch/loudness"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	target := flag.Int("target", 0, "target RMS in the 16-bit domain (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: normalize [-target N] in.wav|in.mp3 out.wav\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *target > 0 {
		cfg.Loudness.Target = *target
	}
	if cfg.Loudness.Target > loudness.FullScale {
		log.Fatalf("target %d above full scale %d", cfg.Loudness.Target, loudness.FullScale)
	}

	in, out := flag.Arg(0), flag.Arg(1)
	buf, err := loudness.Load(in)
	if err != nil {
		log.Fatal(err)
	}

	gain := loudness.NormalizeBuffer(buf, uint32(cfg.Loudness.Target))
	if err := loudness.WriteWAV(out, buf); err != nil {
		log.Fatal(err)
	}

	log.Printf("%s -> %s: %d samples, gain %.4f (target RMS %d)", in, out, len(buf.Data), fixed.ToFloat(gain), cfg.Loudness.Target)
}
