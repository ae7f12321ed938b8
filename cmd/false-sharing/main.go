package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/AnnTaiwan/computer-arch/config"
	"github.com/AnnTaiwan/computer-arch/contention"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	workers := flag.Int("workers", 0, "worker goroutines (overrides config)")
	iterations := flag.Uint64("iterations", 0, "increments per worker (overrides config)")
	padded := flag.Bool("padded", false, "run only the padded layout")
	packed := flag.Bool("packed", false, "run only the packed layout")
	pin := flag.Bool("pin", false, "pin worker i to CPU i")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	opt := contention.Options{
		Workers:    cfg.Contention.Workers,
		Iterations: cfg.Contention.Iterations,
		Pin:        cfg.Contention.Pin || *pin,
	}
	if *workers > 0 {
		opt.Workers = *workers
	}
	if *iterations > 0 {
		opt.Iterations = *iterations
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("False sharing (%d workers, %d increments each, pinned: %v)\n", opt.Workers, opt.Iterations, opt.Pin)
	fmt.Println("══════════════════════════════════════════════════════════════")

	layouts := []contention.Layout{contention.Packed, contention.Padded}
	switch {
	case *padded && !*packed:
		layouts = layouts[1:]
	case *packed && !*padded:
		layouts = layouts[:1]
	}

	var elapsed []time.Duration
	for _, l := range layouts {
		opt.Layout = l
		res, err := contention.Run(ctx, opt)
		printResult(res)
		if err != nil {
			log.Fatalf("%s: %v", l, err)
		}
		elapsed = append(elapsed, res.Elapsed)
	}

	if len(elapsed) == 2 && elapsed[1] > 0 {
		fmt.Println("──────────────────────────────────────────────────────────────")
		fmt.Printf("%-10s %14.2fx\n", "speedup", float64(elapsed[0])/float64(elapsed[1]))
	}
	fmt.Println("══════════════════════════════════════════════════════════════")
}

func printResult(res contention.Result) {
	fmt.Printf("%-10s %14s\n", res.Layout, res.Elapsed)
	for i, c := range res.Counts {
		fmt.Printf("  counter[%d] = %d\n", i, c)
	}
}
