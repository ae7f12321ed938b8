package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AnnTaiwan/computer-arch/chart"
	"github.com/AnnTaiwan/computer-arch/config"
	"github.com/AnnTaiwan/computer-arch/fixed"
	"github.com/AnnTaiwan/computer-arch/harness"
	"github.com/AnnTaiwan/computer-arch/perfcount"
	"github.com/AnnTaiwan/computer-arch/statsview"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	iterations := flag.Int("iterations", 0, "timing iterations (overrides config)")
	chartPath := flag.String("chart", "", "write an HTML error chart to this path (overrides config)")
	stats := flag.Bool("statsview", false, "serve runtime stats while running")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}
	if *chartPath != "" {
		cfg.Chart = *chartPath
	}
	if *stats {
		cfg.StatsView = true
	}

	if cfg.StatsView {
		stop := statsview.Start(os.Stdout, cfg.StatsAddr)
		defer stop()
	}

	if err := report(cfg); err != nil {
		log.Fatal(err)
	}
	sweep(cfg)
	timing(cfg)

	if cfg.Chart != "" {
		if err := writeChart(cfg); err != nil {
			log.Fatalf("chart: %v", err)
		}
		log.Printf("chart written to %s", cfg.Chart)
	}
}

func report(cfg *config.Config) error {
	counter, closeCounter, err := perfcount.OpenOrClock()
	if err != nil {
		if !errors.Is(err, perfcount.ErrUnsupported) {
			return err
		}
		log.Printf("%v, falling back to wall clock (cycles are nanoseconds)", err)
	}
	defer closeCounter()

	results, err := harness.Run(counter, fixed.Rsqrt, cfg.Vectors)
	if err != nil {
		return err
	}
	return harness.WriteReport(os.Stdout, "fast_rsqrt", results)
}

func sweep(cfg *config.Config) {
	acc := harness.Characterize(cfg.SweepLo, cfg.SweepHi, cfg.SweepStep)

	fmt.Println()
	fmt.Printf("Sweep [%d, %d] step %d (%d samples, narrow multiply: %v)\n",
		cfg.SweepLo, cfg.SweepHi, cfg.SweepStep, acc.Samples, fixed.NarrowMultiply)
	fmt.Println("══════════════════════════════════════════════════════════════")
	fmt.Printf("  max relative error   %8.4f%% at x=%d\n", acc.MaxRelErr*100, acc.WorstInput)
	fmt.Printf("  mean relative error  %8.4f%%\n", acc.MeanRelErr*100)
	fmt.Printf("  max absolute error   %8.2f LSB\n", acc.MaxAbsErr)
	fmt.Printf("  monotonic violations %8d (max rise %d)\n", acc.Violations, acc.MaxIncrease)
}

func timing(cfg *config.Config) {
	inputs := make([]uint32, 0, len(cfg.Vectors))
	for _, v := range cfg.Vectors {
		inputs = append(inputs, v.In)
	}

	fmt.Println()
	fmt.Printf("Rsqrt timing (%d iterations)\n", cfg.Iterations)
	fmt.Println("══════════════════════════════════════════════════════════════════════")
	harness.WriteTimingHeader(os.Stdout)

	q, f := harness.Timing(cfg.Iterations, inputs)
	harness.WriteTiming(os.Stdout, "Rsqrt (reference vectors)", q, f)

	wide := []uint32{3, 1000, 65535, 100000, 1 << 24, 0xFFFFFFFF}
	q, f = harness.Timing(cfg.Iterations, wide)
	harness.WriteTiming(os.Stdout, "Rsqrt (full range)", q, f)
	fmt.Println("══════════════════════════════════════════════════════════════════════")
}

func writeChart(cfg *config.Config) (rerr error) {
	f, err := os.Create(cfg.Chart)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	// widen the step so the page stays under chart.MaxPoints
	step := cfg.SweepStep
	if span := (cfg.SweepHi - cfg.SweepLo) / chart.MaxPoints; span >= step {
		step = span + 1
	}
	return chart.Render(f, cfg.SweepLo, cfg.SweepHi, step)
}
