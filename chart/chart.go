// Package chart renders the error characterisation of fixed.Rsqrt as an HTML page
package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/AnnTaiwan/computer-arch/fixed"
)

// MaxPoints bounds the number of samples plotted per series
const MaxPoints = 4096

// Render writes a page with two line charts over [lo, hi]: Rsqrt against the exact
// value, and the relative error in percent
func Render(w io.Writer, lo, hi, step uint32) error {
	if step == 0 {
		return fmt.Errorf("chart: step must be positive")
	}
	if lo == 0 {
		lo = 1
	}
	if hi < lo {
		return fmt.Errorf("chart: empty range [%d, %d]", lo, hi)
	}
	if n := (uint64(hi)-uint64(lo))/uint64(step) + 1; n > MaxPoints {
		return fmt.Errorf("chart: %d points exceeds %d, increase step", n, MaxPoints)
	}

	var (
		xs     []string
		approx []opts.LineData
		exact  []opts.LineData
		errPct []opts.LineData
	)
	for x := uint64(lo); x <= uint64(hi); x += uint64(step) {
		got := fixed.Rsqrt(uint32(x))
		want := fixed.Scale / math.Sqrt(float64(x))

		xs = append(xs, strconv.FormatUint(x, 10))
		approx = append(approx, opts.LineData{Value: got})
		exact = append(exact, opts.LineData{Value: want})
		errPct = append(errPct, opts.LineData{Value: fixed.RelativeError(uint32(x), got) * 100})
	}

	values := charts.NewLine()
	values.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "fast rsqrt",
			Subtitle: fmt.Sprintf("Q16.16 result for x in [%d, %d]", lo, hi),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "65536/sqrt(x)"}),
	)
	values.SetXAxis(xs).
		AddSeries("Rsqrt", approx).
		AddSeries("exact", exact)

	errs := charts.NewLine()
	errs.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "relative error"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%"}),
	)
	errs.SetXAxis(xs).AddSeries("error %", errPct)

	page := components.NewPage()
	page.AddCharts(values, errs)
	return page.Render(w)
}
