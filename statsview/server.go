//go:build statsview

package statsview

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Available reports whether the server is compiled in
const Available = true

// Start serves runtime charts on addr in the background until stop is called.
// Listen errors are written to output.
func Start(output io.Writer, addr string) (stop func()) {
	if addr == "" {
		addr = DefaultAddr
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	go func() {
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(output, "statsview: %v\n", err)
		}
	}()

	fmt.Fprintf(output, "runtime stats at http://%s%s\n", addr, Path)
	return mgr.Stop
}
