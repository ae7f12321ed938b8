//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Available reports whether the server is compiled in
const Available = false

// Start only reports that the binary was built without the statsview tag
func Start(output io.Writer, addr string) (stop func()) {
	fmt.Fprintln(output, "statsview: not available, rebuild with -tags statsview")
	return func() {}
}
