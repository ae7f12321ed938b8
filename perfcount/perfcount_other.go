//go:build !linux

package perfcount

import "github.com/AnnTaiwan/computer-arch/harness"

// Open always fails outside Linux
func Open() (*Counters, error) {
	return nil, ErrUnsupported
}

func (c *Counters) Start() error {
	return ErrUnsupported
}

func (c *Counters) Stop() (harness.Sample, error) {
	return harness.Sample{}, ErrUnsupported
}

func (c *Counters) Close() error {
	return nil
}
