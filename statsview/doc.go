// Package statsview serves live runtime charts (heap, goroutines, GC pauses)
// while a long benchmark runs.
//
// The server is only compiled in with the statsview build tag:
//
//	go build -tags statsview ./cmd/rsqrt-bench
//
// Without the tag Start reports that the server is unavailable and returns a
// no-op stop function, so callers need no build constraints of their own.
package statsview

// DefaultAddr is the listen address used when none is configured
const DefaultAddr = "localhost:12600"

// Path is where the charts are mounted on the server
const Path = "/debug/statsview"
