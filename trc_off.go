//go:build !xfsx_debug

package xfsx

type DefaultTracer struct{}

func debugEnter(_ ...any)              {}
func debugExit(_ ...any)               {}
func debugEvent(_ EventType, _ ...any) {}
func debugInfo(_ ...any)               {}
func debugIO(_ ...any)                 {}
func debugTLV(_ ...any)                {}
func debugXML(_ ...any)                {}
func debugPerf(_ ...any)               {}
func debugTrace(_ ...any)              {}
