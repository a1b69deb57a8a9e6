package xfsx

/*
evt.go contains EventType constants used by the debug tracer
(trc_on.go / trc_off.go) when this package is built with
"-tags xfsx_debug". Otherwise they are inert bitmask values.
*/

/*
EventType describes a specific kind of tracer event. This type and
its constants are only meaningful when built with "-tags xfsx_debug".
*/
type EventType uint32

const (
	EventNone EventType = 0
	EventAll  EventType = 0xffffffff
)

const (
	EventEnter EventType = 1 << iota // function entry
	EventExit                        // function exit
	EventInfo                        // interim event
	EventIO                          // scratchpad refill/flush
	EventTLV                         // Unit parse/write
	EventXML                         // XML reader/writer events
	EventPerf                        // timing/microbenchmarks
	EventTrace                       // low-level allocs/pools
)
