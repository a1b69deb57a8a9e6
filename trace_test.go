package xfsx

import "testing"

// Exercises the tracer no-ops compiled in without the xfsx_debug build
// tag; they must be safe to call unconditionally from hot paths.
func TestDebugTracerNoOpsDoNotPanic(t *testing.T) {
	debugEnter("x")
	debugExit("x")
	debugEvent(EventTLV, "x")
	debugInfo("x")
	debugIO("x")
	debugTLV("x")
	debugXML("x")
	debugPerf("x")
	debugTrace("x")
	_ = DefaultTracer{}
}

func TestEventTypeBitmaskConstantsAreDistinct(t *testing.T) {
	seen := map[EventType]bool{}
	for _, e := range []EventType{
		EventEnter, EventExit, EventInfo, EventIO,
		EventTLV, EventXML, EventPerf, EventTrace,
	} {
		if seen[e] {
			t.Fatalf("duplicate bit for EventType %d", e)
		}
		seen[e] = true
	}
	if EventNone != 0 {
		t.Errorf("EventNone should be zero")
	}
	if EventAll != 0xffffffff {
		t.Errorf("EventAll should be all bits set")
	}
}
