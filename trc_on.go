//go:build xfsx_debug

package xfsx

import (
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

/*
EnvDebugVar defines the environment variable name which can be used to
select [EventType] levels for the [DefaultTracer] at process start.
Use sparingly in high-volume/performance-sensitive scenarios.
*/
const EnvDebugVar = "XFSX_DEBUG"

/*
DefaultTracer is the package-level [Tracer] implementation.
*/
type DefaultTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level EventType
}

/*
NewDefaultTracer returns an instance of *[DefaultTracer] writing to w.
*/
func NewDefaultTracer(w io.Writer) *DefaultTracer {
	return &DefaultTracer{w: w}
}

func (r *DefaultTracer) EnableLevel(ev EventType)  { r.level |= ev }
func (r *DefaultTracer) DisableLevel(ev EventType) { r.level &^= ev }
func (r *DefaultTracer) Enabled(ev EventType) bool { return r.level&ev != 0 }

/*
Trace writes rec to the receiver's writer if its event type is enabled.
*/
func (r *DefaultTracer) Trace(rec TraceRecord) {
	if !r.Enabled(rec.Type) && !r.Enabled(EventAll) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ts := rec.Time.Format("15:04:05.000")
	marker := "•"
	switch {
	case rec.Type&EventEnter != 0:
		marker = "→"
	case rec.Type&EventExit != 0:
		marker = "←"
	}

	r.w.Write([]byte(ts + " " + marker + " " + rec.Func))
	for _, a := range rec.Args {
		r.w.Write([]byte(" " + fmtArg(a)))
	}
	r.w.Write([]byte("\n"))
}

/*
TraceRecord carries metadata about one traced event.
*/
type TraceRecord struct {
	Time time.Time
	Type EventType
	Func string
	Args []any
}

/*
Tracer is implemented by [DefaultTracer]; callers may register their
own via [EnableDebug].
*/
type Tracer interface {
	Trace(TraceRecord)
}

type levelTracer interface {
	Tracer
	Enabled(EventType) bool
}

var (
	tmu    sync.RWMutex
	tracer Tracer = &discardTracer{}
)

type discardTracer struct{}

func (*discardTracer) Trace(_ TraceRecord)      {}
func (*discardTracer) Enabled(_ EventType) bool { return false }

/*
EnableDebug registers t as the active [Tracer].
*/
func EnableDebug(t Tracer) {
	tmu.Lock()
	defer tmu.Unlock()
	tracer = t
}

/*
DisableDebug discards all future trace events.
*/
func DisableDebug() {
	tmu.Lock()
	defer tmu.Unlock()
	tracer = &discardTracer{}
}

func debugEvent(level EventType, args ...any) {
	tmu.RLock()
	t := tracer
	tmu.RUnlock()

	if lt, ok := t.(levelTracer); ok && !lt.Enabled(level) && !lt.Enabled(EventAll) {
		return
	}

	pc, _, _, ok := runtime.Caller(2)
	fn := "unknown"
	if ok {
		fn = runtime.FuncForPC(pc).Name()
		if i := stridxb(fn, '.'); i >= 0 {
			fn = fn[i+1:]
		}
	}

	t.Trace(TraceRecord{Time: time.Now(), Type: level, Func: fn, Args: args})
}

func debugEnter(args ...any) { debugEvent(EventEnter, args...) }
func debugExit(args ...any)  { debugEvent(EventExit, args...) }
func debugInfo(args ...any)  { debugEvent(EventInfo, args...) }
func debugIO(args ...any)    { debugEvent(EventIO, args...) }
func debugTLV(args ...any)   { debugEvent(EventTLV, args...) }
func debugXML(args ...any)   { debugEvent(EventXML, args...) }
func debugPerf(args ...any)  { debugEvent(EventPerf, args...) }
func debugTrace(args ...any) { debugEvent(EventTrace, args...) }

func fmtArg(x any) string {
	switch v := x.(type) {
	case string:
		return v
	case int:
		return itoa(v)
	case bool:
		return bool2str(v)
	case Unit:
		return v.String()
	case error:
		if v == nil {
			return "<nil error>"
		}
		return v.Error()
	default:
		return "<arg>"
	}
}

func init() {
	evar := os.Getenv(EnvDebugVar)
	if evar == "" {
		return
	}
	dt := NewDefaultTracer(os.Stderr)
	if evar == "all" {
		dt.EnableLevel(EventAll)
	} else {
		dt.EnableLevel(EventEnter | EventExit | EventInfo)
	}
	EnableDebug(dt)
}
