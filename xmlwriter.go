package xfsx

/*
xmlwriter.go implements the BER→XML writer (C8): it consumes a
vertical unit stream and, for each unit, decides based on the current
search path matcher whether to emit it, then renders attribute
decoration and typed content (spec §4.7). encoding/xml is deliberately
not used — the writer needs streaming emission with mid-document
skip/backtrack that xml.Encoder cannot express, so output bytes are
built directly the way the original writer does.
*/

import "io"

/*
WriterOptions configures [XMLWriter]. Every attribute is opt-in;
leaving Translator/Typifier nil falls back to the "p"/"c"/"i" element
names and hex-escaped OCTET_STRING content spec §6.2 names as defaults.
*/
type WriterOptions struct {
	Indent         string // per-depth indent; "" disables pretty indentation
	ShowTag        bool
	ShowClass      bool
	ShowTL         bool
	ShowT          bool
	ShowLength     bool
	ShowOffset     bool
	ShowHex        bool
	ShowRank       bool
	Path           *Path
	Translator     *Translator
	Typifier       *Typifier
	StopAfterFirst bool
	Count          int // 0 = unlimited
	PP             func(tag, text string) string
}

type xmlFrame struct {
	name       string
	u          Unit
	childCount int
	emit       bool
}

/*
XMLWriter renders a vertical unit stream as XML text to an io.Writer.
*/
type XMLWriter struct {
	opts    WriterOptions
	w       io.Writer
	matcher *PathMatcher
	frames  []xmlFrame
	total   int64
	emitted int
}

// NewXMLWriter returns a writer for vr's output to w under opts.
func NewXMLWriter(w io.Writer, opts WriterOptions) *XMLWriter {
	xw := &XMLWriter{opts: opts, w: w}
	if opts.Path != nil {
		xw.matcher = NewPathMatcher(opts.Path)
	}
	return xw
}

func (xw *XMLWriter) emit(s string) error {
	n, err := io.WriteString(xw.w, s)
	xw.total += int64(n)
	return err
}

func (xw *XMLWriter) indent() string {
	if xw.opts.Indent == "" {
		return ""
	}
	return strrpt(xw.opts.Indent, len(xw.frames))
}

func (xw *XMLWriter) currentlyEmitting() bool {
	if xw.matcher == nil {
		return true
	}
	for _, f := range xw.frames {
		if f.emit {
			return true
		}
	}
	return xw.matcher.Height() == 0 && xw.matcher.lastState == Match
}

func (xw *XMLWriter) elementName(u Unit) string {
	if xw.opts.Translator != nil {
		if n, ok := xw.opts.Translator.Name(u.Class, u.Tag); ok {
			return n
		}
	}
	switch {
	case u.Shape != Constructed:
		return "p"
	case u.IsIndefinite:
		return "i"
	default:
		return "c"
	}
}

func (xw *XMLWriter) contentType(u Unit) ContentType {
	if xw.opts.Typifier == nil {
		return TypeOctetString
	}
	return xw.opts.Typifier.TypeOf(u.Class, u.Tag)
}

func (xw *XMLWriter) hexAttr(raw []byte) string {
	buf := make([]byte, HexEncodedSize(raw, HexRaw))
	n := HexEncode(buf, raw, HexRaw)
	return string(buf[:n])
}

func (xw *XMLWriter) openTag(name string, u Unit, rank int, off int64, raw []byte) string {
	b := newStrBuilder()
	b.WriteString("<")
	b.WriteString(name)
	if xw.opts.ShowTag {
		b.WriteString(" tag='")
		b.WriteString(itoa(int(u.Tag)))
		b.WriteString("'")
	}
	if xw.opts.ShowClass {
		b.WriteString(" class='")
		b.WriteString(u.Class.String())
		b.WriteString("'")
	}
	if xw.opts.ShowTL {
		b.WriteString(" tl='")
		b.WriteString(itoa(u.TLSize))
		b.WriteString("'")
	}
	if xw.opts.ShowT {
		b.WriteString(" t='")
		b.WriteString(itoa(u.TSize))
		b.WriteString("'")
	}
	if xw.opts.ShowLength {
		b.WriteString(" length='")
		b.WriteString(itoa(u.Length))
		b.WriteString("'")
	}
	if xw.opts.ShowRank {
		b.WriteString(" rank='")
		b.WriteString(itoa(rank))
		b.WriteString("'")
	}
	if xw.opts.ShowOffset {
		b.WriteString(" off='")
		b.WriteString(itoa(int(off)))
		b.WriteString("'")
	}
	if xw.opts.ShowHex {
		b.WriteString(" hex='")
		b.WriteString(xw.hexAttr(raw))
		b.WriteString("'")
	}
	if u.Shape == Constructed && u.IsIndefinite {
		b.WriteString(" indefinite='true'")
	}
	b.WriteString(">")
	return b.String()
}

func (xw *XMLWriter) content(u Unit, raw []byte) string {
	switch xw.contentType(u) {
	case TypeInt64:
		return Int64RangeValue{Raw: raw}.String()
	case TypeBCD:
		return BCDValue{Raw: raw}.String()
	default:
		buf := make([]byte, HexEncodedSize(raw, HexXML))
		n := HexEncode(buf, raw, HexXML)
		return string(buf[:n])
	}
}

/*
Write drains vr, emitting XML for every matched unit, honoring
StopAfterFirst and Count. It returns the number of bytes written.
*/
func (xw *XMLWriter) Write(vr *VerticalReader) (int64, error) {
	for {
		if xw.opts.Count > 0 && xw.emitted >= xw.opts.Count {
			return xw.total, nil
		}

		tlc, err := vr.Next()
		if err == io.EOF {
			if len(xw.frames) > 0 && !(xw.opts.Count > 0 && xw.emitted >= xw.opts.Count) {
				return xw.total, newErr(ParseError, vr.Pos(), "constructed tag still open at end of input")
			}
			return xw.total, nil
		}
		if err != nil {
			return xw.total, err
		}

		if tlc.IsEOC() {
			stop, err := xw.reconcile(vr)
			if err != nil {
				return xw.total, err
			}
			if stop {
				return xw.total, nil
			}
			continue
		}

		rank := 1
		if len(xw.frames) > 0 {
			top := &xw.frames[len(xw.frames)-1]
			top.childCount++
			rank = top.childCount
		}

		consumed := tlc.TLSize
		if tlc.Shape != Constructed {
			consumed += tlc.Length
		}
		off := vr.Pos() - int64(consumed)

		name := xw.elementName(tlc.Unit)
		var matchState MatchState
		var shouldEmit bool
		if xw.matcher != nil {
			matchState, shouldEmit = xw.matcher.Push(name)
		} else {
			matchState, shouldEmit = Match, true
		}

		skip := xw.matcher != nil && matchState == NoMatch
		emitNow := xw.currentlyEmitting() || shouldEmit

		switch {
		case tlc.Shape == Constructed && skip && !tlc.IsIndefinite:
			if xw.matcher != nil {
				xw.matcher.Pop()
			}
			if err := vr.SkipChildren(tlc); err != nil {
				return xw.total, err
			}
			continue

		case tlc.Shape == Constructed:
			if emitNow {
				if err := xw.emit(xw.indent() + xw.openTag(name, tlc.Unit, rank, off, tlc.Begin[:tlc.TLSize]) + "\n"); err != nil {
					return xw.total, err
				}
			}
			xw.frames = append(xw.frames, xmlFrame{name: name, u: tlc.Unit, emit: emitNow})

		default: // primitive
			if emitNow {
				text := xw.content(tlc.Unit, tlc.Begin[tlc.TLSize:tlc.TLSize+tlc.Length])
				if xw.opts.PP != nil {
					text = xw.opts.PP(name, text)
				}
				line := xw.indent() + xw.openTag(name, tlc.Unit, rank, off, tlc.Begin[:tlc.TLSize+tlc.Length]) + text + "</" + name + ">\n"
				if err := xw.emit(line); err != nil {
					return xw.total, err
				}
				if len(xw.frames) == 0 {
					xw.emitted++
				}
			}
			if xw.matcher != nil {
				xw.matcher.Pop()
			}
		}

		// A just-pushed empty definite frame, or several ancestors
		// completed at once by a single EOC cascade, may already be
		// done according to vr's own frame stack; close every
		// xw.frames entry vr's height no longer backs.
		stop, err := xw.reconcile(vr)
		if err != nil {
			return xw.total, err
		}
		if stop {
			return xw.total, nil
		}
	}
}

// reconcile closes xw.frames entries vr's own frame stack has already
// moved past. It reports whether StopAfterFirst now calls for the
// writer to stop.
func (xw *XMLWriter) reconcile(vr *VerticalReader) (stop bool, err error) {
	for len(xw.frames) > vr.Height() {
		if err := xw.closeFrame(); err != nil {
			return false, err
		}
		if vr.Height() == 0 && xw.opts.StopAfterFirst {
			return true, nil
		}
	}
	return false, nil
}

func (xw *XMLWriter) closeFrame() error {
	if len(xw.frames) == 0 {
		return nil
	}
	f := xw.frames[len(xw.frames)-1]
	xw.frames = xw.frames[:len(xw.frames)-1]
	if xw.matcher != nil {
		xw.matcher.Pop()
	}
	if f.emit {
		if err := xw.emit(xw.indent() + "</" + f.name + ">\n"); err != nil {
			return err
		}
		if len(xw.frames) == 0 {
			xw.emitted++
		}
	}
	return nil
}
