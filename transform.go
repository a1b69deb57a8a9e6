package xfsx

/*
transform.go implements the three BER→BER rewrites named in spec §4.6:
identity, write-indefinite, and write-definite. All three stream their
input through a [Source] and write to an io.Writer; write-definite is
the only one that buffers (one subtree at a time, via [Node]).
*/

import "io"

/*
TransformIdentity copies every unit's wire bytes verbatim: primitives
and EOC sentinels are forwarded whole, constructed openers contribute
only their TL header — exactly what [FlatReader.Next] already hands
back. Memory is O(1); output size equals input size.
*/
func TransformIdentity(src Source, w io.Writer) (int64, error) {
	fr := NewFlatReader(src)
	var total int64
	for {
		tlc, err := fr.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		n, werr := w.Write(tlc.Begin)
		total += int64(n)
		if werr != nil {
			return total, werr
		}
	}
}

func encodeIndefiniteOpener(u Unit) ([]byte, error) {
	hdr := u
	hdr.IsIndefinite = true
	hdr.IsLongDefinite = false
	hdr.Length = 0
	hdr.TLSize = hdr.EncodedLen(0)
	buf := make([]byte, hdr.TLSize)
	n, err := hdr.Encode(buf, 0)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

var eocBytes = []byte{0x00, 0x00}

/*
TransformIndefinite rewrites every constructed unit to the indefinite
form, matching each definite opener it closes with a synthetic EOC.
Units that were already indefinite forward their own EOC verbatim.
Memory is O(depth): one boolean per open frame recording whether it
owes a synthetic EOC on close.
*/
func TransformIndefinite(src Source, w io.Writer) (int64, error) {
	vr := NewVerticalReader(src)
	var total int64
	var needsEOC []bool

	write := func(b []byte) error {
		n, err := w.Write(b)
		total += int64(n)
		return err
	}

	for {
		beforeHeight := vr.Height()
		tlc, err := vr.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		afterHeight := vr.Height()

		pushedHere := false
		emittedSelfEOC := false

		switch {
		case tlc.IsEOC():
			if err := write(tlc.Begin); err != nil {
				return total, err
			}
			emittedSelfEOC = true

		case tlc.Shape == Constructed && (tlc.IsIndefinite || tlc.Length > 0):
			buf, eerr := encodeIndefiniteOpener(tlc.Unit)
			if eerr != nil {
				return total, eerr
			}
			if err := write(buf); err != nil {
				return total, err
			}
			needsEOC = append(needsEOC, !tlc.IsIndefinite)
			pushedHere = true

		case tlc.Shape == Constructed: // definite, empty
			buf, eerr := encodeIndefiniteOpener(tlc.Unit)
			if eerr != nil {
				return total, eerr
			}
			if err := write(buf); err != nil {
				return total, err
			}
			if err := write(eocBytes); err != nil {
				return total, err
			}

		default:
			if err := write(tlc.Begin); err != nil {
				return total, err
			}
		}

		delta := 0
		if pushedHere {
			delta = 1
		}
		popped := (beforeHeight + delta) - afterHeight
		for i := 0; i < popped; i++ {
			if len(needsEOC) == 0 {
				break
			}
			need := needsEOC[len(needsEOC)-1]
			needsEOC = needsEOC[:len(needsEOC)-1]
			if i == 0 && emittedSelfEOC {
				continue
			}
			if need {
				if err := write(eocBytes); err != nil {
					return total, err
				}
			}
		}
	}
}

/*
TransformDefinite rewrites every constructed unit to the minimal-length
definite form: each subtree is accumulated in a [Node] tree and
collapsed bottom-up once its EOC is seen (indefinite) or its declared
length is reached (definite), then written out and discarded. Top-level
siblings are written and freed as each completes, so memory is bounded
by the deepest subtree in flight, not the whole document.
*/
func TransformDefinite(src Source, w io.Writer) (int64, error) {
	vr := NewVerticalReader(src)
	var stack []*Node
	var total int64

	write := func(b []byte) error {
		n, err := w.Write(b)
		total += int64(n)
		return err
	}

	for {
		beforeHeight := vr.Height()
		tlc, err := vr.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		afterHeight := vr.Height()

		var self *Node
		pushed := false

		switch {
		case tlc.IsEOC():
			// no new node; the popped-frame loop below handles the close.
		case tlc.Shape == Constructed && (tlc.IsIndefinite || tlc.Length > 0):
			self = NewConstructedNode(tlc.Unit)
			stack = append(stack, self)
			pushed = true
		case tlc.Shape == Constructed: // definite, empty
			self = NewConstructedNode(tlc.Unit)
		default:
			self = NewPrimitiveNode(tlc.Unit, tlc.Begin[tlc.TLSize:tlc.TLSize+tlc.Length])
		}

		if self != nil && !pushed {
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(self)
			} else {
				out, cerr := self.Collapse()
				if cerr != nil {
					return total, cerr
				}
				if err := write(out); err != nil {
					return total, err
				}
			}
		}

		delta := 0
		if pushed {
			delta = 1
		}
		popped := (beforeHeight + delta) - afterHeight
		for i := 0; i < popped; i++ {
			if len(stack) == 0 {
				break
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			out, cerr := n.Collapse()
			if cerr != nil {
				return total, cerr
			}
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(n)
			} else if err := write(out); err != nil {
				return total, err
			}
		}
	}
}
