package xfsx

/*
vreader.go implements the vertical streaming reader (C5): it layers a
frame stack on top of [FlatReader] so callers can observe nesting depth
("height") and get automatic EOC/length bookkeeping. After each unit is
read, any frames whose declared length has now been fully accounted
for are popped automatically, cascading upward through any ancestors
that complete as a result.
*/

import "io"

/*
frame tracks one constructed opener still on the stack: its own Unit
and how many content bytes have been accounted for so far.
*/
type frame struct {
	u        Unit
	consumed int
}

// RecoveryMode selects how a VerticalReader resynchronizes after
// damaged input, per the recovery modes spec.md calls out as optional.
type RecoveryMode uint8

const (
	RecoveryNone RecoveryMode = iota
	// RecoverySkipZero scans forward over zero padding after an
	// UnexpectedEoc and retries from there.
	RecoverySkipZero
	// RecoverySkipZeroRound1KiB is the stronger skip_zero variant:
	// after finding a non-zero byte it also rounds forward to the
	// next 1 KiB boundary before retrying.
	RecoverySkipZeroRound1KiB
	// RecoveryBlockSize treats the input as fixed-size blocks: any
	// parse error discards the rest of the current block and resumes
	// at the next block boundary.
	RecoveryBlockSize
)

/*
VerticalReader wraps a [FlatReader] with a frame stack and exposes
[VerticalReader.Height].
*/
type VerticalReader struct {
	fr        *FlatReader
	stack     []frame
	skipEOC   bool
	recovery  RecoveryMode
	blockSize int64
}

// NewVerticalReader returns a VerticalReader pulling from src.
func NewVerticalReader(src Source) *VerticalReader {
	return &VerticalReader{fr: NewFlatReader(src)}
}

/*
SetSkipEOC enables the "clean document order" recovery variant: EOC
sentinels that close an indefinite frame are swallowed rather than
handed back to the caller.
*/
func (vr *VerticalReader) SetSkipEOC(v bool) { vr.skipEOC = v }

/*
SetSkipZeroRecovery enables the skip_zero recovery mode (spec §4.4):
on UnexpectedEoc, scan forward to the next non-zero byte and retry.
When round1KiB is set, additionally round forward to the next 1 KiB
boundary before retrying.
*/
func (vr *VerticalReader) SetSkipZeroRecovery(round1KiB bool) {
	if round1KiB {
		vr.recovery = RecoverySkipZeroRound1KiB
	} else {
		vr.recovery = RecoverySkipZero
	}
}

/*
SetBlockRecovery enables the block_size recovery mode (spec §4.4): the
input is treated as fixed blockSize blocks, a parse error in one block
is caught and the reader resumes at the next block boundary.
*/
func (vr *VerticalReader) SetBlockRecovery(blockSize int) {
	vr.recovery = RecoveryBlockSize
	vr.blockSize = int64(blockSize)
}

// Height reports the current frame nesting depth.
func (vr *VerticalReader) Height() int { return len(vr.stack) }

// Pos reports the absolute stream position of the reader's cursor.
func (vr *VerticalReader) Pos() int64 { return vr.fr.Pos() }

/*
Next reads the next unit, maintaining frame/height bookkeeping. An EOC
that finds a non-indefinite (or absent) top-of-stack frame is reported
as [ErrUnexpectedEoc]; any unit whose size would overshoot the
enclosing definite frame is reported as [ErrLengthOverflow].
*/
func (vr *VerticalReader) Next() (TLC, error) {
	for {
		tlc, err := vr.fr.Next()
		if err != nil {
			if err != io.EOF && vr.recovery == RecoveryBlockSize {
				return vr.recoverBlock(err)
			}
			return TLC{}, err
		}

		if tlc.IsEOC() {
			if len(vr.stack) == 0 || !vr.stack[len(vr.stack)-1].u.IsIndefinite {
				if vr.recovery == RecoverySkipZero || vr.recovery == RecoverySkipZeroRound1KiB {
					return vr.recoverSkipZero(ErrUnexpectedEoc)
				}
				return TLC{}, ErrUnexpectedEoc
			}
			closed := vr.stack[len(vr.stack)-1]
			vr.stack = vr.stack[:len(vr.stack)-1]
			vr.bubble(closed.u.TLSize + closed.consumed + tlc.TLSize)
			if vr.skipEOC {
				continue
			}
			return tlc, nil
		}

		if len(vr.stack) > 0 {
			top := vr.stack[len(vr.stack)-1]
			size := tlc.TLSize
			if tlc.Shape != Constructed {
				size += tlc.Length
			}
			if !top.u.IsIndefinite && top.consumed+size > top.u.Length {
				return TLC{}, newErr(LengthOverflow, vr.fr.Pos(), "unit overshoots enclosing definite frame")
			}
		}

		switch {
		case tlc.Shape == Constructed && tlc.IsIndefinite:
			vr.stack = append(vr.stack, frame{u: tlc.Unit})
		case tlc.Shape == Constructed && tlc.Length == 0:
			// empty definite constructed: completes immediately.
			vr.bubble(tlc.TLSize)
		case tlc.Shape == Constructed:
			vr.stack = append(vr.stack, frame{u: tlc.Unit})
		default:
			vr.bubble(tlc.TLSize + tlc.Length)
		}

		return tlc, nil
	}
}

// bubble adds n bytes to the innermost frame's consumed count and
// pops any definite frame that has now reached its declared length,
// propagating that frame's own total size to its parent in turn.
func (vr *VerticalReader) bubble(n int) {
	for len(vr.stack) > 0 {
		top := &vr.stack[len(vr.stack)-1]
		top.consumed += n
		if top.u.IsIndefinite || top.consumed < top.u.Length {
			return
		}
		n = top.u.TLSize + top.u.Length
		vr.stack = vr.stack[:len(vr.stack)-1]
	}
}

// recoverSkipZero resynchronizes after cause by scanning forward over
// zero padding, discards the (now unreliable) frame stack, and retries
// from the new position. If no non-zero byte remains, cause itself is
// returned.
func (vr *VerticalReader) recoverSkipZero(cause error) (TLC, error) {
	pos := vr.fr.Pos()
	round := vr.recovery == RecoverySkipZeroRound1KiB
	if err := vr.fr.skipZero(round); err != nil {
		return TLC{}, cause
	}
	logRecovery("skip_zero", "resynchronizing after "+cause.Error(), pos)
	vr.stack = nil
	return vr.Next()
}

// recoverBlock resynchronizes after cause by discarding the rest of
// the current fixed-size block and resuming at the next block
// boundary, discarding the frame stack in the process.
func (vr *VerticalReader) recoverBlock(cause error) (TLC, error) {
	pos := vr.fr.Pos()
	next := ((pos / vr.blockSize) + 1) * vr.blockSize
	if err := vr.fr.advanceBy(next - pos); err != nil {
		return TLC{}, cause
	}
	logRecovery("block_size", "discarding damaged block after "+cause.Error(), pos)
	vr.stack = nil
	return vr.Next()
}

/*
SkipChildren descends into the subtree opened by opener (which must
have just been returned by Next) and re-reads until height drops back
to the depth it had before opener was pushed, discarding
every unit along the way. It works for both definite and indefinite
openers.
*/
func (vr *VerticalReader) SkipChildren(opener TLC) error {
	if opener.Shape != Constructed {
		return newErr(ArgumentError, vr.Pos(), "SkipChildren requires a constructed opener")
	}
	if !opener.IsIndefinite && opener.Length == 0 {
		return nil
	}
	target := vr.Height() - 1
	if target < 0 {
		target = 0
	}
	for vr.Height() > target {
		if _, err := vr.Next(); err != nil {
			return err
		}
	}
	return nil
}
