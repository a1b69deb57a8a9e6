package xfsx

/*
reader.go implements the flat streaming reader (C5): it walks Units in
document order over a [Source], presenting each as a [TLC] pointing
into the current scratchpad window. Definite frames are not tracked —
constructed openers are yielded like any other unit and EOC sentinels
appear as ordinary units too. Use cases: identity rewrite, raw
inspection, or as the base iterator the vertical reader (vreader.go)
layers frame tracking on top of.
*/

import (
	"errors"
	"io"
)

/*
TLC is a Tag-Length-Content view: the parsed [Unit] plus the raw bytes
of its TL header (and, for primitive units, its content) as a window
into the current scratchpad buffer. The slice is only valid until the
next call to Next — callers that need to retain it must copy.
*/
type TLC struct {
	Unit
	Begin []byte
}

// initialTLGuess is the first window size requested per unit: enough
// for a short tag, a long length up to 8 octets, and the sentinel byte.
const initialTLGuess = 1 + maxTagOctets + 9

/*
FlatReader iterates Units over a [Source] in document order.
*/
type FlatReader struct {
	r *Reader
}

// NewFlatReader returns a FlatReader pulling from src.
func NewFlatReader(src Source) *FlatReader { return &FlatReader{r: NewReader(src)} }

// Pos reports the absolute stream position of the reader's cursor.
func (fr *FlatReader) Pos() int64 { return fr.r.Pos() }

/*
Next reads and returns the next unit in document order. For a
CONSTRUCTED opener (definite or indefinite) only the TL header is
consumed — its content is read as subsequent units from the same
stream. For a PRIMITIVE unit or the EOC sentinel, the full TL+content
span is consumed and returned in one piece. Next returns io.EOF once
the source is exhausted with no more units pending.
*/
func (fr *FlatReader) Next() (TLC, error) {
	want := initialTLGuess
	for {
		status, err := fr.r.Next(want)
		if err != nil {
			return TLC{}, err
		}

		win := fr.r.Window()
		if len(win) == 0 {
			return TLC{}, io.EOF
		}

		u, perr := ParseUnit(win)
		if perr != nil {
			if errors.Is(perr, ErrTlTooSmall) && status != NextEOF {
				want *= 2
				continue
			}
			return TLC{}, perr
		}

		n := u.TLSize
		if u.Shape != Constructed || u.IsEOC() {
			n += u.Length
		}

		if len(win) < n {
			if status, err = fr.r.Next(n); err != nil {
				return TLC{}, err
			}
			win = fr.r.Window()
			if len(win) < n {
				return TLC{}, newErr(ContentOverflow, fr.r.Pos(), "truncated unit content")
			}
		}

		begin := win[:n]
		fr.r.Advance(n)
		return TLC{Unit: u, Begin: begin}, nil
	}
}

// skipZero scans forward one byte at a time over zero padding, used by
// the skip_zero recovery mode to resynchronize after UnexpectedEoc. If
// round1KiB is set, it additionally advances to the next 1 KiB
// boundary once a non-zero byte is found.
func (fr *FlatReader) skipZero(round1KiB bool) error {
	for {
		status, err := fr.r.Next(1)
		if err != nil {
			return err
		}
		win := fr.r.Window()
		if len(win) == 0 {
			if status == NextEOF {
				return io.EOF
			}
			continue
		}
		if win[0] != 0 {
			if !round1KiB {
				return nil
			}
			pos := fr.r.Pos()
			pad := 1024 - pos%1024
			if pad == 1024 {
				return nil
			}
			return fr.advanceBy(pad)
		}
		fr.r.Advance(1)
	}
}

// advanceBy discards n bytes from the stream, refilling in chunks as
// needed. Used by block_size recovery to jump to the next block
// boundary after a damaged block.
func (fr *FlatReader) advanceBy(n int64) error {
	for n > 0 {
		want := n
		if want > 1<<20 {
			want = 1 << 20
		}
		status, err := fr.r.Next(int(want))
		if err != nil {
			return err
		}
		win := fr.r.Window()
		adv := int64(len(win))
		if adv > n {
			adv = n
		}
		if adv == 0 {
			if status == NextEOF {
				return io.EOF
			}
			continue
		}
		fr.r.Advance(int(adv))
		n -= adv
	}
	return nil
}

/*
Skip advances past a definite constructed subtree named by opener
without descending into it: it reads and discards opener.Length bytes
in one shot rather than re-parsing each child unit. It is an error to
call Skip on an indefinite or non-constructed opener.
*/
func (fr *FlatReader) Skip(opener TLC) error {
	if opener.Shape != Constructed || opener.IsIndefinite {
		return newErr(ArgumentError, fr.r.Pos(), "Skip requires a definite constructed opener")
	}
	status, err := fr.r.Next(opener.Length)
	if err != nil {
		return err
	}
	win := fr.r.Window()
	if len(win) < opener.Length {
		if status == NextEOF {
			return newErr(ContentOverflow, fr.r.Pos(), "Skip ran past end of input")
		}
		return newErr(ContentOverflow, fr.r.Pos(), "Skip could not gather subtree bytes")
	}
	fr.r.Advance(opener.Length)
	return nil
}
