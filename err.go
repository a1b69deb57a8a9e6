package xfsx

/*
err.go contains the error taxonomy (see spec §7) and the constructor
helpers used frequently throughout this package.
*/

import "sync"

/*
Kind classifies an [Error] into one of the wire-format or usage failure
categories named by the specification. ParseError is the base kind;
an error of every other kind also satisfies errors.Is(err, ErrParse)
except ArgumentError, which never originates from wire data.
*/
type Kind uint8

const (
	// ParseError is the base kind for all wire-format violations.
	ParseError Kind = iota
	// TlTooSmall indicates fewer than 2 bytes were available where a
	// TL header was expected.
	TlTooSmall
	// UnexpectedEoc indicates an EOC sentinel with no matching
	// indefinite opener on the frame stack.
	UnexpectedEoc
	// TagTooLong indicates a long-form tag exceeded 5 payload bytes
	// or the 32-bit tag number range.
	TagTooLong
	// LengthOverflow indicates a long-form length declared more bytes
	// than the platform integer can hold, or a definite frame was
	// overshot by a child unit.
	LengthOverflow
	// ContentOverflow indicates a primitive's declared length exceeds
	// the remaining buffer.
	ContentOverflow
	// InvalidClass indicates a class enum parse failure from text input.
	InvalidClass
	// InvalidShape indicates a shape enum parse failure from text input.
	InvalidShape
	// ArgumentError indicates a bad CLI argument, surfaced by the
	// external CLI collaborator.
	ArgumentError
)

func (k Kind) String() string {
	switch k {
	case TlTooSmall:
		return "TlTooSmall"
	case UnexpectedEoc:
		return "UnexpectedEoc"
	case TagTooLong:
		return "TagTooLong"
	case LengthOverflow:
		return "LengthOverflow"
	case ContentOverflow:
		return "ContentOverflow"
	case InvalidClass:
		return "InvalidClass"
	case InvalidShape:
		return "InvalidShape"
	case ArgumentError:
		return "ArgumentError"
	default:
		return "ParseError"
	}
}

/*
Error wraps a [Kind] with a contextual message and, optionally, the byte
offset at which the failure was observed. Callers compare against a
kind with errors.Is(err, xfsx.ErrTlTooSmall) etc. — Error's Is method
treats the per-[Kind] sentinel errors (below) as matchable targets.
*/
type Error struct {
	Kind   Kind
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	if e.Offset > 0 {
		return e.Kind.String() + " at offset " + itoa(e.Offset) + ": " + e.Msg
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Is(target error) bool {
	k, ok := target.(*kindSentinel)
	if !ok {
		return false
	}
	if e.Kind == k.kind {
		return true
	}
	return k.kind == ParseError && e.Kind != ArgumentError
}

type kindSentinel struct{ kind Kind }

func (k *kindSentinel) Error() string { return k.kind.String() }

// sentinels usable with errors.Is(err, xfsx.ErrUnexpectedEoc) etc.
var (
	ErrParse           error = &kindSentinel{ParseError}
	ErrTlTooSmall      error = &kindSentinel{TlTooSmall}
	ErrUnexpectedEoc   error = &kindSentinel{UnexpectedEoc}
	ErrTagTooLong      error = &kindSentinel{TagTooLong}
	ErrLengthOverflow  error = &kindSentinel{LengthOverflow}
	ErrContentOverflow error = &kindSentinel{ContentOverflow}
	ErrInvalidClass    error = &kindSentinel{InvalidClass}
	ErrInvalidShape    error = &kindSentinel{InvalidShape}
	ErrArgument        error = &kindSentinel{ArgumentError}
)

func newErr(k Kind, offset int, msg string) error {
	return &Error{Kind: k, Offset: offset, Msg: msg}
}

var (
	errorNilInput     error = mkerr("nil input instance")
	errorNilReceiver  error = mkerr("nil receiver instance")
	errorOutOfBounds  error = mkerr("content and offset out of bounds")
	errorEmptyLength  error = mkerr("length bytes not found")
	errorBadRange     error = mkerr("malformed range predicate")
	errorUnknownStyle error = mkerr("unrecognized hex escape style")
)

var errCache sync.Map

/*
mkerrf builds (and caches) an error from heterogeneous parts, the way
callers throughout this package assemble contextual messages without
repeatedly paying for fmt.Sprintf allocation on the hot parse path.
*/
func mkerrf(parts ...any) error {
	if len(parts) == 1 {
		if s, ok := parts[0].(string); ok {
			if v, hit := errCache.Load(s); hit {
				return v.(error)
			}
		}
	}

	b := newStrBuilder()
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(itoa(v))
		default:
			b.WriteString("<not supported>")
		}
	}
	msg := b.String()

	if v, hit := errCache.Load(msg); hit {
		return v.(error)
	}
	e := mkerr(msg)
	errCache.Store(msg, e)
	return e
}
