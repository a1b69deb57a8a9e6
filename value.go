package xfsx

/*
value.go implements the typed value carrier (C4): a closed sum type
over the content forms a BER primitive or an XML-projected attribute
can take (spec §3.5). Every variant offers MinimallyEncodedLen and
EncodeInto; dispatch is by an unexported marker method, following the
same closed-interface idiom the teacher uses for its Primitive type.
*/

/*
ValueKind identifies a [Value] variant.
*/
type ValueKind uint8

const (
	KindU8 ValueKind = iota
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindBool
	KindString    // owned UTF-8 string
	KindByteRange // unowned byte range (no copy)
	KindCharRange // unowned character range (no copy)
	KindXMLEscape // XML-escaped content range
	KindBCD       // BCD content range
	KindInt64Range
)

func (k ValueKind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindI8:
		return "i8"
	case KindU16:
		return "u16"
	case KindI16:
		return "i16"
	case KindU32:
		return "u32"
	case KindI32:
		return "i32"
	case KindU64:
		return "u64"
	case KindI64:
		return "i64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindByteRange:
		return "byte-range"
	case KindCharRange:
		return "char-range"
	case KindXMLEscape:
		return "xml-escape"
	case KindBCD:
		return "bcd"
	case KindInt64Range:
		return "int64-range"
	default:
		return "unknown"
	}
}

/*
Value is a closed sum type over every content form a primitive TLV or
an XML-projected attribute carries. The member set is fixed: callers
may not add variants, only construct and consume the ones below via
the New* functions.
*/
type Value interface {
	Kind() ValueKind
	String() string

	// MinimallyEncodedLen reports the destination size EncodeInto
	// needs, so callers can size a buffer in one shot. It is the exact
	// count written for every variant except [BCDValue], whose written
	// count leaves out a trailing 0xF filler nibble.
	MinimallyEncodedLen() int

	// EncodeInto writes the value's minimal encoding into dst, which
	// must have capacity for at least MinimallyEncodedLen, and returns
	// the number of bytes written.
	EncodeInto(dst []byte) (int, error)

	isValue()
}

/*
IntValue carries one of the eight fixed-width integer variants
(u8/i8/u16/i16/u32/i32/u64/i64). The iN variants hold their value in
an int64 field, the uN variants in a uint64 field.
*/
type IntValue struct {
	kind   ValueKind
	signed int64
	uns    uint64
}

func NewU8(v uint8) IntValue   { return IntValue{kind: KindU8, uns: uint64(v)} }
func NewI8(v int8) IntValue    { return IntValue{kind: KindI8, signed: int64(v)} }
func NewU16(v uint16) IntValue { return IntValue{kind: KindU16, uns: uint64(v)} }
func NewI16(v int16) IntValue  { return IntValue{kind: KindI16, signed: int64(v)} }
func NewU32(v uint32) IntValue { return IntValue{kind: KindU32, uns: uint64(v)} }
func NewI32(v int32) IntValue  { return IntValue{kind: KindI32, signed: int64(v)} }
func NewU64(v uint64) IntValue { return IntValue{kind: KindU64, uns: v} }
func NewI64(v int64) IntValue  { return IntValue{kind: KindI64, signed: v} }

func (v IntValue) Kind() ValueKind { return v.kind }

func (v IntValue) String() string {
	if v.isSigned() {
		return fmtInt(v.signed, 10)
	}
	return fmtUint(v.uns, 10)
}

func (v IntValue) isSigned() bool {
	switch v.kind {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	default:
		return false
	}
}

func (v IntValue) encoded() []byte {
	switch v.kind {
	case KindU8:
		return EncodeUint(uint8(v.uns))
	case KindI8:
		return EncodeInt(int8(v.signed))
	case KindU16:
		return EncodeUint(uint16(v.uns))
	case KindI16:
		return EncodeInt(int16(v.signed))
	case KindU32:
		return EncodeUint(uint32(v.uns))
	case KindI32:
		return EncodeInt(int32(v.signed))
	case KindU64:
		return EncodeUint(v.uns)
	case KindI64:
		return EncodeInt(v.signed)
	default:
		return nil
	}
}

func (v IntValue) MinimallyEncodedLen() int { return len(v.encoded()) }

func (v IntValue) EncodeInto(dst []byte) (int, error) {
	raw := v.encoded()
	if raw == nil {
		return 0, ErrInvalidShape
	}
	if len(dst) < len(raw) {
		return 0, ErrContentOverflow
	}
	return copy(dst, raw), nil
}

func (IntValue) isValue() {}

/*
BoolValue carries an ASN.1 BOOLEAN: 0x00 for false, 0xFF for true.
*/
type BoolValue struct{ V bool }

func NewBool(v bool) BoolValue { return BoolValue{V: v} }

func (v BoolValue) Kind() ValueKind           { return KindBool }
func (v BoolValue) String() string            { return bool2str(v.V) }
func (v BoolValue) MinimallyEncodedLen() int  { return 1 }
func (BoolValue) isValue()                    {}

func (v BoolValue) EncodeInto(dst []byte) (int, error) {
	if len(dst) < 1 {
		return 0, ErrContentOverflow
	}
	if v.V {
		dst[0] = 0xff
	} else {
		dst[0] = 0x00
	}
	return 1, nil
}

/*
StringValue carries an owned, already-copied UTF-8 string — the only
variant that allocates its own backing storage.
*/
type StringValue struct{ S string }

func NewString(s string) StringValue { return StringValue{S: s} }

func (v StringValue) Kind() ValueKind          { return KindString }
func (v StringValue) String() string           { return v.S }
func (v StringValue) MinimallyEncodedLen() int { return len(v.S) }
func (StringValue) isValue()                   {}

func (v StringValue) EncodeInto(dst []byte) (int, error) {
	if len(dst) < len(v.S) {
		return 0, ErrContentOverflow
	}
	return copy(dst, v.S), nil
}

/*
ByteRangeValue carries an unowned slice into a caller-supplied buffer —
no copy is taken at construction time.
*/
type ByteRangeValue struct{ B []byte }

func NewByteRange(b []byte) ByteRangeValue { return ByteRangeValue{B: b} }

func (v ByteRangeValue) Kind() ValueKind          { return KindByteRange }
func (v ByteRangeValue) String() string           { return hexstr(v.B) }
func (v ByteRangeValue) MinimallyEncodedLen() int { return len(v.B) }
func (ByteRangeValue) isValue()                   {}

func (v ByteRangeValue) EncodeInto(dst []byte) (int, error) {
	if len(dst) < len(v.B) {
		return 0, ErrContentOverflow
	}
	return copy(dst, v.B), nil
}

/*
CharRangeValue carries an unowned range of the source buffer known to
hold valid UTF-8 text, distinct from [ByteRangeValue] only in that
callers may assume character-boundary semantics over it.
*/
type CharRangeValue struct{ B []byte }

func NewCharRange(b []byte) CharRangeValue { return CharRangeValue{B: b} }

func (v CharRangeValue) Kind() ValueKind          { return KindCharRange }
func (v CharRangeValue) String() string           { return string(v.B) }
func (v CharRangeValue) MinimallyEncodedLen() int { return len(v.B) }
func (CharRangeValue) isValue()                   {}

func (v CharRangeValue) EncodeInto(dst []byte) (int, error) {
	if len(dst) < len(v.B) {
		return 0, ErrContentOverflow
	}
	return copy(dst, v.B), nil
}

/*
XMLEscapeValue carries a raw content range alongside the [HexStyle] it
should be escaped with when projected into XML text.
*/
type XMLEscapeValue struct {
	Raw   []byte
	Style HexStyle
}

func NewXMLEscape(raw []byte, style HexStyle) XMLEscapeValue {
	return XMLEscapeValue{Raw: raw, Style: style}
}

func (v XMLEscapeValue) Kind() ValueKind { return KindXMLEscape }
func (v XMLEscapeValue) String() string  { return v.Style.String() }
func (XMLEscapeValue) isValue()          {}

func (v XMLEscapeValue) MinimallyEncodedLen() int {
	return HexEncodedSize(v.Raw, v.Style)
}

func (v XMLEscapeValue) EncodeInto(dst []byte) (int, error) {
	need := HexEncodedSize(v.Raw, v.Style)
	if len(dst) < need {
		return 0, ErrContentOverflow
	}
	return HexEncode(dst, v.Raw, v.Style), nil
}

/*
BCDValue carries a raw packed-BCD content range (spec §4.1).
*/
type BCDValue struct{ Raw []byte }

func NewBCD(raw []byte) BCDValue { return BCDValue{Raw: raw} }

func (v BCDValue) Kind() ValueKind          { return KindBCD }
func (v BCDValue) MinimallyEncodedLen() int { return BCDDecodedSize(len(v.Raw)) }
func (BCDValue) isValue()                   {}

func (v BCDValue) String() string {
	buf := make([]byte, BCDDecodedSize(len(v.Raw)))
	n := BCDDecode(buf, v.Raw)
	return string(buf[:n])
}

func (v BCDValue) EncodeInto(dst []byte) (int, error) {
	need := BCDDecodedSize(len(v.Raw))
	if len(dst) < need {
		return 0, ErrContentOverflow
	}
	return BCDDecode(dst, v.Raw), nil
}

/*
Int64RangeValue reinterprets a raw big-endian content range (up to 8
bytes, sign-extended per [DecodeInt]) as an int64; the XML writer
(C8) uses it to render INT_64-typed content.
*/
type Int64RangeValue struct{ Raw []byte }

func NewInt64Range(raw []byte) Int64RangeValue { return Int64RangeValue{Raw: raw} }

func (v Int64RangeValue) Kind() ValueKind { return KindInt64Range }
func (Int64RangeValue) isValue()          {}

func (v Int64RangeValue) asInt64() (int64, error) {
	return DecodeInt[int64](v.Raw)
}

func (v Int64RangeValue) String() string {
	n, err := v.asInt64()
	if err != nil {
		return ""
	}
	return fmtInt(n, 10)
}

func (v Int64RangeValue) MinimallyEncodedLen() int {
	n, err := v.asInt64()
	if err != nil {
		return 0
	}
	return len(EncodeInt(n))
}

func (v Int64RangeValue) EncodeInto(dst []byte) (int, error) {
	n, err := v.asInt64()
	if err != nil {
		return 0, err
	}
	raw := EncodeInt(n)
	if len(dst) < len(raw) {
		return 0, ErrContentOverflow
	}
	return copy(dst, raw), nil
}
