package xfsx

/*
int.go implements the integer codec (C2): minimal-length two's-complement
encode/decode for signed and unsigned 8/16/32/64-bit integers, plus the
uint32<->int64 reinterpretation helper grammars use when a BER UNSIGNED
32-bit field is projected as a signed 64-bit value in XML (spec §4.2).
*/

import "golang.org/x/exp/constraints"

/*
EncodeInt returns the minimal two's-complement encoding of v: the
fewest bytes such that the sign is still recoverable from the high bit
of the first byte. Zero occupies exactly one byte.
*/
func EncodeInt[T constraints.Signed](v T) []byte {
	value := int64(v)
	if value == 0 {
		return []byte{0x00}
	}

	negative := value < 0
	var raw []byte
	for {
		b := byte(value & 0xff)
		raw = append([]byte{b}, raw...)
		value >>= 8

		if !negative {
			if value == 0 && b&0x80 == 0 {
				break
			}
		} else {
			if value == -1 && b&0x80 != 0 {
				break
			}
		}
	}
	return raw
}

/*
DecodeInt decodes a two's-complement big-endian encoding (non-minimal
encodings up to sizeof(T) are accepted) into T, sign-extending from the
high bit of the first byte. It fails with [ErrLengthOverflow] if the
value does not fit in T.
*/
func DecodeInt[T constraints.Signed](data []byte) (result T, err error) {
	if len(data) == 0 {
		err = mkerr("INTEGER: zero bytes for decoding")
		return
	}

	width := bitSize[T]()
	if len(data) > width/8 {
		err = newErr(LengthOverflow, 0, "INTEGER: encoding longer than target width")
		return
	}

	var v int64
	for i, b := range data {
		if i == 0 {
			v = int64(int8(b))
			continue
		}
		v = (v << 8) | int64(b)
	}

	if !fitsSigned(v, width) {
		err = newErr(LengthOverflow, 0, "INTEGER: value overflows target width")
		return
	}

	result = T(v)
	return
}

/*
EncodeUint returns the minimal big-endian unsigned encoding of v; zero
occupies exactly one byte. Unlike INTEGER, UNSIGNED content octets are
not prefixed with an extra zero byte when the top bit is set.
*/
func EncodeUint[T constraints.Unsigned](v T) []byte {
	value := uint64(v)
	if value == 0 {
		return []byte{0x00}
	}

	var raw []byte
	for value > 0 {
		raw = append([]byte{byte(value & 0xff)}, raw...)
		value >>= 8
	}
	return raw
}

/*
DecodeUint decodes a big-endian unsigned encoding (up to sizeof(T)
bytes, non-minimal accepted) into T.
*/
func DecodeUint[T constraints.Unsigned](data []byte) (result T, err error) {
	if len(data) == 0 {
		err = mkerr("UNSIGNED: zero bytes for decoding")
		return
	}

	width := bitSize[T]()
	if len(data) > width/8 {
		err = newErr(LengthOverflow, 0, "UNSIGNED: encoding longer than target width")
		return
	}

	var v uint64
	for _, b := range data {
		v = (v << 8) | uint64(b)
	}

	if width < 64 && v >= (uint64(1)<<uint(width)) {
		err = newErr(LengthOverflow, 0, "UNSIGNED: value overflows target width")
		return
	}

	result = T(v)
	return
}

func bitSize[T constraints.Integer]() int {
	var z T
	switch any(z).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	default:
		return 64
	}
}

func fitsSigned(v int64, width int) bool {
	if width >= 64 {
		return true
	}
	lo := -(int64(1) << uint(width-1))
	hi := (int64(1) << uint(width-1)) - 1
	return lo <= v && v <= hi
}

/*
Uint32ToInt64 reinterprets a BER UNSIGNED 32-bit value as a signed
64-bit value, the identity projection used when a grammar's XML
rendering simply widens without reinterpreting sign.
*/
func Uint32ToInt64(u uint32) int64 { return int64(u) }

/*
Int64ToUint32 applies the "uint_to_int" adjustment of spec §4.2 in
reverse: a signed 64-bit XML value is masked to its low 32 bits before
being re-encoded as a BER UNSIGNED 32-bit field.
*/
func Int64ToUint32(v int64) uint32 { return uint32(v) }
