package xfsx

import "testing"

func TestBCDRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"even", "0123456789"},
		{"odd", "123456789"},
		{"hexLetters", "abcdefABCDEF"},
		{"empty", ""},
		{"singleDigit", "5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc := make([]byte, BCDEncodedSize(len(c.src)))
			n, err := BCDEncode(enc, []byte(c.src))
			if err != nil {
				t.Fatalf("BCDEncode: %v", err)
			}
			enc = enc[:n]

			dec := make([]byte, BCDDecodedSize(len(enc)))
			m := BCDDecode(dec, enc)
			dec = dec[:m]

			want := toLowerASCIIDigits(c.src)
			if string(dec) != want {
				t.Errorf("round trip: got %q, want %q", dec, want)
			}
		})
	}
}

func toLowerASCIIDigits(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'F' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func TestBCDEncodeOddPadsFillerNibble(t *testing.T) {
	enc := make([]byte, BCDEncodedSize(3))
	n, err := BCDEncode(enc, []byte("123"))
	if err != nil {
		t.Fatalf("BCDEncode: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 encoded bytes, got %d", n)
	}
	if enc[1] != 0x3f {
		t.Errorf("expected filler nibble 0xf in low nibble of last byte, got %#x", enc[1])
	}
}

func TestBCDEncodeInvalidDigit(t *testing.T) {
	enc := make([]byte, 1)
	if _, err := BCDEncode(enc, []byte("1g")); err == nil {
		t.Fatal("expected error for non-hex digit")
	}
}

func TestBCDDecodeBatchedPath(t *testing.T) {
	src := []byte{0x01, 0x23, 0x45, 0x67, 0x89}
	dst := make([]byte, BCDDecodedSize(len(src)))
	n := BCDDecode(dst, src)
	if string(dst[:n]) != "0123456789" {
		t.Errorf("got %q, want %q", dst[:n], "0123456789")
	}
}
