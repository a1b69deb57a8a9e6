package xfsx

/*
common.go contains elements, types and functions used by myriad
components throughout this package.
*/

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

/*
official import aliases.
*/
var (
	mkerr      func(string) error                       = errors.New
	itoa       func(int) string                         = strconv.Itoa
	atoi       func(string) (int, error)                = strconv.Atoi
	atoi64     func(string, int, int) (int64, error)     = strconv.ParseInt
	fmtUint    func(uint64, int) string                 = strconv.FormatUint
	fmtInt     func(int64, int) string                  = strconv.FormatInt
	puint      func(string, int, int) (uint64, error)   = strconv.ParseUint
	split      func(string, string) []string            = strings.Split
	join       func([]string, string) string            = strings.Join
	hexstr     func([]byte) string                      = hex.EncodeToString
	unhexstr   func(string) ([]byte, error)              = hex.DecodeString
	stridxb    func(string, byte) int                   = strings.IndexByte
	hasPfx     func(string, string) bool                = strings.HasPrefix
	hasSfx     func(string, string) bool                = strings.HasSuffix
	trimPfx    func(string, string) string              = strings.TrimPrefix
	trimSfx    func(string, string) string              = strings.TrimSuffix
	trimS      func(string) string                      = strings.TrimSpace
	cntns      func(string, string) bool                = strings.Contains
	strrpt     func(string, int) string                 = strings.Repeat
	isCtrl     func(rune) bool                          = unicode.IsControl
)

func newStrBuilder() strings.Builder { return strings.Builder{} }
func newByteBuffer() bytes.Buffer    { return bytes.Buffer{} }

func bool2str(b bool) (s string) {
	if s = `false`; b {
		s = `true`
	}
	return
}

/*
isPrintableASCII reports whether b falls in the inclusive range [32,126],
the "safely inline-able" range used by the hex-escape codecs (C1) when
deciding whether a content byte needs escaping at all.
*/
func isPrintableASCII(b byte) bool { return 32 <= b && b <= 126 }

/*
minInt and maxInt avoid pulling in golang.org/x/exp/constraints for two
trivial helpers used outside any generic context.
*/
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
