package xfsx

import (
	"io"
	"testing"
)

func TestXMLReaderNextYieldsTextAndTagInOrder(t *testing.T) {
	xr := NewXMLReader(NewMemSource([]byte("hello<p>world</p>")))

	ev, err := xr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Value != "hello" || ev.Tag != "p" {
		t.Fatalf("got %+v", ev)
	}
	if ev.Kind() != TokenOpenTag {
		t.Errorf("got kind %v", ev.Kind())
	}
	if ev.Name() != "p" {
		t.Errorf("got name %q", ev.Name())
	}

	ev, err = xr.Next()
	if err != nil {
		t.Fatalf("Next (2): %v", err)
	}
	if ev.Value != "world" || ev.Tag != "/p" {
		t.Fatalf("got %+v", ev)
	}
	if ev.Kind() != TokenCloseTag {
		t.Errorf("got kind %v", ev.Kind())
	}
	if ev.Name() != "p" {
		t.Errorf("got name %q", ev.Name())
	}

	if _, err := xr.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestXMLReaderSelfCloseTag(t *testing.T) {
	xr := NewXMLReader(NewMemSource([]byte("<p tag='4' />")))
	ev, err := xr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Kind() != TokenSelfCloseTag {
		t.Fatalf("got kind %v", ev.Kind())
	}
	if ev.Name() != "p" {
		t.Errorf("got name %q", ev.Name())
	}
}

func TestXMLReaderCommentAndDecl(t *testing.T) {
	xr := NewXMLReader(NewMemSource([]byte("<?xml version='1.0'?><!-- hi --><p></p>")))

	ev, err := xr.Next()
	if err != nil || ev.Kind() != TokenDecl {
		t.Fatalf("got ev=%+v err=%v", ev, err)
	}

	ev, err = xr.Next()
	if err != nil || ev.Kind() != TokenComment {
		t.Fatalf("got ev=%+v err=%v", ev, err)
	}

	ev, err = xr.Next()
	if err != nil || ev.Kind() != TokenOpenTag {
		t.Fatalf("got ev=%+v err=%v", ev, err)
	}
}

func TestXMLReaderTagEndIgnoresAnglesInQuotedAttr(t *testing.T) {
	xr := NewXMLReader(NewMemSource([]byte(`<p a="1>2">x</p>`)))
	ev, err := xr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Tag != `p a="1>2"` {
		t.Fatalf("got tag %q", ev.Tag)
	}
}

func TestXMLReaderTrailingTextWithNoTagIsError(t *testing.T) {
	xr := NewXMLReader(NewMemSource([]byte("just text, no tags")))
	if _, err := xr.Next(); err == nil {
		t.Fatal("expected an error for trailing text with no closing tag")
	}
}

func TestXMLReaderGrowsWindowForLargeTag(t *testing.T) {
	body := make([]byte, initialTagGuess*3)
	for i := range body {
		body[i] = 'a'
	}
	data := append([]byte("<p a='"), body...)
	data = append(data, []byte("'></p>")...)

	xr := NewXMLReader(NewMemSource(data))
	ev, err := xr.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Name() != "p" {
		t.Fatalf("got name %q", ev.Name())
	}
}

func TestParseAttributesBothQuoteStyles(t *testing.T) {
	attrs, err := ParseAttributes(`p tag='4' class="universal"`)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if attrs["tag"] != "4" || attrs["class"] != "universal" {
		t.Fatalf("got %+v", attrs)
	}
}

func TestParseAttributesNoAttributes(t *testing.T) {
	attrs, err := ParseAttributes("p")
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if len(attrs) != 0 {
		t.Fatalf("got %+v", attrs)
	}
}

func TestParseAttributesSelfCloseMarkerIgnored(t *testing.T) {
	attrs, err := ParseAttributes("p tag='4' /")
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if attrs["tag"] != "4" {
		t.Fatalf("got %+v", attrs)
	}
}

func TestParseAttributesMissingEqualsIsError(t *testing.T) {
	if _, err := ParseAttributes("p tag"); err == nil {
		t.Fatal("expected an error for a missing '='")
	}
}

func TestParseAttributesUnquotedValueIsError(t *testing.T) {
	if _, err := ParseAttributes("p tag=4"); err == nil {
		t.Fatal("expected an error for an unquoted attribute value")
	}
}

func TestParseAttributesUnterminatedQuoteIsError(t *testing.T) {
	if _, err := ParseAttributes(`p tag='4`); err == nil {
		t.Fatal("expected an error for an unterminated quote")
	}
}
