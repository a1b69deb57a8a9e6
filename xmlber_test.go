package xfsx

import (
	"bytes"
	"testing"
)

func writeBERString(t *testing.T, doc string, opts BERWriterOptions) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := WriteBER(NewMemSource([]byte(doc)), &buf, opts); err != nil {
		t.Fatalf("WriteBER(%q): %v", doc, err)
	}
	return buf.Bytes()
}

func TestWriteBERPrimitiveFallbackName(t *testing.T) {
	got := writeBERString(t, "<p tag='4'>ab</p>", BERWriterOptions{})
	want := []byte{0x04, 0x02, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERNestedConstructedDefinite(t *testing.T) {
	got := writeBERString(t, "<c tag='16'><p tag='4'>ab</p></c>", BERWriterOptions{})
	want := []byte{0x30, 0x04, 0x04, 0x02, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERIndefiniteElementName(t *testing.T) {
	got := writeBERString(t, "<i tag='16'><p tag='4'>ab</p></i>", BERWriterOptions{})
	want := []byte{0x30, 0x80, 0x04, 0x02, 'a', 'b', 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERSelfClosingEmptyConstructed(t *testing.T) {
	got := writeBERString(t, "<c tag='16' />", BERWriterOptions{})
	want := []byte{0x30, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERSelfClosingPrimitiveIsEmpty(t *testing.T) {
	got := writeBERString(t, "<p tag='4' />", BERWriterOptions{})
	want := []byte{0x04, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERTranslatorResolvesNameToTagAndClass(t *testing.T) {
	tr := NewTranslator()
	tr.Add(Primitive, ClassContextSpecific, 1, "imsi")
	got := writeBERString(t, "<imsi>ab</imsi>", BERWriterOptions{Translator: tr})
	want := []byte{0x81, 0x02, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERClassAttribute(t *testing.T) {
	got := writeBERString(t, "<p tag='1' class='application'>ab</p>", BERWriterOptions{})
	want := []byte{0x41, 0x02, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERHexEscapedContent(t *testing.T) {
	got := writeBERString(t, "<p tag='4'>&#xff;&#x00;</p>", BERWriterOptions{})
	want := []byte{0x04, 0x02, 0xff, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERTypifiedInt64Content(t *testing.T) {
	ty := NewTypifier()
	ty.Set(ClassContextSpecific, 2, TypeInt64)
	tr := NewTranslator()
	tr.Add(Primitive, ClassContextSpecific, 2, "counter")

	got := writeBERString(t, "<counter>300</counter>", BERWriterOptions{Translator: tr, Typifier: ty})
	want := append([]byte{0x82}, byte(len(EncodeInt[int64](300))))
	want = append(want, EncodeInt[int64](300)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERTypifiedBCDContent(t *testing.T) {
	ty := NewTypifier()
	ty.Set(ClassContextSpecific, 3, TypeBCD)
	tr := NewTranslator()
	tr.Add(Primitive, ClassContextSpecific, 3, "digits")

	got := writeBERString(t, "<digits>1234</digits>", BERWriterOptions{Translator: tr, Typifier: ty})

	raw := make([]byte, BCDEncodedSize(4))
	n, err := BCDEncode(raw, []byte("1234"))
	if err != nil {
		t.Fatalf("BCDEncode: %v", err)
	}
	want := append([]byte{0x83, byte(n)}, raw[:n]...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERMultipleTopLevelElements(t *testing.T) {
	got := writeBERString(t, "<p tag='4'>a</p><p tag='5'>b</p>", BERWriterOptions{})
	want := []byte{0x04, 0x01, 'a', 0x05, 0x01, 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestWriteBERMissingTagAttributeIsError(t *testing.T) {
	if _, err := WriteBER(NewMemSource([]byte("<p>ab</p>")), &bytes.Buffer{}, BERWriterOptions{}); err == nil {
		t.Fatal("expected an error for a missing tag attribute")
	}
}

func TestWriteBERUnbalancedCloseTagIsError(t *testing.T) {
	if _, err := WriteBER(NewMemSource([]byte("</p>")), &bytes.Buffer{}, BERWriterOptions{}); err == nil {
		t.Fatal("expected an error for an unbalanced close tag")
	}
}

func TestWriteBERUnterminatedElementIsError(t *testing.T) {
	if _, err := WriteBER(NewMemSource([]byte("<c tag='16'><p tag='4'>ab</p>")), &bytes.Buffer{}, BERWriterOptions{}); err == nil {
		t.Fatal("expected an error for a document left with open tags")
	}
}

func TestWriteBERPrimitiveWithChildElementIsError(t *testing.T) {
	doc := "<p tag='4'><p tag='5'>ab</p></p>"
	if _, err := WriteBER(NewMemSource([]byte(doc)), &bytes.Buffer{}, BERWriterOptions{}); err == nil {
		t.Fatal("expected an error for a primitive element containing a child element")
	}
}

func TestWriteBERDereferencerAppliesBeforeTypifier(t *testing.T) {
	tr := NewTranslator()
	tr.Add(Primitive, ClassContextSpecific, 5, "amount")

	deref := NewDereferencer()
	deref.Add(ClassContextSpecific, []uint32{5}, ClassUniversal, 2)

	ty := NewTypifier()
	ty.Set(ClassUniversal, 2, TypeInt64)

	got := writeBERString(t, "<amount>7</amount>", BERWriterOptions{Translator: tr, Dereferencer: deref, Typifier: ty})
	want := append([]byte{0x85}, byte(len(EncodeInt[int64](7))))
	want = append(want, EncodeInt[int64](7)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}
