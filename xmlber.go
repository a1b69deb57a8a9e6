package xfsx

/*
xmlber.go implements the XML→BER writer (C10): a one-pass parser over
[XMLReader] tag events that builds a small intrusive tree (xmlNode),
then serializes it depth-first once the document closes. Per-element
state (tag/class/shape/l_size/uint2int) is reset on every open tag
exactly as the teacher's attribute reader does, so a later element
never inherits an earlier one's attributes by accident (spec §4.9).
*/

import "io"

/*
BERWriterOptions supplies the grammar lookups the builder consults when
an element carries no explicit "tag"/"class" attributes, plus the
dereferencer/typifier pair used to interpret primitive content typed
as INT_64 or BCD rather than raw hex-escaped octets.
*/
type BERWriterOptions struct {
	Translator   *Translator
	Dereferencer *Dereferencer
	Typifier     *Typifier
}

/*
xmlNode is the XML→BER builder's own tree node: unlike [Node] (C7) it
remembers a forced length-of-length and an explicit indefinite request
per element, since the XML source can ask for either via attributes.
*/
type xmlNode struct {
	u          Unit
	lSize      int
	indefinite bool
	bytes      []byte
	children   []*xmlNode
}

func (n *xmlNode) encode() ([]byte, error) {
	if n.u.Shape != Constructed {
		hdr := Unit{Class: n.u.Class, Shape: Primitive, Tag: n.u.Tag, Length: len(n.bytes)}
		hdr.TLSize = hdr.EncodedLen(n.lSize)
		buf := make([]byte, hdr.TLSize+len(n.bytes))
		hn, err := hdr.Encode(buf, n.lSize)
		if err != nil {
			return nil, err
		}
		copy(buf[hn:], n.bytes)
		return buf, nil
	}

	var body []byte
	for _, c := range n.children {
		cb, err := c.encode()
		if err != nil {
			return nil, err
		}
		body = append(body, cb...)
	}

	if n.indefinite {
		hdr := Unit{Class: n.u.Class, Shape: Constructed, Tag: n.u.Tag, IsIndefinite: true}
		hdr.TLSize = hdr.EncodedLen(0)
		head := make([]byte, hdr.TLSize)
		hn, err := hdr.Encode(head, 0)
		if err != nil {
			return nil, err
		}
		out := make([]byte, hn+len(body)+len(eocBytes))
		copy(out, head[:hn])
		copy(out[hn:], body)
		copy(out[hn+len(body):], eocBytes)
		return out, nil
	}

	hdr := Unit{Class: n.u.Class, Shape: Constructed, Tag: n.u.Tag, Length: len(body)}
	hdr.TLSize = hdr.EncodedLen(n.lSize)
	head := make([]byte, hdr.TLSize)
	hn, err := hdr.Encode(head, n.lSize)
	if err != nil {
		return nil, err
	}
	out := make([]byte, hn+len(body))
	copy(out, head[:hn])
	copy(out[hn:], body)
	return out, nil
}

// berBuilder holds the per-element attribute state the teacher's
// BER_Writer_Base resets on every open tag.
type berBuilder struct {
	opts BERWriterOptions

	shape         Shape
	class         Class
	tag           uint32
	tagPresent    bool
	classPresent  bool
	symbolPresent bool
	lSize         int
	uint2int      bool
	indefinite    bool
}

func (b *berBuilder) reset() {
	b.class = ClassUniversal
	b.tag = 0
	b.lSize = 0
	b.uint2int = false
	b.classPresent = false
	b.tagPresent = false
	b.symbolPresent = false
	b.indefinite = false
}

func (b *berBuilder) readTag(name string) error {
	b.reset()

	if b.opts.Translator != nil {
		if shape, class, tag, ok := b.opts.Translator.Lookup(name); ok {
			b.shape, b.class, b.tag = shape, class, tag
			b.tagPresent = true
			b.symbolPresent = true
			return nil
		}
	}

	if len(name) != 1 {
		return newErr(ParseError, 0, "unknown element name "+name)
	}
	switch name {
	case "i":
		b.shape = Constructed
		b.indefinite = true
	case "c":
		b.shape = Constructed
	case "p":
		b.shape = Primitive
	default:
		return newErr(ParseError, 0, "unknown element name "+name)
	}
	return nil
}

func (b *berBuilder) readAttribute(name, value string) error {
	switch name {
	case "tag":
		n, err := atoi(value)
		if err != nil || n < 0 {
			return newErr(ArgumentError, 0, "bad tag attribute value "+value)
		}
		b.tag = uint32(n)
		b.tagPresent = true
	case "class":
		c, err := parseClassName(value)
		if err != nil {
			return err
		}
		b.class = c
		b.classPresent = true
	case "indefinite":
		if b.shape == Primitive {
			return newErr(ParseError, 0, "a primitive tag must not be indefinite")
		}
		if value == "true" {
			b.indefinite = true
		}
	case "definite":
		if b.shape == Primitive {
			return newErr(ParseError, 0, "a primitive tag must not be indefinite")
		}
		if value == "false" {
			b.indefinite = true
		}
	case "l_size":
		n, err := atoi(value)
		if err != nil || n < 0 {
			return newErr(ArgumentError, 0, "bad l_size attribute value "+value)
		}
		b.lSize = n
	case "uint2int":
		b.uint2int = value == "true"
	}
	return nil
}

// decodeContent reinterprets an element's text content as raw BER
// octets: INT_64/BCD content is converted through the dereferencer and
// typifier when a grammar symbol was present, everything else is
// unescaped as hex-escaped XML text.
func (b *berBuilder) decodeContent(text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}

	if b.opts.Typifier == nil || !b.symbolPresent {
		return decodeHexXMLText(text)
	}

	class, tag := b.class, b.tag
	if b.opts.Dereferencer != nil {
		if dc, dt, ok := b.opts.Dereferencer.Resolve(class, tag); ok {
			class, tag = dc, dt
		}
	}

	switch b.opts.Typifier.TypeOf(class, tag) {
	case TypeInt64:
		n, err := atoi64(text, 10, 64)
		if err != nil {
			return nil, newErr(ArgumentError, 0, "bad INTEGER text "+text)
		}
		if b.uint2int {
			return EncodeUint(Int64ToUint32(n)), nil
		}
		return EncodeInt(n), nil
	case TypeBCD:
		digits := []byte(text)
		dst := make([]byte, BCDEncodedSize(len(digits)))
		n, err := BCDEncode(dst, digits)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	default:
		return decodeHexXMLText(text)
	}
}

func decodeHexXMLText(text string) ([]byte, error) {
	src := []byte(text)
	dst := make([]byte, HexDecodedSize(src))
	n, err := HexDecode(dst, src, HexXML)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

/*
WriteBER parses the XML document read from src and writes its BER
encoding to w, returning the number of bytes written. Declarations and
comments are skipped; every other tag must resolve to a known element
name (either via opts.Translator or the single-letter p/c/i fallback)
and carry a tag attribute, directly or through the translator.
*/
func WriteBER(src Source, w io.Writer, opts BERWriterOptions) (int64, error) {
	xr := NewXMLReader(src)
	root := &xmlNode{u: Unit{Shape: Constructed}}
	stack := []*xmlNode{root}
	b := &berBuilder{opts: opts}

	for {
		ev, err := xr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		switch ev.Kind() {
		case TokenComment, TokenDecl:
			continue
		case TokenCloseTag:
			if len(stack) < 2 {
				return 0, newErr(ParseError, xr.Pos(), "document is not well formed")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, top)
			continue
		}

		selfClose := ev.Kind() == TokenSelfCloseTag
		name := ev.Name()

		if err := b.readTag(name); err != nil {
			return 0, err
		}
		attrs, err := ParseAttributes(ev.Tag)
		if err != nil {
			return 0, err
		}
		for k, v := range attrs {
			if err := b.readAttribute(k, v); err != nil {
				return 0, err
			}
		}
		if !b.tagPresent {
			return 0, newErr(ParseError, xr.Pos(), "element is missing mandatory tag attribute")
		}

		if b.shape == Primitive {
			var raw []byte
			if !selfClose {
				next, nerr := xr.Next()
				if nerr == io.EOF {
					return 0, newErr(ParseError, xr.Pos(), "document can't end with a primitive tag")
				}
				if nerr != nil {
					return 0, nerr
				}
				if next.Kind() != TokenCloseTag {
					return 0, newErr(ParseError, xr.Pos(), "primitive element must not contain child elements")
				}
				raw, err = b.decodeContent(next.Value)
				if err != nil {
					return 0, err
				}
			}
			leaf := &xmlNode{
				u:     Unit{Class: b.class, Shape: Primitive, Tag: b.tag},
				lSize: b.lSize,
				bytes: raw,
			}
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, leaf)
			continue
		}

		node := &xmlNode{
			u:          Unit{Class: b.class, Shape: Constructed, Tag: b.tag},
			lSize:      b.lSize,
			indefinite: b.indefinite,
		}
		if selfClose {
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, node)
		} else {
			stack = append(stack, node)
		}
	}

	if len(stack) != 1 {
		return 0, newErr(ParseError, xr.Pos(), "some tags still open at the end of the document")
	}

	var total int64
	for _, c := range root.children {
		cb, err := c.encode()
		if err != nil {
			return total, err
		}
		n, werr := w.Write(cb)
		total += int64(n)
		if werr != nil {
			return total, werr
		}
	}
	return total, nil
}
