package xfsx

/*
translator.go implements the grammar-derived maps of spec §3.6: the
name translator, the dereferencer, and the typifier. All three are
populated once from a grammar description and then consulted on every
unit the XML writer (C8) or XML→BER builder (C10) processes.
*/

/*
ContentType is the typifier's output: how a unit's content should be
rendered in XML or reinterpreted when building BER from XML text.
*/
type ContentType uint8

const (
	TypeOctetString ContentType = iota
	TypeString
	TypeInt64
	TypeBCD
)

func (t ContentType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeInt64:
		return "INT_64"
	case TypeBCD:
		return "BCD"
	default:
		return "OCTET_STRING"
	}
}

type tagRef struct {
	Shape Shape
	Class Class
	Tag   uint32
}

/*
Translator is a bidirectional map between element names and
(class, tag) pairs, keyed on class-indexed buckets in the forward
direction (spec §3.6).
*/
type Translator struct {
	forward map[Class]map[uint32]string
	reverse map[string]tagRef
}

// NewTranslator returns an empty Translator.
func NewTranslator() *Translator {
	return &Translator{
		forward: make(map[Class]map[uint32]string),
		reverse: make(map[string]tagRef),
	}
}

/*
Add registers a name for the (class, tag) pair, recording shape for
the reverse (XML→BER) direction.
*/
func (t *Translator) Add(shape Shape, class Class, tag uint32, name string) {
	if t.forward[class] == nil {
		t.forward[class] = make(map[uint32]string)
	}
	t.forward[class][tag] = name
	t.reverse[name] = tagRef{Shape: shape, Class: class, Tag: tag}
}

// Name returns the element name registered for (class, tag), if any.
func (t *Translator) Name(class Class, tag uint32) (string, bool) {
	m, ok := t.forward[class]
	if !ok {
		return "", false
	}
	n, ok := m[tag]
	return n, ok
}

// Lookup returns the (shape, class, tag) registered for name, if any.
func (t *Translator) Lookup(name string) (shape Shape, class Class, tag uint32, ok bool) {
	r, ok := t.reverse[name]
	return r.Shape, r.Class, r.Tag, ok
}

type derefEntry struct {
	tags        map[uint32]bool
	targetClass Class
	targetTag   uint32
}

/*
Dereferencer maps an application tag to a universal tag for content
typing, via an ordered list of (tag set → target) rules per class; the
first matching rule wins (spec §3.6).
*/
type Dereferencer struct {
	perClass map[Class][]derefEntry
}

// NewDereferencer returns an empty Dereferencer.
func NewDereferencer() *Dereferencer {
	return &Dereferencer{perClass: make(map[Class][]derefEntry)}
}

// Add registers a rule: any tag in tags under class dereferences to
// (targetClass, targetTag).
func (d *Dereferencer) Add(class Class, tags []uint32, targetClass Class, targetTag uint32) {
	set := make(map[uint32]bool, len(tags))
	for _, tg := range tags {
		set[tg] = true
	}
	d.perClass[class] = append(d.perClass[class], derefEntry{
		tags: set, targetClass: targetClass, targetTag: targetTag,
	})
}

// Resolve returns the target (class, tag) for (class, tag) if a rule
// matches, else (class, tag, false).
func (d *Dereferencer) Resolve(class Class, tag uint32) (Class, uint32, bool) {
	for _, e := range d.perClass[class] {
		if e.tags[tag] {
			return e.targetClass, e.targetTag, true
		}
	}
	return class, tag, false
}

/*
Typifier assigns a [ContentType] per (class, tag), defaulting to
OCTET_STRING when nothing is registered (spec §3.6).
*/
type Typifier struct {
	types map[Class]map[uint32]ContentType
}

// NewTypifier returns an empty Typifier.
func NewTypifier() *Typifier {
	return &Typifier{types: make(map[Class]map[uint32]ContentType)}
}

// Set registers the content type for (class, tag).
func (t *Typifier) Set(class Class, tag uint32, ct ContentType) {
	if t.types[class] == nil {
		t.types[class] = make(map[uint32]ContentType)
	}
	t.types[class][tag] = ct
}

// TypeOf returns the registered content type for (class, tag), or
// OCTET_STRING if nothing was registered.
func (t *Typifier) TypeOf(class Class, tag uint32) ContentType {
	if m, ok := t.types[class]; ok {
		if ct, ok := m[tag]; ok {
			return ct
		}
	}
	return TypeOctetString
}
