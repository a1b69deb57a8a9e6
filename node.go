package xfsx

/*
node.go implements the intrusive node tree (spec §3.7): each node owns
either a materialized byte vector of its content (primitives, or a
constructed subtree that has already been collapsed) or a list of
child node owners, never both. It backs the definite-length rewriter
(C7) and is also available to the XML→BER builder (C10) when full
buffering is required.
*/

/*
Node is one element of the tree: a [Unit] header plus either raw
encoded bytes or child nodes.
*/
type Node struct {
	Unit     Unit
	bytes    []byte
	children []*Node
}

// NewPrimitiveNode returns a bytes-owning leaf node over a copy of content.
func NewPrimitiveNode(u Unit, content []byte) *Node {
	b := make([]byte, len(content))
	copy(b, content)
	return &Node{Unit: u, bytes: b}
}

// NewConstructedNode returns an empty children-owning node.
func NewConstructedNode(u Unit) *Node { return &Node{Unit: u} }

// AddChild appends c as the receiver's next child. It is only
// meaningful before the receiver has been [Node.Collapse]d.
func (n *Node) AddChild(c *Node) { n.children = append(n.children, c) }

// IsCollapsed reports whether the receiver already owns raw bytes.
func (n *Node) IsCollapsed() bool { return n.bytes != nil }

/*
Collapse converts a children-owning node into a bytes-owning one,
bottom-up: every child is collapsed first, their bytes concatenated
into the body, the header is rewritten as definite with a minimal
length, and the result is cached. This is a one-way step — once
collapsed, the node's children slice is discarded. For a primitive
node it returns a minimal definite header followed by its content.
*/
func (n *Node) Collapse() ([]byte, error) {
	if n.Unit.Shape != Constructed {
		u := n.Unit
		u.Length = len(n.bytes)
		u.IsLongDefinite = false
		u.TLSize = u.EncodedLen(0)
		out := make([]byte, u.TLSize+len(n.bytes))
		hn, err := u.Encode(out, 0)
		if err != nil {
			return nil, err
		}
		copy(out[hn:], n.bytes)
		return out, nil
	}
	if n.bytes != nil {
		return n.bytes, nil
	}

	var body []byte
	for _, c := range n.children {
		cb, err := c.Collapse()
		if err != nil {
			return nil, err
		}
		body = append(body, cb...)
	}

	n.Unit.IsIndefinite = false
	n.Unit.IsLongDefinite = false
	n.Unit.Length = len(body)
	n.Unit.TLSize = n.Unit.EncodedLen(0)

	header := make([]byte, n.Unit.TLSize)
	hn, err := n.Unit.Encode(header, 0)
	if err != nil {
		return nil, err
	}

	out := make([]byte, hn+len(body))
	copy(out, header[:hn])
	copy(out[hn:], body)

	n.bytes = out
	n.children = nil
	return out, nil
}
