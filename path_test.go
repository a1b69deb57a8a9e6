package xfsx

import "testing"

func TestParsePathAnchoredAndSteps(t *testing.T) {
	p, err := ParsePath("/a/b/c")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if !p.Anchored {
		t.Fatal("expected anchored path")
	}
	if len(p.Steps) != 3 || p.Steps[0].Name != "a" || p.Steps[2].Name != "c" {
		t.Fatalf("got steps %+v", p.Steps)
	}
}

func TestParsePathUnanchoredWildcard(t *testing.T) {
	p, err := ParsePath("a/*/c")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if p.Anchored {
		t.Fatal("expected unanchored path")
	}
	if !p.Steps[1].Wildcard {
		t.Fatal("expected middle step to be a wildcard")
	}
}

func TestParsePathRanges(t *testing.T) {
	p, err := ParsePath("/a/b[2..4,7,9..]")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	cases := []struct {
		rank int
		want bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{5, false},
		{7, true},
		{8, false},
		{9, true},
		{100, true},
	}
	for _, c := range cases {
		if got := p.MatchesRank(c.rank); got != c.want {
			t.Errorf("MatchesRank(%d) = %v, want %v", c.rank, got, c.want)
		}
	}
}

func TestParsePathInvalid(t *testing.T) {
	cases := []string{"", "/", "a//b", "/a/b[", "/a/b[3..1]"}
	for _, s := range cases {
		if _, err := ParsePath(s); err == nil {
			t.Errorf("ParsePath(%q): expected error", s)
		}
	}
}

func buildSampleTree() *DocNode {
	root := &DocNode{Unit: Unit{Shape: Constructed}}
	a := &DocNode{Name: "a", Unit: Unit{Shape: Constructed}, Parent: root}
	root.Children = []*DocNode{a}
	for i := 0; i < 3; i++ {
		b := &DocNode{Name: "b", Unit: Unit{Shape: Primitive}, Parent: a, Content: []byte{byte(i)}}
		a.Children = append(a.Children, b)
	}
	return root
}

func TestPathSelectAnchored(t *testing.T) {
	root := buildSampleTree()
	p, err := ParsePath("/a/b")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	matches := p.Select(root)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
}

func TestPathSelectWithRank(t *testing.T) {
	root := buildSampleTree()
	p, err := ParsePath("/a/b[2]")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	matches := p.Select(root)
	if len(matches) != 1 || matches[0].Content[0] != 1 {
		t.Fatalf("expected exactly the second b, got %d matches", len(matches))
	}
}

func TestPathMatcherPushPop(t *testing.T) {
	p, err := ParsePath("/a/b")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	m := NewPathMatcher(p)

	state, _ := m.Push("a")
	if state != Prefix {
		t.Fatalf("expected Prefix after pushing 'a', got %v", state)
	}
	state, emit := m.Push("b")
	if state != Match || !emit {
		t.Fatalf("expected Match/emit after pushing 'a/b', got state=%v emit=%v", state, emit)
	}
	m.Pop()
	state, _ = m.Push("c")
	if state != NoMatch {
		t.Fatalf("expected NoMatch after pushing 'a/c', got %v", state)
	}
}
