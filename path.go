package xfsx

/*
path.go implements the XPath-lite path language of spec §3.6/§4.11: an
optional leading "/" (anchored vs. anywhere), "*" wildcards per step,
and a trailing range predicate "[a..b,c,d..]" (1-based, inclusive)
normalized to half-open [lo,hi) integer ranges.
*/

/*
PathStep is one "/"-separated segment of a parsed [Path]: either a
literal element name or a "*" wildcard.
*/
type PathStep struct {
	Name     string
	Wildcard bool
}

// Matches reports whether name satisfies the receiver step.
func (s PathStep) Matches(name string) bool {
	return s.Wildcard || s.Name == name
}

/*
RangeSpec is one normalized half-open range [Lo,Hi) over 0-based match
ranks. Hi == -1 means unbounded ("a..").
*/
type RangeSpec struct {
	Lo, Hi int
}

// Contains reports whether the 0-based rank idx falls in the range.
func (r RangeSpec) Contains(idx int) bool {
	return idx >= r.Lo && (r.Hi == -1 || idx < r.Hi)
}

/*
Path is a parsed path expression. Anchored paths must match from the
traversal root; unanchored paths may match starting at any depth.
*/
type Path struct {
	Anchored bool
	Steps    []PathStep
	Ranges   []RangeSpec
}

/*
MatchesRank reports whether the 1-based match rank satisfies the
receiver's range predicate; a path with no predicate matches every
rank.
*/
func (p *Path) MatchesRank(rank int) bool {
	if len(p.Ranges) == 0 {
		return true
	}
	idx := rank - 1
	for _, r := range p.Ranges {
		if r.Contains(idx) {
			return true
		}
	}
	return false
}

/*
ParsePath parses s into a [Path]. Examples: "/a/b", "a/*\/c",
"/a/b[3]", "/a/b[2..4,7,9..]".
*/
func ParsePath(s string) (*Path, error) {
	p := &Path{}

	if hasPfx(s, "/") {
		p.Anchored = true
		s = s[1:]
	}

	rangeStr := ""
	if i := stridxb(s, '['); i >= 0 {
		if !hasSfx(s, "]") {
			return nil, errorBadRange
		}
		rangeStr = s[i+1 : len(s)-1]
		s = s[:i]
	}

	if s == "" {
		return nil, mkerr("path: empty expression")
	}

	for _, seg := range split(s, "/") {
		if seg == "" {
			return nil, mkerr("path: empty path segment")
		}
		if seg == "*" {
			p.Steps = append(p.Steps, PathStep{Wildcard: true})
		} else {
			p.Steps = append(p.Steps, PathStep{Name: seg})
		}
	}

	if rangeStr != "" {
		ranges, err := parseRanges(rangeStr)
		if err != nil {
			return nil, err
		}
		p.Ranges = ranges
	}

	return p, nil
}

func parseRanges(s string) ([]RangeSpec, error) {
	var out []RangeSpec
	for _, part := range split(s, ",") {
		part = trimS(part)
		if part == "" {
			return nil, errorBadRange
		}
		r, err := parseRangeEntry(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseRangeEntry(s string) (RangeSpec, error) {
	if i := findDotDot(s); i >= 0 {
		loStr := trimS(s[:i])
		hiStr := trimS(s[i+2:])

		lo := 1
		if loStr != "" {
			n, err := atoi(loStr)
			if err != nil || n < 1 {
				return RangeSpec{}, errorBadRange
			}
			lo = n
		}

		if hiStr == "" {
			return RangeSpec{Lo: lo - 1, Hi: -1}, nil
		}
		hi, err := atoi(hiStr)
		if err != nil || hi < lo {
			return RangeSpec{}, errorBadRange
		}
		return RangeSpec{Lo: lo - 1, Hi: hi}, nil
	}

	n, err := atoi(s)
	if err != nil || n < 1 {
		return RangeSpec{}, errorBadRange
	}
	return RangeSpec{Lo: n - 1, Hi: n}, nil
}

func findDotDot(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '.' && s[i+1] == '.' {
			return i
		}
	}
	return -1
}

/*
MatchState classifies how the current traversal stack relates to a
[PathMatcher]'s target path.
*/
type MatchState uint8

const (
	NoMatch MatchState = iota
	Prefix         // still growing toward a full match
	Match          // the target path is fully matched at this depth
)

/*
PathMatcher tracks the current element-name stack against a target
[Path] as the BER→XML writer (C8) descends and ascends the tree,
counting full matches for the path's range predicate and telling the
writer when a definite subtree can be skipped outright.
*/
type PathMatcher struct {
	target    *Path
	stack     []string
	matches   int
	lastState MatchState
}

// NewPathMatcher returns a matcher for target, initially at the root.
func NewPathMatcher(target *Path) *PathMatcher { return &PathMatcher{target: target} }

// Height reports the current traversal depth.
func (m *PathMatcher) Height() int { return len(m.stack) }

/*
Push enters a new element named name and reports the resulting
[MatchState]; when the state is Match, emit reports whether this
occurrence passes the path's range predicate.
*/
func (m *PathMatcher) Push(name string) (state MatchState, emit bool) {
	m.stack = append(m.stack, name)
	state = m.evaluate()
	m.lastState = state
	if state == Match {
		m.matches++
		emit = m.target.MatchesRank(m.matches)
	}
	return
}

// Pop leaves the most recently pushed element.
func (m *PathMatcher) Pop() {
	if len(m.stack) > 0 {
		m.stack = m.stack[:len(m.stack)-1]
	}
	m.lastState = m.evaluate()
}

/*
CanSkip reports whether the current position is outside any match
prefix, meaning the writer may skip the subtree at this depth without
missing a future match.
*/
func (m *PathMatcher) CanSkip() bool { return m.lastState == NoMatch }

func (m *PathMatcher) evaluate() MatchState {
	steps := m.target.Steps
	n := len(m.stack)

	if m.target.Anchored {
		return alignState(m.stack, steps)
	}

	best := NoMatch
	for start := 0; start < n; start++ {
		switch alignState(m.stack[start:], steps) {
		case Match:
			return Match
		case Prefix:
			best = Prefix
		}
	}
	return best
}

func alignState(stack []string, steps []PathStep) MatchState {
	n, m := len(stack), len(steps)
	limit := minInt(n, m)
	for i := 0; i < limit; i++ {
		if !steps[i].Matches(stack[i]) {
			return NoMatch
		}
	}
	switch {
	case n == m:
		return Match
	case n < m:
		return Prefix
	default:
		return NoMatch
	}
}
