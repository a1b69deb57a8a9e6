package xfsx

/*
detect.go implements the auto-detection dispatcher (spec §6.4): a JSON
configuration names an ordered list of format candidates, each giving
an initial grammar set to decode a file's header with, a handful of
XPath-lite variable extractions, and a resulting grammar/constraint set
templated on those variables. Detection only ever looks at the first
handful of units of a file — it never decodes the whole thing just to
guess its shape.
*/

import (
	"encoding/json"
	"strings"
)

/*
DetectorConfig is the top-level JSON document: an ordered list of
candidate format definitions, tried in order until one matches.
*/
type DetectorConfig struct {
	Definitions []Definition `json:"definitions"`
}

/*
Definition is one candidate format: the grammar set to decode the
header with, the variables to extract from that header, and the
grammar/constraint/pretty-printer set to resolve once those variables
are known.
*/
type Definition struct {
	InitialGrammars      []string   `json:"initial_grammars"`
	Variables            []Variable `json:"variables"`
	ResultingGrammars    []string   `json:"resulting_grammars"`
	ResultingConstraints []string   `json:"resulting_constraints"`
	ResultingPP          string     `json:"resulting_pp"`
	Name                 string     `json:"name"`
	LongName             string     `json:"long_name"`
}

// Variable names one value to pull out of the header tree by path.
type Variable struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// DetectResult is what a successful Detect call resolves to.
type DetectResult struct {
	ASNFilenames        []string
	ConstraintFilenames []string
	PPFilename          string
	Name                string
	LongName            string
	Major               int
	Minor               int
}

// ParseDetectorConfig decodes a detector.json document.
func ParseDetectorConfig(data []byte) (DetectorConfig, error) {
	var cfg DetectorConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DetectorConfig{}, err
	}
	return cfg, nil
}

// maxDetectUnits bounds how many TL headers a candidate's header read
// will walk before giving up, per spec §6.4's "first ~18 units".
const maxDetectUnits = 18

/*
HeaderReader reads up to maxUnits units of a candidate's header,
decoded under that candidate's own grammar (tr), into a [DocNode] tree
for variable extraction. It is supplied by the caller so BER and XML
inputs (or any other future source) share the same [Detect] core.
*/
type HeaderReader func(tr *Translator, maxUnits int) (*DocNode, error)

/*
Detect walks cfg's definitions in order, reading the header under each
candidate's own translator and testing whether every declared variable
resolves to a non-empty, filename-safe value. The first definition that
fully resolves wins; ParseError is returned if none does.
*/
func Detect(cfg DetectorConfig, read HeaderReader, translatorFor func(grammars []string) *Translator) (DetectResult, error) {
	for _, def := range cfg.Definitions {
		tr := translatorFor(def.InitialGrammars)
		tree, err := read(tr, maxDetectUnits)
		if err != nil {
			continue
		}

		vars, ok := extractVariables(tree, def.Variables)
		if !ok {
			logDetectReject(def.Name, "a declared variable did not resolve")
			continue
		}

		return assignResult(def, vars)
	}
	return DetectResult{}, newErr(ParseError, 0, "could not autodetect type of input")
}

func extractVariables(tree *DocNode, vars []Variable) (map[string]string, bool) {
	out := make(map[string]string, len(vars))
	for _, v := range vars {
		p, err := ParsePath(v.Path)
		if err != nil {
			return nil, false
		}
		matches := p.Select(tree)
		if len(matches) == 0 {
			return nil, false
		}
		val := string(matches[0].Content)
		if val == "" {
			return nil, false
		}
		if err := verifyFilenamePart(val); err != nil {
			return nil, false
		}
		out[v.Name] = val
	}
	return out, true
}

/*
verifyFilenamePart is the "conservative character filter" spec §6.4
requires before a detected value is interpolated into a filename:
only ASCII letters, digits, '.', '_' and '-' pass.
*/
func verifyFilenamePart(s string) error {
	if s == "" {
		return newErr(ArgumentError, 0, "detected value is empty")
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '.', c == '_', c == '-':
		default:
			return newErr(ArgumentError, 0, "detected value contains an unsafe character: "+s)
		}
	}
	return nil
}

func substituteVars(s string, vars map[string]string) string {
	for k, v := range vars {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}

func substituteVarsAll(list []string, vars map[string]string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = substituteVars(s, vars)
	}
	return out
}

func assignResult(def Definition, vars map[string]string) (DetectResult, error) {
	r := DetectResult{
		Name:                def.Name,
		LongName:            def.LongName,
		ASNFilenames:        substituteVarsAll(def.ResultingGrammars, vars),
		ConstraintFilenames: substituteVarsAll(def.ResultingConstraints, vars),
		PPFilename:          substituteVars(def.ResultingPP, vars),
	}
	if maj, ok := vars["major"]; ok {
		n, err := atoi(maj)
		if err != nil {
			return DetectResult{}, newErr(ArgumentError, 0, "bad major variable value "+maj)
		}
		r.Major = n
	}
	if min, ok := vars["minor"]; ok {
		n, err := atoi(min)
		if err != nil {
			return DetectResult{}, newErr(ArgumentError, 0, "bad minor variable value "+min)
		}
		r.Minor = n
	}
	return r, nil
}

func buildTreeLimited(vr *VerticalReader, tr *Translator, maxUnits int) (*DocNode, error) {
	root := &DocNode{Unit: Unit{Shape: Constructed}}
	stack := []*DocNode{root}

	for i := 0; i < maxUnits; i++ {
		tlc, err := vr.Next()
		if err != nil {
			break
		}

		if tlc.IsEOC() {
			if len(stack) < 2 {
				break
			}
			stack = stack[:len(stack)-1]
			continue
		}

		name := elementName(tr, tlc.Unit)
		parent := stack[len(stack)-1]

		if tlc.Shape == Constructed {
			node := &DocNode{Name: name, Unit: tlc.Unit, Parent: parent}
			if tlc.IsIndefinite {
				node.Attrs = map[string]string{"indefinite": "true"}
			}
			parent.Children = append(parent.Children, node)
			if tlc.IsIndefinite || tlc.Length > 0 {
				stack = append(stack, node)
			}
		} else {
			content := append([]byte(nil), tlc.Begin[tlc.TLSize:tlc.TLSize+tlc.Length]...)
			leaf := &DocNode{Name: name, Unit: tlc.Unit, Content: content, Parent: parent}
			parent.Children = append(parent.Children, leaf)
		}

		// mirrors BuildTree: a definite constructed frame completes
		// silently in vr, so pop stack entries its height no longer backs.
		for len(stack)-1 > vr.Height() {
			stack = stack[:len(stack)-1]
		}
	}
	return root, nil
}

/*
DetectBER runs [Detect] over a fully buffered BER header: each
candidate gets a fresh [VerticalReader] over the same bytes (mirroring
a random-access re-read of a memory-mapped file), so earlier candidates
never consume bytes later ones need.
*/
func DetectBER(header []byte, cfg DetectorConfig, translatorFor func(grammars []string) *Translator) (DetectResult, error) {
	return Detect(cfg, func(tr *Translator, maxUnits int) (*DocNode, error) {
		vr := NewVerticalReader(NewMemSource(header))
		return buildTreeLimited(vr, tr, maxUnits)
	}, translatorFor)
}
