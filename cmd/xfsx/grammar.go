package main

/*
grammar.go resolves the "--asn"/"--asn-path"/"--asn-cfg" flags (spec
§6.3) into the Translator/Dereferencer/Typifier the core consults.
Parsing an actual ASN.1 grammar is explicitly out of scope for the
core (spec §1 lists "the ASN.1 grammar parser" among the external
collaborators, and names "a general-purpose ASN.1 compiler" as a
non-goal) — this CLI's stand-in is a small JSON sidecar naming the
symbols a particular capture format needs, which is enough to drive
every scenario in spec §8 without attempting real ASN.1 syntax.
*/

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/gsauthof/xfsx-go"
)

// GrammarEntry names one symbol: its tag coordinates, its element
// name, and optionally how its content should be typed/dereferenced.
type GrammarEntry struct {
	Name    string `json:"name"`
	Shape   string `json:"shape"`
	Class   string `json:"class"`
	Tag     uint32 `json:"tag"`
	Type    string `json:"type,omitempty"`
	DerefTo *struct {
		Class string `json:"class"`
		Tag   uint32 `json:"tag"`
	} `json:"dereference_to,omitempty"`
}

// GrammarConfig is the top-level JSON document read from --asn-cfg.
type GrammarConfig struct {
	Entries []GrammarEntry `json:"entries"`
}

// grammar bundles the three maps the core consults together, so
// commands can pass around one value instead of three nil-checked
// pointers.
type grammar struct {
	Translator   *xfsx.Translator
	Dereferencer *xfsx.Dereferencer
	Typifier     *xfsx.Typifier
}

func (g grammar) writerOpts() xfsx.BERWriterOptions {
	return xfsx.BERWriterOptions{Translator: g.Translator, Dereferencer: g.Dereferencer, Typifier: g.Typifier}
}

func loadGrammar(path string) (grammar, error) {
	if path == "" {
		return grammar{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar{}, err
	}
	var cfg GrammarConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return grammar{}, err
	}

	tr := xfsx.NewTranslator()
	deref := xfsx.NewDereferencer()
	typ := xfsx.NewTypifier()

	for _, e := range cfg.Entries {
		shape, err := xfsx.ParseShape(e.Shape)
		if err != nil {
			return grammar{}, err
		}
		class, err := xfsx.ParseClass(e.Class)
		if err != nil {
			return grammar{}, err
		}
		tr.Add(shape, class, e.Tag, e.Name)

		switch strings.ToUpper(e.Type) {
		case "INT_64":
			typ.Set(class, e.Tag, xfsx.TypeInt64)
		case "BCD":
			typ.Set(class, e.Tag, xfsx.TypeBCD)
		case "STRING":
			typ.Set(class, e.Tag, xfsx.TypeString)
		}

		if e.DerefTo != nil {
			targetClass, err := xfsx.ParseClass(e.DerefTo.Class)
			if err != nil {
				return grammar{}, err
			}
			deref.Add(class, []uint32{e.Tag}, targetClass, e.DerefTo.Tag)
		}
	}

	return grammar{Translator: tr, Dereferencer: deref, Typifier: typ}, nil
}

// defaultASNSearchPath mirrors the teacher's detector search path
// construction: ASN1_PATH (colon-separated) first, then
// "$XDG_CONFIG_HOME/xfsx/asn1" or, without XDG_CONFIG_HOME,
// "$HOME/.config/xfsx/asn1", then
// "/etc/xfsx/asn1". Resolving this is a CLI concern per spec §9's
// "Global state is confined to configuration look-ups" note — the
// core never reads an environment variable itself.
func defaultASNSearchPath() []string {
	var dirs []string
	if v := os.Getenv("ASN1_PATH"); v != "" {
		dirs = append(dirs, strings.Split(v, ":")...)
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		dirs = append(dirs, filepath.Join(v, "xfsx", "asn1"))
	} else if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "xfsx", "asn1"))
	}
	dirs = append(dirs, "/etc/xfsx/asn1")
	return dirs
}

// resolveInSearchPath returns the first existing candidate/name join
// across dirs, or "" if none exists.
func resolveInSearchPath(dirs []string, name string) string {
	for _, d := range dirs {
		p := filepath.Join(d, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadDetectorConfig(path string, searchPath []string) (xfsx.DetectorConfig, error) {
	if path == "" {
		path = resolveInSearchPath(searchPath, "detector.json")
	}
	if path == "" {
		return xfsx.DetectorConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return xfsx.DetectorConfig{}, err
	}
	return xfsx.ParseDetectorConfig(data)
}
