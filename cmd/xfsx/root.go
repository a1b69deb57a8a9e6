package main

/*
root.go wires the thin CLI collaborator spec §6.3 describes: a cobra
root command carrying the options that affect the core
(--indent, --hex, --tl, --t_size, --length, --off, --skip, --first,
--count, --asn*, --no-detect, --xsd) plus --log-format for the
operational logger (spec §10.2). Each sub-command reads these through
the shared globalOpts rather than redeclaring its own flag set.
*/

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gsauthof/xfsx-go"
)

type globalOpts struct {
	indent    string
	showTag   bool
	showClass bool
	showHex   bool
	showTL    bool
	showT     bool
	showLen   bool
	showOff   bool
	showRank  bool

	skip  int64
	first bool
	count int

	asnFile   string
	asnPath   string
	asnCfg    string
	noDetect  bool
	xsdFile   string

	logFormat string
}

var opts globalOpts

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xfsx",
		Short: "Read, write, search and edit BER-TLV encoded ASN.1 payloads",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.logFormat)
			if opts.noDetect {
				// Detect/DetectBER (see detect.go) are not wired into any
				// command's RunE yet, so auto-detection never runs either
				// way; --no-detect is accepted so scripts built around the
				// full flag surface don't break.
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: --no-detect is accepted but auto-detection is not performed by any command")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.indent, "indent", "", "per-depth indent string for write-xml/search output")
	flags.BoolVar(&opts.showTag, "tag", false, "show the tag attribute")
	flags.BoolVar(&opts.showClass, "class", false, "show the class attribute")
	flags.BoolVar(&opts.showHex, "hex", false, "show a hex dump of each unit's own bytes")
	flags.BoolVar(&opts.showTL, "tl", false, "show the tl (header size) attribute")
	flags.BoolVar(&opts.showT, "t_size", false, "show the t (tag size) attribute")
	flags.BoolVar(&opts.showLen, "length", false, "show the length attribute")
	flags.BoolVar(&opts.showOff, "off", false, "show the byte offset attribute")
	flags.BoolVar(&opts.showRank, "rank", false, "show the 1-based sibling rank attribute")

	flags.Int64Var(&opts.skip, "skip", 0, "skip this many raw bytes before parsing begins")
	flags.BoolVar(&opts.first, "first", false, "stop after the first top-level element")
	flags.IntVar(&opts.count, "count", 0, "stop after N top-level elements (0 = unlimited)")

	flags.StringVar(&opts.asnFile, "asn", "", "ASN.1 grammar input (accepted, not compiled: see DESIGN.md)")
	flags.StringVar(&opts.asnPath, "asn-path", "", "directory to search for grammar/detector configuration")
	flags.StringVar(&opts.asnCfg, "asn-cfg", "", "JSON grammar sidecar naming tag/name/type bindings")
	flags.BoolVar(&opts.noDetect, "no-detect", false, "disable format auto-detection")
	flags.StringVar(&opts.xsdFile, "xsd", "", "XSD schema for validate (external validator, not bundled)")

	flags.StringVar(&opts.logFormat, "log-format", "text", "operational log format: text or json")

	root.AddCommand(newWriteIDCmd())
	root.AddCommand(newWriteDefCmd())
	root.AddCommand(newWriteIndefCmd())
	root.AddCommand(newWriteXMLCmd())
	root.AddCommand(newWriteBERCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newEditCmd())
	return root
}

func configureLogging(format string) {
	l := logrus.New()
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	xfsx.SetLogger(l)
}

func searchPath() []string {
	if opts.asnPath != "" {
		return append([]string{opts.asnPath}, defaultASNSearchPath()...)
	}
	return defaultASNSearchPath()
}

// loadOptsGrammar resolves --asn-cfg into a grammar. --asn and
// --asn-path are accepted (spec §6.3 names them) but have no effect on
// their own: compiling an actual ASN.1 grammar file is out of scope
// (spec §1's external-collaborator list), so only the JSON sidecar
// format --asn-cfg points at is understood here.
func loadOptsGrammar() (grammar, error) {
	if opts.asnCfg == "" {
		return grammar{}, nil
	}
	return loadGrammar(opts.asnCfg)
}

func writerOptsFromGlobal(g grammar, path *xfsx.Path) xfsx.WriterOptions {
	return xfsx.WriterOptions{
		Indent:         opts.indent,
		ShowTag:        opts.showTag,
		ShowClass:      opts.showClass,
		ShowTL:         opts.showTL,
		ShowT:          opts.showT,
		ShowLength:     opts.showLen,
		ShowOffset:     opts.showOff,
		ShowHex:        opts.showHex,
		ShowRank:       opts.showRank,
		Path:           path,
		Translator:     g.Translator,
		Typifier:       g.Typifier,
		StopAfterFirst: opts.first,
		Count:          opts.count,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
