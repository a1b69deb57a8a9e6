package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gsauthof/xfsx-go"
)

func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "output", "o", "-", "output file ('-' for stdout)")
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func newWriteIDCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "write-id [FILE]",
		Short: "Identity copy: rewrite BER input verbatim",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeIn, err := openInputSource(inputArg(args))
			if err != nil {
				return err
			}
			defer closeIn()
			w, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			_, err = xfsx.TransformIdentity(src, w)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newWriteDefCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "write-def [FILE]",
		Short: "Rewrite every constructed unit to minimal definite-length form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeIn, err := openInputSource(inputArg(args))
			if err != nil {
				return err
			}
			defer closeIn()
			w, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			_, err = xfsx.TransformDefinite(src, w)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newWriteIndefCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "write-indef [FILE]",
		Short: "Rewrite every constructed unit to indefinite-length form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeIn, err := openInputSource(inputArg(args))
			if err != nil {
				return err
			}
			defer closeIn()
			w, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			_, err = xfsx.TransformIndefinite(src, w)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newWriteXMLCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "write-xml [FILE]",
		Short: "Project BER input to its XML representation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWriteXML(inputArg(args), output, "")
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newWriteBERCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "write-ber [FILE]",
		Short: "Serialize an XML document back to BER",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeIn, err := openInputSource(inputArg(args))
			if err != nil {
				return err
			}
			defer closeIn()
			g, err := loadOptsGrammar()
			if err != nil {
				return err
			}
			w, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			_, err = xfsx.WriteBER(src, w, g.writerOpts())
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

// runWriteXML backs write-xml: it opens output, projects input through
// writeXMLPatternTo (which search also calls directly, once per
// pattern) and closes output.
func runWriteXML(input, output, xpath string) error {
	w, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	err = writeXMLPatternTo(input, w, xpath)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

// writeXMLPatternTo projects input's elements matched by xpath (or
// every element, if xpath is empty) into an already-open writer,
// without closing it — used by search to run several patterns against
// freshly reopened input and accumulate them into one output stream.
func writeXMLPatternTo(input string, w io.Writer, xpath string) error {
	src, closeIn, err := openInputSource(input)
	if err != nil {
		return err
	}
	defer closeIn()

	g, err := loadOptsGrammar()
	if err != nil {
		return err
	}

	var path *xfsx.Path
	if xpath != "" {
		path, err = xfsx.ParsePath(xpath)
		if err != nil {
			return err
		}
	}

	vr := xfsx.NewVerticalReader(src)
	xw := xfsx.NewXMLWriter(w, writerOptsFromGlobal(g, path))
	_, err = xw.Write(vr)
	return err
}
