package main

import (
	"github.com/spf13/cobra"
)

// newSearchCmd mirrors "search" in the original tool surface: one or
// more path patterns, each a PATH accepted by xfsx.ParsePath — a bare
// positional pattern plus any number of repeated -e flags — run in
// turn against the same input and accumulated into one output stream.
// Each pattern reopens the input, since the vertical reader consumes
// it as it scans.
func newSearchCmd() *cobra.Command {
	var output string
	var extra []string
	cmd := &cobra.Command{
		Use:   "search XPATH [FILE]",
		Short: "Project only the elements matched by one or more path patterns to XML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := append([]string{args[0]}, extra...)
			input := "-"
			if len(args) > 1 {
				input = args[1]
			}

			w, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			for _, xpath := range patterns {
				if err = writeXMLPatternTo(input, w, xpath); err != nil {
					break
				}
			}
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	addOutputFlag(cmd, &output)
	cmd.Flags().StringArrayVarP(&extra, "pattern", "e", nil, "additional pattern to search for (repeatable)")
	return cmd
}
