package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gsauthof/xfsx-go"
)

// editOp is one parsed -c/--command invocation. name is one of
// "remove", "replace", "add", "set_att"/"set-att", "insert"; args holds
// whatever extra positional values that operation needs beyond the
// path.
type editOp struct {
	name string
	path string
	args []string
}

// editOpFlag is the -c/--command repeatable flag's pflag.Value. Its
// value is "NAME PATH ARG...", split on whitespace — cobra/pflag have
// no flag type for an option with indefinite positional arity (the
// original tool reads a variable argc straight off argv per command
// name), so a quoted single string is the pragmatic stand-in.
type editOpFlag struct {
	ops *[]editOp
}

func (f *editOpFlag) String() string { return "" }
func (f *editOpFlag) Type() string   { return "stringArray" }

func (f *editOpFlag) Set(v string) error {
	fields := strings.Fields(v)
	if len(fields) < 2 {
		return fmt.Errorf("--command requires at least a NAME and a PATH")
	}
	*f.ops = append(*f.ops, editOp{name: fields[0], path: fields[1], args: fields[2:]})
	return nil
}

func applyEditOp(root *xfsx.DocNode, op editOp, opts xfsx.BERWriterOptions) error {
	switch op.name {
	case "remove":
		return xfsx.Remove(root, op.path)
	case "replace":
		if len(op.args) < 2 {
			return fmt.Errorf("replace requires PATH REGEX SUBST")
		}
		return xfsx.Replace(root, op.path, op.args[0], op.args[1])
	case "add":
		if len(op.args) < 2 {
			return fmt.Errorf("add requires PATH SPEC CONTENT")
		}
		return xfsx.Add(root, op.path, op.args[0], op.args[1])
	case "set_att", "set-att":
		if len(op.args) < 2 {
			return fmt.Errorf("set_att requires PATH NAME VALUE")
		}
		return xfsx.SetAtt(root, op.path, op.args[0], op.args[1])
	case "insert":
		if len(op.args) < 2 {
			return fmt.Errorf("insert requires PATH SNIPPET POSITION")
		}
		pos, err := strconv.Atoi(op.args[1])
		if err != nil {
			return err
		}
		snippet := op.args[0]
		if strings.HasPrefix(snippet, "@") {
			data, err := os.ReadFile(snippet[1:])
			if err != nil {
				return err
			}
			snippet = string(data)
		}
		return xfsx.Insert(root, op.path, snippet, pos, opts)
	default:
		return fmt.Errorf("unknown edit operation %s", op.name)
	}
}

func newEditCmd() *cobra.Command {
	var output string
	var ops []editOp

	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Apply remove/replace/add/set_att/insert operations and re-serialize to BER",
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

			vr := xfsx.NewVerticalReader(src)
			root, err := xfsx.BuildTree(vr, g.Translator)
			if err != nil {
				return err
			}

			for _, op := range ops {
				if err := applyEditOp(root, op, g.writerOpts()); err != nil {
					return err
				}
			}

			w, closeOut, err := openOutput(output)
			if err != nil {
				return err
			}
			_, err = xfsx.ToBER(root, w)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}
	addOutputFlag(cmd, &output)
	cmd.Flags().VarP(&editOpFlag{ops: &ops}, "command", "c", "NAME PATH ARGS... (remove|replace|add|set_att|insert)")
	return cmd
}
