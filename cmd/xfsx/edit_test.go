package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gsauthof/xfsx-go"
)

func TestEditOpFlagSetParsesFields(t *testing.T) {
	var ops []editOp
	f := &editOpFlag{ops: &ops}
	if err := f.Set("replace /p foo bar"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops", len(ops))
	}
	want := editOp{name: "replace", path: "/p", args: []string{"foo", "bar"}}
	if ops[0].name != want.name || ops[0].path != want.path || len(ops[0].args) != 2 ||
		ops[0].args[0] != "foo" || ops[0].args[1] != "bar" {
		t.Fatalf("got %+v, want %+v", ops[0], want)
	}
}

func TestEditOpFlagSetRejectsTooFewFields(t *testing.T) {
	var ops []editOp
	f := &editOpFlag{ops: &ops}
	if err := f.Set("remove"); err == nil {
		t.Fatal("expected an error when only a NAME is given")
	}
}

func TestApplyEditOpRemove(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x30, 0x04, 0x04, 0x02, 'a', 'b'})
	op := editOp{name: "remove", path: "/c/p"}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err != nil {
		t.Fatalf("applyEditOp: %v", err)
	}
	if len(root.Children[0].Children) != 0 {
		t.Fatalf("expected the matched child to be removed, got %+v", root.Children[0].Children)
	}
}

func TestApplyEditOpReplaceRequiresTwoArgs(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x04, 0x02, 'a', 'b'})
	op := editOp{name: "replace", path: "/p", args: []string{"only-one"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err == nil {
		t.Fatal("expected an error when replace is missing the SUBST argument")
	}
}

func TestApplyEditOpReplace(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x04, 0x03, 'f', 'o', 'o'})
	op := editOp{name: "replace", path: "/p", args: []string{"o+", "OO"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err != nil {
		t.Fatalf("applyEditOp: %v", err)
	}
	if string(root.Children[0].Content) != "fOO" {
		t.Fatalf("got %q", root.Children[0].Content)
	}
}

func TestApplyEditOpAddRequiresTwoArgs(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x30, 0x00})
	op := editOp{name: "add", path: "/c", args: []string{"+extra"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err == nil {
		t.Fatal("expected an error when add is missing the CONTENT argument")
	}
}

func TestApplyEditOpAdd(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x30, 0x00})
	op := editOp{name: "add", path: "/c", args: []string{"+extra", "hi"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err != nil {
		t.Fatalf("applyEditOp: %v", err)
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].Name != "extra" {
		t.Fatalf("got %+v", root.Children[0].Children)
	}
}

func TestApplyEditOpSetAttBothSpellings(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x04, 0x01, 'a'})
	for _, name := range []string{"set_att", "set-att"} {
		op := editOp{name: name, path: "/p", args: []string{"label", "imsi"}}
		if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err != nil {
			t.Fatalf("applyEditOp(%s): %v", name, err)
		}
		if root.Children[0].Attrs["label"] != "imsi" {
			t.Fatalf("got attrs=%+v", root.Children[0].Attrs)
		}
	}
}

func TestApplyEditOpInsertWithInlineSnippet(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x30, 0x04, 0x04, 0x02, 'a', 'b'})
	op := editOp{name: "insert", path: "/c", args: []string{"<p tag='5'>z</p>", "1"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err != nil {
		t.Fatalf("applyEditOp: %v", err)
	}
	outer := root.Children[0]
	if len(outer.Children) != 2 || string(outer.Children[0].Content) != "z" {
		t.Fatalf("got %+v", outer.Children)
	}
}

func TestApplyEditOpInsertWithFileSnippet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippet.xml")
	if err := os.WriteFile(path, []byte("<p tag='5'>z</p>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	root := buildTreeFromDocBytes(t, []byte{0x30, 0x04, 0x04, 0x02, 'a', 'b'})
	op := editOp{name: "insert", path: "/c", args: []string{"@" + path, "-1"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err != nil {
		t.Fatalf("applyEditOp: %v", err)
	}
	outer := root.Children[0]
	if len(outer.Children) != 2 || string(outer.Children[1].Content) != "z" {
		t.Fatalf("got %+v", outer.Children)
	}
}

func TestApplyEditOpInsertBadPositionIsError(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x30, 0x04, 0x04, 0x02, 'a', 'b'})
	op := editOp{name: "insert", path: "/c", args: []string{"<p tag='5'>z</p>", "not-a-number"}}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err == nil {
		t.Fatal("expected an error for a non-numeric insert position")
	}
}

func TestApplyEditOpUnknownNameIsError(t *testing.T) {
	root := buildTreeFromDocBytes(t, []byte{0x04, 0x01, 'a'})
	op := editOp{name: "bogus", path: "/p"}
	if err := applyEditOp(root, op, xfsx.BERWriterOptions{}); err == nil {
		t.Fatal("expected an error for an unknown edit operation name")
	}
}

func buildTreeFromDocBytes(t *testing.T, data []byte) *xfsx.DocNode {
	t.Helper()
	vr := xfsx.NewVerticalReader(xfsx.NewMemSource(data))
	root, err := xfsx.BuildTree(vr, nil)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	return root
}
