//go:build !tinygo

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keycalc/keypad"
)

func TestGenerate(t *testing.T) {
	l := keypad.MustLayout("hex-pad", "12", "3=")
	src, err := generate(l, "hex.yaml", "", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got := string(src)
	for _, want := range []string{
		"// Code generated by mklayout from hex.yaml; DO NOT EDIT.",
		"package keypad",
		`var LayoutHexPad = MustLayout("hex-pad",`,
		"\t\"12\",\n\t\"3=\",\n)",
		"RegisterLayout(LayoutHexPad)",
		"DefaultLayout = LayoutHexPad",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("generated source missing %q:\n%s", want, got)
		}
	}

	src, err = generate(l, "hex.yaml", "LayoutBoard", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(string(src), "DefaultLayout") {
		t.Fatal("DefaultLayout set without -default")
	}

	if _, err := generate(l, "hex.yaml", "1bad", false); err == nil {
		t.Fatal("generate with a bad variable name error = nil")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pad.yaml")
	out := filepath.Join(dir, "layout_pad.go")
	if err := os.WriteFile(in, []byte("name: pad\nrows:\n  - \"12\"\n  - \"c=\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(in, out, "", false); err != nil {
		t.Fatalf("run: %v", err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), `"C="`) {
		t.Fatalf("clear key not normalised:\n%s", src)
	}

	clash := filepath.Join(dir, "clash.yaml")
	if err := os.WriteFile(clash, []byte("name: phone\nrows: [\"12\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(clash, out, "", false); err == nil {
		t.Fatal("run with a built-in name error = nil")
	}
}

func TestExportName(t *testing.T) {
	tests := map[string]string{
		"hex-pad":  "HexPad",
		"phone":    "Phone",
		"my pad 2": "MyPad2",
	}
	for in, want := range tests {
		if got := exportName(in); got != want {
			t.Fatalf("exportName(%q) = %q, want %q", in, got, want)
		}
	}
}
