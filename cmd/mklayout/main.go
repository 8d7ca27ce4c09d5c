//go:build !tinygo

// Command mklayout turns a YAML keypad layout into a Go table for firmware builds,
// which cannot read files at run time.
//
//	go run ./cmd/mklayout -in layouts/hex.yaml -out keypad/layout_board.go -default
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"keycalc/keypad"
)

var source = template.Must(template.New("layout").Parse(`// Code generated by mklayout from {{.Source}}; DO NOT EDIT.

package keypad

// {{.Var}} is the {{printf "%q" .Name}} keypad.
var {{.Var}} = MustLayout({{printf "%q" .Name}},
{{- range .Rows}}
	{{printf "%q" .}},
{{- end}}
)

func init() {
	if err := RegisterLayout({{.Var}}); err != nil {
		panic(err)
	}
{{- if .Default}}
	DefaultLayout = {{.Var}}
{{- end}}
}
`))

type params struct {
	Source  string
	Var     string
	Name    string
	Rows    []string
	Default bool
}

func main() {
	var inPath string
	var outPath string
	var varName string
	var makeDefault bool
	flag.StringVar(&inPath, "in", "", "YAML layout file.")
	flag.StringVar(&outPath, "out", "", "Output Go file (stdout when empty).")
	flag.StringVar(&varName, "var", "", "Variable name (default Layout + layout name).")
	flag.BoolVar(&makeDefault, "default", false, "Make the layout the firmware default.")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required")
		os.Exit(2)
	}

	if err := run(inPath, outPath, varName, makeDefault); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, varName string, makeDefault bool) error {
	l, err := keypad.LoadLayout(inPath)
	if err != nil {
		return err
	}
	if _, err := keypad.LayoutByName(l.Name); err == nil {
		return fmt.Errorf("layout %q clashes with a built-in layout", l.Name)
	}

	src, err := generate(l, filepath.Base(inPath), varName, makeDefault)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", outPath, err)
	}
	return nil
}

func generate(l keypad.Layout, sourceName, varName string, makeDefault bool) ([]byte, error) {
	if varName == "" {
		varName = "Layout" + exportName(l.Name)
	}
	if !isIdent(varName) {
		return nil, fmt.Errorf("invalid variable name %q", varName)
	}

	var buf bytes.Buffer
	if err := source.Execute(&buf, params{
		Source:  sourceName,
		Var:     varName,
		Name:    l.Name,
		Rows:    l.Rows(),
		Default: makeDefault,
	}); err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

// exportName turns "hex-pad" into "HexPad".
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
