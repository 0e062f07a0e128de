// Command gen writes the engine Type enum and the engines.New factory from
// engineTable. Run it through go generate in engines/types.
package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

// engine describes one expression engine.
type engine struct {
	// Name is the Go identifier of the Type constant.
	Name string
	// Value is the name accepted by types.Parse and the CLI --engine flag.
	Value string
	// Package is the directory under engines/ whose New(handler) builds it.
	Package string
	// Docs is the upstream project page.
	Docs string
	// Default marks the engine used when none is configured.
	Default bool
}

var engineTable = []engine{
	{Name: "Starlark", Value: "starlark", Package: "starlark", Docs: "https://github.com/google/starlark-go", Default: true},
	{Name: "Expr", Value: "expr", Package: "expr", Docs: "https://github.com/expr-lang/expr"},
}

// targets maps each template to its output, relative to engines/types.
var targets = []struct {
	template string
	output   string
}{
	{template: "type.go.tmpl", output: "type.go"},
	{template: "type_test.go.tmpl", output: "type_test.go"},
	{template: "new.go.tmpl", output: "../new.go"},
	{template: "new_test.go.tmpl", output: "../new_test.go"},
}

type view struct {
	Types   []engine
	Default engine
}

// newView checks the table: values are unique and lower case, and exactly
// one engine is the default.
func newView(table []engine) (view, error) {
	v := view{Types: table}
	seen := make(map[string]bool, len(table))
	defaults := 0
	for _, e := range table {
		if e.Value == "" || e.Value != strings.ToLower(e.Value) {
			return view{}, fmt.Errorf("engine %s: value %q must be non-empty lower case", e.Name, e.Value)
		}
		if seen[e.Value] {
			return view{}, fmt.Errorf("engine %s: duplicate value %q", e.Name, e.Value)
		}
		seen[e.Value] = true
		if e.Default {
			v.Default = e
			defaults++
		}
	}
	if defaults != 1 {
		return view{}, fmt.Errorf("want exactly one default engine, got %d", defaults)
	}
	return v, nil
}

func render(name string, v view) ([]byte, error) {
	t, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func main() {
	dir := flag.String("dir", ".", "path of the engines/types package")
	flag.Parse()

	v, err := newView(engineTable)
	if err != nil {
		log.Fatal(err)
	}

	for _, target := range targets {
		out, err := render(target.template, v)
		if err != nil {
			log.Fatalf("%s: %v", target.template, err)
		}
		path := filepath.Join(*dir, target.output)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Generated: %s\n", path)
	}
}
