// Package rgen generates a navrouter route table from a TOML manifest.
//
// A manifest looks like:
//
//	package = "app"
//	func = "generatedRoutes"
//
//	[[route]]
//	path = "/"
//	redirect = "/components"
//
//	[[route]]
//	name = "ComponentList"
//	path = "/components"
//	component = "componentListView"
//
// component names a package level identifier in the target package.
package rgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/kfpstudio/navrouter"
)

// DefaultOutputName is the file written next to the manifest when no output is set.
const DefaultOutputName = "0_routes_gen.go"

// DefaultFuncName is the name of the generated function when the manifest has none.
const DefaultFuncName = "generatedRoutes"

// Manifest is the decoded route manifest.
type Manifest struct {
	Package string          `toml:"package"`
	Func    string          `toml:"func"`
	Routes  []ManifestRoute `toml:"route"`
}

// ManifestRoute is one [[route]] entry.
type ManifestRoute struct {
	Name      string `toml:"name"`
	Path      string `toml:"path"`
	Component string `toml:"component"`
	Redirect  string `toml:"redirect"`
}

// ParseManifest decodes and checks a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("unknown key %q", undec[0].String())
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Check validates identifiers and the resulting route table.
func (m *Manifest) Check() error {

	var errs []error

	if m.Package != "" && !token.IsIdentifier(m.Package) {
		errs = append(errs, fmt.Errorf("package %q is not an identifier", m.Package))
	}
	if m.Func != "" && !token.IsIdentifier(m.Func) {
		errs = append(errs, fmt.Errorf("func %q is not an identifier", m.Func))
	}
	for i, r := range m.Routes {
		if r.Component != "" && !token.IsIdentifier(r.Component) {
			errs = append(errs, fmt.Errorf("route %d: component %q is not an identifier", i, r.Component))
		}
	}

	if err := m.Table().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Table returns the manifest as a route table with each Component being the
// identifier string, or nil for redirects.
func (m *Manifest) Table() navrouter.RouteTable {
	rt := make(navrouter.RouteTable, 0, len(m.Routes))
	for _, r := range m.Routes {
		rte := navrouter.Route{Path: r.Path, Name: r.Name, Redirect: r.Redirect}
		if r.Component != "" {
			rte.Component = r.Component
		}
		rt = append(rt, rte)
	}
	return rt
}

var fileTmpl = template.Must(template.New(DefaultOutputName).Parse(`// Code generated by navrouter/rgen. DO NOT EDIT.

package {{.Package}}

import "github.com/kfpstudio/navrouter"

// {{.Func}} returns the route table declared in the manifest.
func {{.Func}}() navrouter.RouteTable {
	return navrouter.RouteTable{
{{- range .Routes}}
		{Path: {{printf "%q" .Path}}
		{{- if .Name}}, Name: {{printf "%q" .Name}}{{end}}
		{{- if .Component}}, Component: {{.Component}}{{end}}
		{{- if .Redirect}}, Redirect: {{printf "%q" .Redirect}}{{end}}},
{{- end}}
	}
}
`))

// Render produces the formatted Go source for m.
func Render(m *Manifest) ([]byte, error) {

	if err := m.Check(); err != nil {
		return nil, err
	}

	data := *m
	if data.Package == "" {
		return nil, errors.New("rgen: package name not set")
	}
	if data.Func == "" {
		data.Func = DefaultFuncName
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, &data); err != nil {
		return nil, err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("rgen: formatting output: %w; source:\n%s", err, buf.Bytes())
	}
	return out, nil
}

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator reads a manifest file and writes the generated Go file.
type Generator struct {
	manifest    string // manifest file path
	output      string // output file path
	packageName string // overrides the manifest package
}

// SetManifest sets the manifest file to read.
func (g *Generator) SetManifest(p string) *Generator {
	g.manifest = p
	return g
}

// SetOutput sets the file to write.  If not set, DefaultOutputName in the
// manifest's directory is used.
func (g *Generator) SetOutput(p string) *Generator {
	g.output = p
	return g
}

// SetPackageName overrides the package name.  If neither this nor the manifest
// sets one, the base name of the output directory is used.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// Generate does the route generation and returns the path written.
func (g *Generator) Generate() (string, error) {

	if g.manifest == "" {
		return "", errors.New("rgen: manifest not set")
	}

	b, err := os.ReadFile(g.manifest)
	if err != nil {
		return "", err
	}

	m, err := ParseManifest(b)
	if err != nil {
		return "", fmt.Errorf("rgen: %s: %w", g.manifest, err)
	}

	out := g.output
	if out == "" {
		out = filepath.Join(filepath.Dir(g.manifest), DefaultOutputName)
	}
	out, err = filepath.Abs(out)
	if err != nil {
		return "", err
	}

	if g.packageName != "" {
		m.Package = g.packageName
	}
	if m.Package == "" {
		m.Package = filepath.Base(filepath.Dir(out))
	}

	src, err := Render(m)
	if err != nil {
		return "", fmt.Errorf("rgen: %s: %w", g.manifest, err)
	}

	if err := os.WriteFile(out, src, 0644); err != nil {
		return "", err
	}

	return out, nil
}
