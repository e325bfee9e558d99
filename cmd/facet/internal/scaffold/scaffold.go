// Package scaffold creates new project directories for the facet CLI.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// Data parameterizes the generated files.
type Data struct {
	ProjectName string
	ModulePath  string
}

type file struct {
	name string
	tmpl string
}

var files = []file{
	{"go.mod", goModTmpl},
	{"facet.yaml", facetYamlTmpl},
	{"components.yaml", componentsYamlTmpl},
	{"app.yaml", appYamlTmpl},
	{"main.go", mainGoTmpl},
}

// Project writes a starter project into dir. dir must not already contain
// any of the generated files.
func Project(dir string, data Data) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		t, err := template.New(f.name).Parse(f.tmpl)
		if err != nil {
			return fmt.Errorf("internal template error in %s: %w", f.name, err)
		}
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := t.Execute(out, data); err != nil {
			out.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

const goModTmpl = `module {{.ModulePath}}

go 1.24
`

const facetYamlTmpl = `project:
  name: {{.ProjectName}}
components:
  manifest: components.yaml
`

const componentsYamlTmpl = `components:
  - tag: x-greeting
    extends: div
    attributes:
      - name: who
        kind: string
        default: world
`

const appYamlTmpl = `tag: main
children:
  - tag: x-greeting
    attributes:
      id: hello
      who: "{{.ProjectName}}"
`

const mainGoTmpl = `package main

import (
	"fmt"
	"os"

	"github.com/go-facet/facet/pkg/attr"
	"github.com/go-facet/facet/pkg/compose"
	"github.com/go-facet/facet/pkg/host"
)

func main() {
	compose.MustCompose("div", "x-greeting", func(surface *compose.Surface, base compose.Base) {
		surface.Attribute("who", attr.Options{Kind: attr.String, Default: "world"})
		surface.OnCreated(func(self *compose.Instance) {
			fmt.Printf("hello, %s\n", self.Get("who"))
		})
	})

	markup, err := os.ReadFile("app.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	doc := host.NewDocument(nil, nil)
	if err := doc.LoadMarkup(markup); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	doc.Mount()
	defer doc.Unmount()
}
`
