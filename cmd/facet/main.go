// Command facet is the CLI for Facet projects: scaffolding and static
// manifest validation.
package main

import "github.com/go-facet/facet/cmd/facet/cmd"

func main() {
	cmd.Execute()
}
