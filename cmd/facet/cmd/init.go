package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"

	"github.com/go-facet/facet/cmd/facet/internal/scaffold"
)

func init() {
	initCmd := &cobra.Command{
		Use:   "init <directory> [module-path]",
		Short: "Create a new Facet project",
		Long: `Create a new Facet project in a new directory.

This command creates:
  - go.mod with the specified module path
  - facet.yaml project configuration
  - components.yaml with a starter component manifest
  - app.yaml starter markup and a main.go entry point

The project name is derived from the directory basename. The module path
defaults to the project name if not specified.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runInit,
	}
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by facet; use an absolute path or $HOME instead")
	}
	dir := filepath.Clean(raw)

	projectName := filepath.Base(dir)
	if projectName == "." || projectName == string(filepath.Separator) {
		return fmt.Errorf("cannot derive a project name from %q", raw)
	}

	modulePath := projectName
	if len(args) > 1 {
		modulePath = args[1]
	}
	if err := module.CheckPath(modulePath); err != nil && strings.Contains(modulePath, "/") {
		return fmt.Errorf("invalid module path %q: %w", modulePath, err)
	}

	logger.Debug("scaffolding project", "dir", dir, "module", modulePath)
	if err := scaffold.Project(dir, scaffold.Data{
		ProjectName: projectName,
		ModulePath:  modulePath,
	}); err != nil {
		return err
	}

	fmt.Printf("Created project %s in %s\n", projectName, dir)
	fmt.Println("\nNext steps:")
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  facet validate")
	fmt.Println("  go run .")
	return nil
}
