package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-facet/facet/cmd/facet/internal/config"
	"github.com/go-facet/facet/cmd/facet/internal/manifest"
)

func init() {
	validateCmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Validate a component manifest",
		Long: `Validate a component manifest against the runtime's definition rules:
tag names, extension targets, and attribute descriptors, including
responsive breakpoint-list defaults.

Without an argument the manifest is located through facet.yaml in the
enclosing Go module (default: components.yaml).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		resolved, err := config.Resolve(root)
		if err != nil {
			return err
		}
		path = resolved.Manifest
	}

	logger.Debug("validating manifest", "path", path)
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		logger.Error("manifest is invalid", "path", path)
		return err
	}

	fmt.Printf("%s: %d component(s) OK\n", path, len(m.Components))
	return nil
}
