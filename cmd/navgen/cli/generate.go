package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan a TypeScript types file and write navigation.json and menu.yaml",
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()

			result, err := generate(v.GetString("types"), v.GetString("out"), v.GetString("base-path"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages in %d groups to %s\n", result.Pages, result.Groups, v.GetString("out"))
			return nil
		},
	}

	cmd.Flags().String("types", "types.ts", "TypeScript file declaring the sandbox request/response types")
	cmd.Flags().String("out", "./generated", "directory to write navigation.json and menu.yaml into")
	cmd.Flags().String("base-path", "/docs", "path prefix of the generated documentation pages")

	return cmd
}

type generateResult struct {
	Pages  int
	Groups int
}

func generate(typesFile, outDir, basePath string) (*generateResult, error) {
	src, err := os.ReadFile(typesFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read types file")
	}

	endpoints := ScanEndpoints(string(src))
	if len(endpoints) == 0 {
		return nil, errors.Errorf("no Request/Response types found in %s", typesFile)
	}
	pages := Pages(endpoints, basePath)
	menu := BuildMenu(pages)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to mkdir")
	}

	navJSON, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal navigation")
	}
	if err := os.WriteFile(filepath.Join(outDir, "navigation.json"), append(navJSON, '\n'), 0644); err != nil {
		return nil, errors.Wrap(err, "failed to write navigation.json")
	}

	menuYAML, err := yaml.Marshal(menu)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal menu")
	}
	if err := os.WriteFile(filepath.Join(outDir, "menu.yaml"), menuYAML, 0644); err != nil {
		return nil, errors.Wrap(err, "failed to write menu.yaml")
	}

	return &generateResult{Pages: len(pages), Groups: len(menu.Groups)}, nil
}
