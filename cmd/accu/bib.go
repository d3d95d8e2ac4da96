package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/accu-org/accu-website/article"
	"github.com/accu-org/accu-website/bibliography"
)

var bibCmd = &cobra.Command{
	Use:   "bib <file>",
	Short: "Convert a legacy bibliography to YAML metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBib(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(bibCmd)
}

func runBib(name string, out io.Writer) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open bibliography: %w", err)
	}
	defer f.Close()

	records, err := bibliography.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return writeYAML(out, records)
}

// writeYAML writes article metadata as a YAML sequence.
func writeYAML(out io.Writer, records []article.Metadata) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
