package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/accu-org/accu-website/article"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <file.json>",
	Short: "Normalize exported article records to YAML metadata",
	Long: `Metadata reads article records exported from the old website as a JSON
array or object, fixes up months, journal names and HTML entities, and prints
the result with each article's page path. Known bad records can be fixed with
a YAML corrections file keyed by record id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetadata(args[0], viper.GetString("metadata.corrections"), cmd.OutOrStdout())
	},
}

func init() {
	metadataCmd.Flags().String("corrections", "", "YAML file of per-record corrections")
	bindFlags("metadata", metadataCmd.Flags(), "corrections")
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(name, correctionsFile string, out io.Writer) error {
	corrections, err := loadCorrections(correctionsFile)
	if err != nil {
		return err
	}

	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open records: %w", err)
	}
	defer f.Close()

	records, err := article.DecodeRecords(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	metadata, err := article.NewNormalizer(corrections).NormalizeAll(records)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return writeYAML(out, metadata)
}

func loadCorrections(name string) (map[string]article.Correction, error) {
	if name == "" {
		return nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open corrections: %w", err)
	}
	defer f.Close()

	corrections, err := article.LoadCorrections(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return corrections, nil
}
