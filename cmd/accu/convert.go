package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/accu-org/accu-website/article"
	"github.com/accu-org/accu-website/converter"
	"github.com/accu-org/accu-website/images"
	"github.com/accu-org/accu-website/markup"
)

// legacyHosts are the host names of the old website.
var legacyHosts = []string{"accu.org", "www.accu.org"}

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert journal articles to AsciiDoc",
	Long: `Convert reads HTML, XML or Markdown articles and writes an AsciiDoc page
for each one. The image rename plan of every article is printed and, with
--copy-images-from, carried out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOptions{
			Preset:         viper.GetString("convert.preset"),
			Dialect:        viper.GetString("convert.dialect"),
			Title:          viper.GetString("convert.title"),
			Author:         viper.GetString("convert.author"),
			Summary:        viper.GetString("convert.summary"),
			Bio:            viper.GetBool("convert.bio"),
			ImagesDir:      viper.GetString("convert.images-dir"),
			Format:         viper.GetString("convert.format"),
			SimplifyTables: viper.GetBool("convert.simplify-tables"),
			DetectLanguage: viper.GetBool("convert.detect-language"),
			Strict:         viper.GetBool("convert.strict"),
			OutDir:         viper.GetString("convert.out-dir"),
			CopyImagesFrom: viper.GetString("convert.copy-images-from"),
			Workers:        viper.GetInt("convert.workers"),
		}
		return runConvert(cmd.Context(), opts, args, cmd.OutOrStdout(), slog.Default())
	},
}

func init() {
	flags := convertCmd.Flags()
	flags.String("preset", presetLegacy, "preset: legacy|modern|html|strict")
	flags.String("dialect", "", "input dialect: html|xml|markdown (default: from file extension)")
	flags.String("title", "", "article title (default: first h1)")
	flags.String("author", "", "article author")
	flags.String("summary", "", "article summary (default: the Summary paragraph)")
	flags.Bool("bio", false, "append the author bio")
	flags.String("images-dir", "", "value of the :imagesdir: attribute (default: ..)")
	flags.String("format", "", "output body format: adoc|html")
	flags.Bool("simplify-tables", false, "render single listing or image tables as titled blocks")
	flags.Bool("detect-language", false, "add detected languages to source blocks")
	flags.Bool("strict", false, "fail on unresolvable legacy links")
	flags.String("out-dir", "", "directory for output files (default: next to each input)")
	flags.String("copy-images-from", "", "site root to copy planned images from")
	flags.Int("workers", 0, "parallel conversions (default: based on GOMAXPROCS)")

	bindFlags("convert", flags,
		"preset", "dialect", "title", "author", "summary", "bio", "images-dir", "format",
		"simplify-tables", "detect-language", "strict", "out-dir", "copy-images-from", "workers")

	rootCmd.AddCommand(convertCmd)
}

// convertedFile is the outcome of converting one input.
type convertedFile struct {
	input  string
	output string
	result converter.Result
}

// runConvert converts inputs in parallel and reports each output file and
// rename plan in input order.
func runConvert(ctx context.Context, opts convertOptions, inputs []string, out io.Writer, logger *slog.Logger) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	cfg.LinkHook = article.LegacyLinkHook(legacyHosts...)

	if _, err := converter.New(cfg); err != nil {
		return err
	}

	imagesDir := cfg.ImageDirectory
	if imagesDir == "" {
		imagesDir = ".."
	}

	workers := resolveWorkers(opts.Workers)
	logger.Debug("converting", slog.Int("files", len(inputs)), slog.Int("workers", workers))

	converted := make([]convertedFile, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			file, err := convertFile(ctx, cfg, opts, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			if opts.CopyImagesFrom != "" {
				dst := filepath.Join(filepath.Dir(file.output), filepath.FromSlash(imagesDir))
				if err := images.Copy(file.result.Renames, opts.CopyImagesFrom, dst); err != nil {
					return fmt.Errorf("%s: %w", input, err)
				}
			}
			converted[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, file := range converted {
		for _, w := range file.result.Warnings {
			logger.Warn(w.Message,
				slog.String("file", file.input),
				slog.String("type", string(w.Type)),
				slog.String("node", w.NodeType))
		}
		fmt.Fprintf(out, "%s -> %s\n", file.input, file.output)
		for _, rename := range file.result.Renames {
			fmt.Fprintf(out, "  %s -> %s\n", rename.Original, rename.New)
		}
	}
	return nil
}

// convertFile converts one input. Images of untitled articles are named after
// the input file so articles sharing an images directory do not collide.
func convertFile(ctx context.Context, cfg converter.Config, opts convertOptions, input string) (convertedFile, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return convertedFile{}, fmt.Errorf("read input: %w", err)
	}

	dialect, err := inputDialect(opts.Dialect, input)
	if err != nil {
		return convertedFile{}, err
	}
	root, err := markup.Parse(bytes.NewReader(data), dialect)
	if err != nil {
		return convertedFile{}, err
	}

	cfg.ImageStem = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	conv, err := converter.New(cfg)
	if err != nil {
		return convertedFile{}, err
	}
	result, err := conv.ConvertWithContext(ctx, root)
	if err != nil {
		return convertedFile{}, err
	}

	output := outputPath(input, opts.OutDir)
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return convertedFile{}, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(result.AsciiDoc), 0o644); err != nil {
		return convertedFile{}, fmt.Errorf("write output: %w", err)
	}
	return convertedFile{input: input, output: output, result: result}, nil
}

func inputDialect(name, input string) (markup.Dialect, error) {
	if name != "" {
		return markup.ParseDialect(name)
	}
	return markup.DialectFromPath(input)
}

// outputPath replaces the input extension with .adoc, in outDir if set.
func outputPath(input, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".adoc"
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// resolveWorkers returns the explicit worker count, or half of GOMAXPROCS
// clamped to [1, 8].
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return min(max(runtime.GOMAXPROCS(0)/2, 1), 8)
}
