// docxkit is a thin command-line consumer of the extraction library:
// listing archive parts, dumping the parsed model or its statistics, and
// replacing a single part in place.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wudi/docxkit/docx"
	"github.com/wudi/docxkit/model"
	"github.com/wudi/docxkit/observability"
	"github.com/wudi/docxkit/opc"
)

type rootFlags struct {
	limitsFile string
	verbose    bool
}

// limitsConfig is the YAML shape of a limits override file.
type limitsConfig struct {
	MaxEntrySize        int64   `yaml:"max_entry_size"`
	MaxArchiveSize      int64   `yaml:"max_archive_size"`
	MaxCompressionRatio float64 `yaml:"max_compression_ratio"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "docxkit: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "docxkit",
		Short:         "Inspect and modify word-processing archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.limitsFile, "limits", "", "YAML file overriding archive security limits")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log pipeline events to stderr")

	root.AddCommand(newPartsCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newInspectCmd(flags))
	root.AddCommand(newReplaceCmd())
	return root
}

func (f *rootFlags) parseOptions() ([]docx.Option, error) {
	var opts []docx.Option
	if f.limitsFile != "" {
		limits, err := loadLimits(f.limitsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, docx.WithLimits(limits))
	}
	if f.verbose {
		opts = append(opts, docx.WithLogger(observability.NewWriterLogger(os.Stderr, observability.LevelDebug)))
	}
	return opts, nil
}

func loadLimits(path string) (opc.Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return opc.Limits{}, fmt.Errorf("read limits file: %w", err)
	}
	var cfg limitsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return opc.Limits{}, fmt.Errorf("parse limits file: %w", err)
	}
	return opc.Limits{
		MaxEntrySize:        cfg.MaxEntrySize,
		MaxArchiveSize:      cfg.MaxArchiveSize,
		MaxCompressionRatio: cfg.MaxCompressionRatio,
	}, nil
}

func newPartsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parts <file>",
		Short: "List archive entries in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			names, err := opc.List(buf)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Parse a document and print its statistics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseFile(cmd.Context(), args[0], flags, docx.WithoutMedia())
			if err != nil {
				return err
			}
			return printJSON(cmd, docx.Stats(doc))
		},
	}
}

func newInspectCmd(flags *rootFlags) *cobra.Command {
	var withMedia bool
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a document and dump its model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []docx.Option
			if !withMedia {
				extra = append(extra, docx.WithoutMedia())
			}
			doc, err := parseFile(cmd.Context(), args[0], flags, extra...)
			if err != nil {
				return err
			}
			return printJSON(cmd, doc)
		},
	}
	cmd.Flags().BoolVar(&withMedia, "media", false, "include base64-encoded media entries")
	return cmd
}

func newReplaceCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "replace <file> <part> <content-file>",
		Short: "Replace one part's content, preserving every other entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			content, err := os.ReadFile(args[2])
			if err != nil {
				return err
			}
			result, err := docx.ReplacePart(buf, args[1], content)
			if err != nil {
				return err
			}
			if out == "" {
				out = args[0]
			}
			return os.WriteFile(out, result, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (defaults to overwriting the input)")
	return cmd
}

func parseFile(ctx context.Context, path string, flags *rootFlags, extra ...docx.Option) (*model.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts, err := flags.parseOptions()
	if err != nil {
		return nil, err
	}
	return docx.Parse(ctx, buf, append(opts, extra...)...)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
