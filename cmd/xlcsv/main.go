// Package main provides the CLI entry point for xlcsv.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/xlcsv-go/pkg/logger"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/output"
)

type flags struct {
	delimiter  string
	noQuote    bool
	crlf       bool
	mode       string
	profile    bool
	arrow      bool
	compress   string
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	if err := newRootCmd(&flags{}, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(f *flags, stdout io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlcsv <input> [sheet]",
		Short: "Convert a spreadsheet sheet to CSV",
		Long: `xlcsv converts one worksheet of an Excel workbook into a delimited text
file next to the input (<name>.csv). The sheet is a zero-based index or a
sheet name and defaults to the first sheet.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args, f, stdout)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	fs := rootCmd.Flags()
	fs.StringVarP(&f.delimiter, "delimiter", "d", ",", "Field delimiter: ',' or ';'")
	fs.BoolVar(&f.noQuote, "no-quote", false, "Never quote fields")
	fs.BoolVar(&f.crlf, "crlf", false, "Terminate lines with CRLF instead of LF")
	fs.StringVar(&f.mode, "mode", string(xlcsv.ModeBuffered), "Ingestion mode: buffered, streaming")
	fs.BoolVar(&f.profile, "profile", false, "Print the per-column type profile (buffered mode)")
	fs.BoolVar(&f.arrow, "arrow", false, "Also write <name>.arrow (buffered mode)")
	fs.StringVar(&f.compress, "compress", string(output.CompressionNone), "Output compression: none, gzip, zstd")
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "console", "Log format: console, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, f *flags, stdout io.Writer) error {
	opts, logCfg, err := buildOptions(cmd, args, f)
	if err != nil {
		return err
	}

	if err := logger.Init(logCfg); err != nil {
		return xlcsv.NewConversionError(xlcsv.ErrInvalidArgument, "", err)
	}
	defer func() { _ = logger.Sync() }()
	opts.Logger = logger.Get()

	result, err := xlcsv.Convert(args[0], opts)
	if err != nil {
		return err
	}

	logger.Get().Debug("converted", zap.Stringer("result", result))
	if result.Profile != nil {
		if _, err := io.WriteString(stdout, result.Profile.String()); err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}
	}
	return nil
}

// buildOptions layers defaults, the config file and explicitly set flags,
// in that order.
func buildOptions(cmd *cobra.Command, args []string, f *flags) (xlcsv.Options, logger.Config, error) {
	opts := xlcsv.DefaultOptions()
	logCfg := logger.DefaultConfig()
	if len(args) > 1 {
		opts.Sheet = args[1]
	}

	if f.configPath != "" {
		cfg, err := xlcsv.LoadConfig(f.configPath)
		if err != nil {
			return opts, logCfg, xlcsv.NewConversionError(xlcsv.ErrInvalidArgument, f.configPath, err)
		}
		if err := cfg.Apply(&opts); err != nil {
			return opts, logCfg, xlcsv.NewConversionError(xlcsv.ErrInvalidArgument, f.configPath, err)
		}
		if cfg.LogLevel != "" {
			logCfg.Level = cfg.LogLevel
		}
		if cfg.LogFormat != "" {
			logCfg.Encoding = cfg.LogFormat
		}
	}

	changed := cmd.Flags().Changed
	if changed("delimiter") {
		d, err := xlcsv.ParseDelimiter(f.delimiter)
		if err != nil {
			return opts, logCfg, xlcsv.NewConversionError(xlcsv.ErrInvalidArgument, "", err)
		}
		opts.Delimiter = d
	}
	if changed("no-quote") {
		quote := !f.noQuote
		opts.Quote = &quote
	}
	if changed("crlf") {
		opts.LineEnding = output.LF
		if f.crlf {
			opts.LineEnding = output.CRLF
		}
	}
	if changed("mode") {
		opts.Mode = xlcsv.Mode(f.mode)
	}
	if changed("compress") {
		opts.Compression = output.Compression(f.compress)
	}
	if changed("profile") {
		opts.Profile = f.profile
	}
	if changed("arrow") {
		opts.Arrow = f.arrow
	}
	if changed("log-level") {
		logCfg.Level = f.logLevel
	}
	if changed("log-format") {
		logCfg.Encoding = f.logFormat
	}

	return opts, logCfg, nil
}
