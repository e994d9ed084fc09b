// Package main provides the CLI entry point for lotomatrix.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ukaji3/lotomatrix-go/internal/config"
	"github.com/ukaji3/lotomatrix-go/internal/logger"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/convert"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/output"
)

var (
	configFile string
	pretty     bool
)

// flagKeys maps CLI flags to configuration keys.
var flagKeys = map[string]string{
	"input":         "input_dir",
	"output":        "output_file",
	"converted-dir": "converted_dir",
	"report-json":   "report_json",
	"workers":       "workers",
	"all-sheets":    "all_sheets",
	"converter":     "converter.command",
	"timeout":       "converter.timeout",
	"log-json":      "log.json",
	"log-level":     "log.level",
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if hint := errors.FlattenHints(err); hint != "" {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lotomatrix",
		Short: "Consolidate lockout/tagout energy matrices from Excel files",
		Long: `lotomatrix reads energy-matrix workbooks (.xls, .xlsx, .xlsm), rebuilds
the equipment and energy-source fields from their merged and split columns,
and writes one consolidated workbook.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (toml, yaml or json)")
	rootCmd.PersistentFlags().String("converted-dir", "convertidos", "Directory for .xls files converted to .xlsx")
	rootCmd.PersistentFlags().String("converter", convert.DefaultCommand, "Converter command; may use {input}, {outdir}, {output}")
	rootCmd.PersistentFlags().Duration("timeout", convert.DefaultTimeout, "Time limit for converting one .xls file")
	rootCmd.PersistentFlags().Bool("all-sheets", false, "Read every worksheet instead of only the first")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	consolidateCmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Extract every workbook in a directory into one consolidated workbook",
		Args:  cobra.NoArgs,
		RunE:  runConsolidate,
	}
	consolidateCmd.Flags().StringP("input", "i", "planilhas", "Directory searched recursively for workbooks")
	consolidateCmd.Flags().StringP("output", "o", "saida/matriz_consolidada.xlsx", "Consolidated workbook path")
	consolidateCmd.Flags().String("report-json", "", "Also write the run report as JSON to this path")
	consolidateCmd.Flags().IntP("workers", "w", 1, "Files processed concurrently")

	extractCmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract one workbook and print its records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(consolidateCmd, extractCmd)
	return rootCmd
}

// loadConfig builds the configuration from defaults, file, env and the flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "bind flag --%s", name)
			}
		}
	}
	return nil
}

func setup(cmd *cobra.Command) (*config.Config, *zap.SugaredLogger, lotomatrix.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, lotomatrix.Options{}, fmt.Errorf("configuration: %w", err)
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return nil, nil, lotomatrix.Options{}, err
	}
	conv, err := convert.New(cfg.ConvertConfig(), log)
	if err != nil {
		return nil, nil, lotomatrix.Options{}, err
	}

	opts := lotomatrix.DefaultOptions()
	opts.AllSheets = cfg.AllSheets
	opts.Workers = cfg.Workers
	opts.Converter = conv
	opts.Logger = log
	return cfg, log, opts, nil
}

func runConsolidate(cmd *cobra.Command, args []string) error {
	cfg, log, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	opts.RunID = uuid.NewString()
	log = log.With(logger.FieldRunID, opts.RunID)

	files, err := lotomatrix.ListInputFiles(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Wrapf(lotomatrix.ErrNoInputFiles, "in %s", cfg.InputDir)
	}

	pterm.Info.Printfln("Found %d files. Starting...", len(files))
	opts.Progress = func(index, total int, path string) {
		pterm.Printfln("[%d/%d] Processing: %s", index, total, filepath.Base(path))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := lotomatrix.Run(ctx, files, opts)
	if err != nil {
		return err
	}
	for _, f := range out.Report.Failures {
		pterm.Error.Printfln("%s: %s", f.File, f.Error)
	}

	if err := output.WriteWorkbook(cfg.OutputFile, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Infow("Consolidated workbook written", logger.FieldFile, cfg.OutputFile, logger.FieldCount, len(out.Records))

	if cfg.ReportJSON != "" {
		if err := output.WriteJSON(cfg.ReportJSON, out.Report, true); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	printSummary(cfg.OutputFile, &out.Report)
	return nil
}

func printSummary(outputFile string, rep *models.RunReport) {
	pterm.Success.Printfln("Written: %s", outputFile)
	pterm.Printfln("Files found: %d | Processed: %d | Converted: %d | Failed: %d",
		rep.Found, rep.Processed, rep.Converted, rep.Failed())
	pterm.Printfln("Consolidated rows: %d", rep.Records)
	if rep.Failed() > 0 {
		pterm.Warning.Printfln("See the %q sheet for details.", output.ErrorsSheet)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return errors.Wrapf(lotomatrix.ErrFileNotFound, "%s", inputPath)
	}

	_, log, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	res, err := lotomatrix.ExtractFile(cmd.Context(), inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	jsonData, err := output.ToJSON(res, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
