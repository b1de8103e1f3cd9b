package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/wadinfo/internal/config"
	"github.com/ossyrian/wadinfo/internal/logging"
	"github.com/ossyrian/wadinfo/internal/output"
	"github.com/ossyrian/wadinfo/internal/parser"
	"github.com/ossyrian/wadinfo/internal/wad"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wadinfo [flags] FILE...",
	Short: "Print the header and lump directory of WAD files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	// output
	rootCmd.Flags().StringP("format", "f", "text", "output format (text, table, json, yaml)")
	rootCmd.Flags().BoolP("lumps", "l", false, "list the lump directory")
	rootCmd.Flags().String("directory", config.DirectoryOrdered, "lump listing view (ordered, keyed)")

	// WAD settings
	rootCmd.Flags().Bool("allow-empty-names", false, "accept all-zero lump names")
	rootCmd.Flags().IntP("jobs", "j", 0, "number of files decoded concurrently (0 = one per CPU)")

	// other opts
	rootCmd.Flags().String("log-level", "warn", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.Flags().String("log-output-dir", "", "directory to write log files (if set, logs are written to both stderr and file)")

	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("lumps", rootCmd.Flags().Lookup("lumps"))
	viper.BindPFlag("directory", rootCmd.Flags().Lookup("directory"))
	viper.BindPFlag("allow_empty_names", rootCmd.Flags().Lookup("allow-empty-names"))
	viper.BindPFlag("jobs", rootCmd.Flags().Lookup("jobs"))
	viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.Flags().Lookup("log-output-dir"))
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wadinfo"))
		}
		viper.AddConfigPath("/etc/wadinfo")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("WADINFO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// run reads every WAD named on the command line and prints a summary
// for each. Unreadable files are reported in the summary, not as a
// command failure.
func run(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.Inputs = args

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	format, _ := output.ParseFormat(cfg.Format)

	closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir, os.Stderr)
	if err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer closeLog()

	reader := parser.NewWadReader(afero.NewOsFs(), slog.Default(),
		wad.WithAllowEmptyNames(cfg.AllowEmptyNames),
	)

	slog.Debug("reading files", "count", len(cfg.Inputs), "jobs", cfg.Jobs)

	opts := output.Options{
		Format:    format,
		ListLumps: cfg.ListLumps,
		Keyed:     cfg.Keyed(),
	}

	results := reader.ReadAll(cfg.Inputs, cfg.Jobs)
	summaries := make([]output.Summary, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			slog.Info("could not read WAD", "file", res.Path, "error", res.Err)
		}
		summaries = append(summaries, output.NewSummary(res.Path, res.Header, res.Err, opts))
	}

	return output.NewPrinter(cmd.OutOrStdout(), opts).Print(summaries)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
