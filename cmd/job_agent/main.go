// Package main provides the entry point for the job application pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "job_agent",
	Short: "Personal job application pipeline",
	Long: "job_agent runs a job application through its lifecycle: duplicate check, fit scoring,\n" +
		"accept/reject decision, posting tailoring, resume and cover letter generation, company\n" +
		"research, and application status tracking. Records live as folders of YAML and generated\n" +
		"artifacts under the data directory.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

var (
	cfgPath     string
	dataDirFlag string
	verbose     bool

	// cfg is the resolved configuration available to every subcommand
	// after PersistentPreRunE.
	cfg config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Record store root (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if dataDirFlag != "" {
		loaded.DataDir = dataDirFlag
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded.Resolved()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
