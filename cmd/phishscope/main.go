package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phishscope/internal/analyzer"
	"phishscope/internal/config"
	"phishscope/internal/gemini"
	"phishscope/internal/logging"
	"phishscope/internal/validate"
)

var (
	// Global flags
	verbose     bool
	apiKey      string
	model       string
	configPath  string
	concurrency int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phishscope",
	Short: "phishscope - AI-assisted triage for suspicious artifacts",
	Long: `phishscope routes suspicious artifacts - domains and email addresses,
email screenshots, URLs, auth tokens, free text, raw email sources - to the
Gemini API and renders a structured security verdict for each.

The backend's answer is treated as untrusted: whatever comes back is
normalized into a well-typed result, so a malformed model response degrades
into an inspectable verdict instead of an error.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newService builds the analyzer service from config, env and flags.
func newService(cmd *cobra.Command) (*analyzer.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.Gemini.APIKey = apiKey
	}
	if model != "" {
		cfg.Gemini.Model = model
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout, err := cfg.GeminiTimeout()
	if err != nil {
		return nil, err
	}

	client, err := gemini.NewClient(cmd.Context(), gemini.Config{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		Timeout:    timeout,
		MaxRetries: cfg.Gemini.MaxRetries,
	}, logging.For(logger, logging.CategoryBackend))
	if err != nil {
		return nil, err
	}
	return analyzer.New(client, logging.For(logger, logging.CategoryAnalyzer)), nil
}

// readSource reads analysis input from the optional file argument, or from
// stdin when no argument (or "-") is given.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides config and GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Gemini model (default gemini-2.5-flash)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a phishscope config file")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 4, "max concurrent analyses in batch mode")

	rootCmd.AddCommand(domainCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(screenshotCmd)
	rootCmd.AddCommand(secretsCmd)
	rootCmd.AddCommand(emailCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var vErr *validate.Error
		if errors.As(err, &vErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
