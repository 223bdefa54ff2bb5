package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rentproof/rentproof/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Rentproof configuration",
	Long: `Manage Rentproof configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (RENTPROOF_*)
3. Config file (~/.rentproof/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration including all sources (defaults, config file, env vars, flags).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (RENTPROOF_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
		fmt.Println("  3. Config file (~/.rentproof/config.yaml)")
		fmt.Println("  4. Defaults (shown above)")
		fmt.Println()

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.rentproof/config.yaml with all available options documented.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.rentproof"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'rentproof config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		// Helper for writing with error checking
		printf := func(format string, a ...interface{}) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(f, format, a...)
		}

		cfg := model.DefaultConfig()

		printf("# Rentproof Configuration File\n")
		printf("# See https://github.com/rentproof/rentproof for full documentation\n")
		printf("#\n")
		printf("# Configuration hierarchy (highest to lowest priority):\n")
		printf("#   1. CLI flags\n")
		printf("#   2. Environment variables (RENTPROOF_*)\n")
		printf("#   3. This config file\n")
		printf("#   4. Built-in defaults\n\n")

		printf("engine:\n")
		printf("  # Verification strategy: direct, structured, structured-with-fallback\n")
		printf("  strategy: %s\n", cfg.Engine.Strategy)
		printf("  # Timeout for the backend extraction call\n")
		printf("  extraction_timeout: %s\n", cfg.Engine.ExtractionTimeout)
		printf("  # Override the deposit extraction regex (keep one capture group)\n")
		printf("  # deposit_pattern: \"%s\"\n", "(?i)deposit[^£$]*[£$]?\\s?(\\d+(?:,\\d{3})*(?:\\.\\d{2})?)")
		printf("\n")

		printf("llm:\n")
		printf("  # Extraction backend: openai, anthropic, ollama\n")
		printf("  provider: %s\n", cfg.LLM.Provider)
		printf("  # Model name (provider-specific, empty for provider default)\n")
		printf("  model: \"%s\"\n", cfg.LLM.Model)
		printf("  # API keys come from OPENAI_API_KEY / ANTHROPIC_API_KEY env vars\n")
		printf("  timeout: %d\n", cfg.LLM.Timeout)
		printf("  max_tokens: %d\n", cfg.LLM.MaxTokens)
		printf("\n")

		printf("http:\n")
		printf("  timeout: %s\n", cfg.HTTP.Timeout)
		printf("  user_agent: \"%s\"\n", cfg.HTTP.UserAgent)
		printf("  max_body_bytes: %d\n", cfg.HTTP.MaxBodyBytes)
		printf("\n")

		printf("cache:\n")
		printf("  # Cache extraction results per document (in-process only)\n")
		printf("  enabled: %v\n", cfg.Cache.Enabled)
		printf("  ttl: %s\n", cfg.Cache.TTL)
		printf("\n")

		printf("rate:\n")
		printf("  # Backend/document-host request rate\n")
		printf("  requests_per_second: %v\n", cfg.Rate.RequestsPerSecond)
		printf("  burst: %d\n", cfg.Rate.Burst)

		if err != nil {
			return fmt.Errorf("error writing config file: %w", err)
		}

		fmt.Printf("✓ Created config file: %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
