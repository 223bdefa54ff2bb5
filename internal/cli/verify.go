package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rentproof/rentproof/internal/model"
	"github.com/rentproof/rentproof/internal/verify"
)

var (
	claimFile      string
	claimName      string
	claimAddress   string
	claimRent      string
	claimStart     string
	claimEnd       string
	strategy       string
	extractTimeout time.Duration
	depositPattern string
	outJSON        string
	noCache        bool
	llmProvider    string
	llmModel       string
	httpProxy      string
	httpsProxy     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <document>",
	Short: "Verify tenancy claims against one agreement document",
	Long: `Verify checks the supplied claims against a tenancy agreement:
- Extract a structured record from the document via the configured backend
- Compare each claimed field with type-appropriate rules
- Fall back to direct substring matching if extraction fails
- Report every mismatch as an issue; success means zero issues

The document is a .txt or .html file, or an http(s) URL.

Example:
  rentproof verify agreement.txt --name "Jane Doe" --address "1 High St" \
    --rent 1200 --start-date 2024-01-01 --end-date 2024-12-31
  rentproof verify agreement.txt --claim claim.yaml --json report.json
  rentproof verify agreement.txt --claim claim.yaml --strategy direct`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Claim flags
	verifyCmd.Flags().StringVar(&claimFile, "claim", "", "YAML file with the claim (alternative to the field flags)")
	verifyCmd.Flags().StringVar(&claimName, "name", "", "claimed tenant full name")
	verifyCmd.Flags().StringVar(&claimAddress, "address", "", "claimed property address")
	verifyCmd.Flags().StringVar(&claimRent, "rent", "", "claimed rent amount (decimal, e.g. 1200 or 1200.00)")
	verifyCmd.Flags().StringVar(&claimStart, "start-date", "", "claimed start date (YYYY-MM-DD)")
	verifyCmd.Flags().StringVar(&claimEnd, "end-date", "", "claimed end date (YYYY-MM-DD)")

	// Engine flags
	verifyCmd.Flags().StringVar(&strategy, "strategy", string(model.StrategyStructuredWithFallback), "verification strategy (direct, structured, structured-with-fallback)")
	verifyCmd.Flags().DurationVar(&extractTimeout, "extraction-timeout", 30*time.Second, "timeout for the backend extraction call")
	verifyCmd.Flags().StringVar(&depositPattern, "deposit-pattern", "", "override the deposit extraction regex (must keep one capture group)")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "write the report JSON to this path instead of stdout")

	// LLM flags
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "extraction backend (openai, anthropic, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "backend model name")

	// Proxy flags
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	document := args[0]

	claim, err := loadClaim()
	if err != nil {
		return err
	}
	if err := claim.Validate(); err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Engine.Strategy = model.Strategy(strategy)
	cfg.Engine.ExtractionTimeout = extractTimeout
	cfg.Engine.DepositPattern = depositPattern
	cfg.Cache.Enabled = !noCache
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.HTTPProxy = httpProxy
	cfg.LLM.HTTPSProxy = httpsProxy
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Output.Verbose = verbose
	if cfg.Engine.Strategy == model.StrategyDirect {
		cfg.LLM.Provider = ""
	}

	log := newLogger()
	engine, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout+cfg.Engine.ExtractionTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Document: %s\n", document)
		fmt.Fprintf(os.Stderr, "Strategy: %s\n", cfg.Engine.Strategy)
		fmt.Fprintln(os.Stderr)
	}

	text, err := buildLoader(cfg).Load(ctx, document)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	report, err := engine.Verify(ctx, claim, text)
	if err != nil {
		if errors.Is(err, verify.ErrUnavailable) {
			return fmt.Errorf("verification unavailable: %w", err)
		}
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Verdicts: fullName=%v address=%v rent=%v startDate=%v endDate=%v\n",
			report.Match.FullName, report.Match.Address, report.Match.Rent, report.Match.StartDate, report.Match.EndDate)
		fmt.Fprintf(os.Stderr, "✓ Issues: %d\n", len(report.Issues))
		fmt.Fprintln(os.Stderr)
	}

	return writeReport(report, outJSON)
}

// loadClaim builds the claim from --claim or from the field flags.
func loadClaim() (model.UserClaim, error) {
	if claimFile == "" {
		return model.UserClaim{
			FullName:  claimName,
			Address:   claimAddress,
			Rent:      claimRent,
			StartDate: claimStart,
			EndDate:   claimEnd,
		}, nil
	}

	data, err := os.ReadFile(claimFile)
	if err != nil {
		return model.UserClaim{}, fmt.Errorf("read claim file: %w", err)
	}

	var claim model.UserClaim
	if err := yaml.Unmarshal(data, &claim); err != nil {
		return model.UserClaim{}, fmt.Errorf("parse claim file: %w", err)
	}
	return claim, nil
}

// writeReport renders the report JSON to a file or stdout.
func writeReport(report *model.VerificationReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", path)
	}
	return nil
}
