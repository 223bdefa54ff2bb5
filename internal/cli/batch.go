package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentproof/rentproof/internal/model"
	"github.com/rentproof/rentproof/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claim/document cases from a YAML file in parallel",
	Long: `Batch verifies multiple cases concurrently:
- Read cases (claim + document reference) from a YAML file
- Verify cases in parallel with a configurable worker count
- Write one report JSON per case

Case file format:
  cases:
    - name: jane-flat-3
      document: agreements/jane.txt
      claim:
        fullName: Jane Doe
        address: 1 High St
        rent: "1200"
        startDate: "2024-01-01"
        endDate: "2024-12-31"

Example:
  rentproof batch cases.yaml
  rentproof batch cases.yaml --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./rentproof-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Engine flags shared with verify
	batchCmd.Flags().StringVar(&strategy, "strategy", string(model.StrategyStructuredWithFallback), "verification strategy (direct, structured, structured-with-fallback)")
	batchCmd.Flags().DurationVar(&extractTimeout, "extraction-timeout", 30*time.Second, "timeout for each backend extraction call")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "extraction backend (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "backend model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cases, err := worker.LoadCases(file)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Engine.Strategy = model.Strategy(strategy)
	cfg.Engine.ExtractionTimeout = extractTimeout
	cfg.Cache.Enabled = !noCache
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.Output.Verbose = verbose
	if cfg.Engine.Strategy == model.StrategyDirect {
		cfg.LLM.Provider = ""
	}

	log := newLogger()
	engine, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Verifying %d cases with %d workers\n", len(cases), concurrency)

	loader := buildLoader(cfg)
	processor := worker.NewBatchProcessor(engine, loader.Load, concurrency)
	results := processor.Process(ctx, cases)

	succeeded, failed := 0, 0
	for _, result := range results {
		// LoadCases guarantees a unique, non-empty name per case.
		name := result.Case.Name

		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, result.Error)
			continue
		}

		path := filepath.Join(outputDir, name+".json")
		if err := writeReport(result.Report, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, err)
			continue
		}

		if result.Report.Success {
			succeeded++
			fmt.Fprintf(os.Stderr, "✓ %s: verified\n", name)
		} else {
			fmt.Fprintf(os.Stderr, "✗ %s: %d issue(s)\n", name, len(result.Report.Issues))
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d verified, %d with issues or errors, reports in %s\n",
		succeeded, len(results)-succeeded, outputDir)

	if failed > 0 {
		return fmt.Errorf("%d case(s) failed to process", failed)
	}
	return nil
}
