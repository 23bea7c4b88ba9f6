package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/redlinehq/redline/internal/app"
	"github.com/redlinehq/redline/internal/counter"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	// get flag values
	selector, _ := cmd.Flags().GetString("selector")
	forceHTML, _ := cmd.Flags().GetBool("force-html")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	textFlag, _ := cmd.Flags().GetBool("text")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	htmlFlag, _ := cmd.Flags().GetBool("html")
	outPath, _ := cmd.Flags().GetString("out")
	units, _ := cmd.Flags().GetString("units")
	dictionary, _ := cmd.Flags().GetString("dictionary")
	grammarURL, _ := cmd.Flags().GetString("grammar-url")
	grammarLang, _ := cmd.Flags().GetString("grammar-lang")
	jobs, _ := cmd.Flags().GetInt("jobs")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// determine counting method for report statistics
	var countingMethod counter.CountingMethod
	switch units {
	case "", "words":
		countingMethod = counter.Words
	case "tokens":
		countingMethod = counter.Tokens
	case "characters":
		countingMethod = counter.Characters
	default:
		return app.Config{}, fmt.Errorf("unknown counting unit %q (use words, tokens, or characters)", units)
	}

	// determine output format
	var outputFormat app.OutputFormat
	switch {
	case jsonFlag:
		outputFormat = app.JSON
	case htmlFlag:
		outputFormat = app.HTML
	case textFlag:
		outputFormat = app.Text
	default:
		outputFormat = app.Text // default if no format flag
	}

	// return constructed config
	return app.Config{
		Before:         args[0],
		After:          args[1],
		Selector:       selector,
		ForceHTML:      forceHTML,
		IncludeAll:     includeAll,
		OutputFormat:   outputFormat,
		OutPath:        outPath,
		CountingMethod: countingMethod,
		DictionaryPath: dictionary,
		GrammarURL:     grammarURL,
		GrammarLang:    grammarLang,
		Jobs:           jobs,
		Quiet:          quiet,
		Debug:          debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "redline <before> <after>",
	Short: "A CLI tool for classifying the edits between two document versions",
	Long: `Redline compares two versions of a document, finds every edit, and labels
each one with the kind of change it makes: citation, formatting, spelling,
substitution, rephrasing, grammar, or topic shift. Versions may be local
files, URLs, or standard input ("-").

Examples:
  redline draft.txt revised.txt
  redline https://example.com/v1 https://example.com/v2 --html -o report.html
  git show HEAD~1:README.md | redline - README.md`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from flags and arguments
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// run the comparison
		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("redline failed: %w", err)
		}

		// output the result
		fmt.Print(result)
		if !strings.HasSuffix(result, "\n") {
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector for HTML extraction")
	rootCmd.Flags().Bool("force-html", false, "Treat both versions as HTML even when sniffing says otherwise")
	rootCmd.Flags().BoolP("include-all", "i", false, "Include all content without readability filtering")

	// output format flags (see also 'configure mutually exclusive flag groups' below)
	rootCmd.Flags().Bool("text", false, "Output a plain text report (default)")
	rootCmd.Flags().Bool("json", false, "Output a JSON report")
	rootCmd.Flags().Bool("html", false, "Output a standalone HTML report")

	// output format flags are mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("text", "json", "html")

	rootCmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	rootCmd.Flags().StringP("units", "u", "words", "Counting unit for report statistics: words, tokens, or characters")

	// classification services
	rootCmd.Flags().String("dictionary", "", "Extra word list file merged into the built-in dictionary")
	rootCmd.Flags().String("grammar-url", "", "LanguageTool-compatible server URL enabling the grammar rule")
	rootCmd.Flags().String("grammar-lang", "", "Language code for grammar checking (default: en-US)")
	rootCmd.Flags().IntP("jobs", "j", 0, "Number of classification workers (default: number of CPUs)")

	// other flags
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress progress messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
