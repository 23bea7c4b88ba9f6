// Package app wires the full comparison together: it loads both document
// versions, detects the edits between them, classifies every edit, and
// renders the result in the requested format. The cmd layer translates
// flags into a Config and calls Run; nothing here touches cobra.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/redlinehq/redline/internal/classify"
	"github.com/redlinehq/redline/internal/counter"
	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/extract"
	"github.com/redlinehq/redline/internal/fetch"
	"github.com/redlinehq/redline/internal/grammar"
	"github.com/redlinehq/redline/internal/lexicon"
	"github.com/redlinehq/redline/internal/report"
	"github.com/redlinehq/redline/internal/spinner"
	"github.com/redlinehq/redline/internal/text"
)

// OutputFormat defines the rendering for the final report
type OutputFormat int

const (
	// Text is a plain text report (default)
	Text OutputFormat = iota
	// JSON is a machine-readable report
	JSON
	// HTML is a standalone page with the edits marked inline
	HTML
)

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// Config holds one comparison's settings
type Config struct {
	Before string // original version: file path, URL, or "-" for stdin
	After  string // modified version: file path, URL, or "-" for stdin

	Selector   string // CSS selector for HTML extraction
	ForceHTML  bool   // treat both versions as HTML regardless of sniffing
	IncludeAll bool   // convert full HTML instead of main content only

	OutputFormat   OutputFormat
	OutPath        string // write the report here instead of returning it
	CountingMethod counter.CountingMethod

	DictionaryPath string // extra word list merged into the embedded one
	GrammarURL     string // LanguageTool-compatible endpoint, empty disables the grammar rule
	GrammarLang    string // language code for grammar checking

	Jobs  int  // classification workers, 0 picks a sensible default
	Quiet bool // suppress the progress spinner
	Debug bool
}

// Run executes a full comparison with the given configuration.
//
// Processing pipeline:
// 1. load both versions (fetched in parallel, HTML reduced to text)
// 2. detect the edits between the two versions
// 3. classify every edit over the rule chain
// 4. render the report in the configured format
//
// ctx allows for cancellation and timeout control of long-running operations.
func Run(ctx context.Context, cfg Config) (string, error) {
	original, modified, err := loadVersions(ctx, cfg)
	if err != nil {
		return "", err
	}

	edits := diff.Detect(original, modified)

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return "", err
	}

	records, err := classifyEdits(ctx, cfg, pipeline, edits, original, modified)
	if err != nil {
		return "", err
	}

	result, err := render(cfg, records, original, modified)
	if err != nil {
		return "", err
	}

	if cfg.OutPath != "" {
		if err := os.WriteFile(cfg.OutPath, []byte(result), 0644); err != nil {
			return "", fmt.Errorf("failed to write report to %q: %w", cfg.OutPath, err)
		}
		return fmt.Sprintf("report written to %s\n", cfg.OutPath), nil
	}

	return result, nil
}

// loadVersions reads the two document versions concurrently.
func loadVersions(ctx context.Context, cfg Config) (string, string, error) {
	if cfg.Before == "-" && cfg.After == "-" {
		return "", "", fmt.Errorf("only one version can be read from stdin")
	}

	var original, modified string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		original, err = loadVersion(gctx, cfg, cfg.Before)
		return err
	})
	g.Go(func() error {
		var err error
		modified, err = loadVersion(gctx, cfg, cfg.After)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	slog.Debug("versions loaded",
		"originalBytes", len(original),
		"modifiedBytes", len(modified))

	return original, modified, nil
}

// loadVersion reads one document version and reduces it to comparable text.
func loadVersion(ctx context.Context, cfg Config, source string) (string, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read content from %q: %w", source, err)
	}

	content := string(raw)
	if cfg.ForceHTML || looksLikeHTML(content) {
		// parse source URL for context (if it's a URL)
		var baseURL *url.URL
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
		}

		extracted, err := extract.ToText(strings.NewReader(content), cfg.Selector, cfg.IncludeAll, baseURL)
		if err != nil {
			return "", fmt.Errorf("failed to extract content from %q: %w", source, err)
		}
		content = extracted
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no content in %q", source)
	}

	return content, nil
}

// looksLikeHTML sniffs whether a version needs extraction before diffing.
// Both versions pass through the same sniffer, so a pair of HTML documents
// is either extracted on both sides or on neither.
func looksLikeHTML(content string) bool {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(http.DetectContentType([]byte(head)), "text/html")
}

// buildPipeline assembles the classification services from the configuration.
func buildPipeline(cfg Config) (*classify.Pipeline, error) {
	dictionary, err := lexicon.NewDictionary(cfg.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	var checker classify.GrammarChecker
	if cfg.GrammarURL != "" {
		checker = grammar.NewClient(cfg.GrammarURL, cfg.GrammarLang)
	}

	pipelineCfg := classify.DefaultConfig()
	pipelineCfg.Workers = cfg.Jobs

	return classify.New(pipelineCfg, dictionary, text.NewTagger(), lexicon.NewThesaurus(), checker), nil
}

// classifyEdits runs the rule chain over every detected edit.
func classifyEdits(ctx context.Context, cfg Config, pipeline *classify.Pipeline, edits []diff.Edit, original, modified string) ([]classify.Record, error) {
	if !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "Classifying edits...")
		sp.Start()
		defer sp.Stop()
	}

	return pipeline.ClassifyAll(ctx, edits, original, modified)
}

// render produces the report in the configured format.
func render(cfg Config, records []classify.Record, original, modified string) (string, error) {
	c, err := counter.NewCounter(cfg.CountingMethod)
	if err != nil {
		return "", fmt.Errorf("failed to create counter: %w", err)
	}

	data := report.Data{
		Records:  records,
		Original: original,
		Modified: modified,
		Stats:    report.BuildStats(c, records, original, modified),
	}

	switch cfg.OutputFormat {
	case JSON:
		return report.JSON(data)
	case HTML:
		return report.HTML(data)
	default:
		return report.Text(data), nil
	}
}
