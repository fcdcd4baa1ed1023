// Command linguachain translates text or HTML through the provider chain.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/linguachain"
	"github.com/ZaguanLabs/linguachain/cache"
	"github.com/ZaguanLabs/linguachain/processor"
	"github.com/ZaguanLabs/linguachain/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = linguachain.Version
	commit    = linguachain.GitCommit
	buildDate = linguachain.BuildDate
)

// Flags holds the command line flags.
type Flags struct {
	CfgFile    string
	TargetLang string
	Output     string
	CacheFile  string
	HTML       bool
	Batch      bool
	JSON       bool
	Quiet      bool
	DryRun     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := &Flags{}
	cmd := newRootCommand(flags)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cmd.ExecuteContext(ctx)
}

func newRootCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linguachain [text|file]",
		Short: "Translate text through a chain of free providers",
		Long: `linguachain translates text by trying free providers in order
(Google web endpoint, LibreTranslate instances, MyMemory, then an optional
OpenAI-compatible model) and adds a romanized pronunciation for Indic and
Japanese targets.

Examples:
  linguachain --lang te "Hello"              # Translate one text
  echo "Hello" | linguachain --lang hi       # Read the text from stdin
  linguachain --lang ja --batch < lines.txt  # One translation per line
  linguachain --lang es --html page.html     # Translate an HTML file`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, flags, args)
		},
	}
	cmd.SetVersionTemplate(versionText())

	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default: $"+configPathEnv+", else environment only)")

	cmd.Flags().StringVarP(&flags.TargetLang, "lang", "l", "", "Target language code (e.g., te, hi, ja, es_ES)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&flags.CacheFile, "cache-file", "", "Cache snapshot to load before and save after translating")
	cmd.Flags().BoolVar(&flags.HTML, "html", false, "Treat the input as an HTML file or fragment")
	cmd.Flags().BoolVar(&flags.Batch, "batch", false, "Translate each non-empty input line separately")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Output result as JSON")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress output")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "With --html, list the texts that would be translated")

	return cmd
}

func versionText() string {
	s := fmt.Sprintf("%s %s\n", linguachain.Name, version)
	if commit != "unknown" && commit != "" {
		s += fmt.Sprintf("  commit:  %s\n", commit)
	}
	if buildDate != "unknown" && buildDate != "" {
		s += fmt.Sprintf("  built:   %s\n", buildDate)
	}
	return s
}

func execute(cmd *cobra.Command, flags *Flags, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if strings.TrimSpace(flags.TargetLang) == "" {
		return errors.New("--lang is required")
	}
	if flags.HTML && flags.Batch {
		return errors.New("--html and --batch cannot be combined")
	}
	if flags.DryRun && !flags.HTML {
		return errors.New("--dry-run requires --html")
	}

	input, inputName, err := readInput(cmd.InOrStdin(), args, flags.HTML)
	if err != nil {
		return err
	}

	if flags.DryRun {
		return runDryRun(input, inputName, flags.TargetLang, stdout, flags.JSON)
	}

	cfg, err := LoadConfig(flags.CfgFile)
	if err != nil {
		return err
	}
	if flags.CacheFile != "" {
		cfg.Cache.File = flags.CacheFile
		if strings.EqualFold(cfg.Cache.Backend, cache.BackendNone) {
			cfg.Cache.Backend = cache.BackendMemory
		}
	}

	logger := newLogger(cfg.Log, stderr, flags.Quiet)

	ctx := cmd.Context()
	resultCache, closeCache, err := cache.New(ctx, cfg.CacheSettings())
	if err != nil {
		return err
	}
	defer closeCache()

	if resultCache != nil && cfg.Cache.File != "" {
		loadSnapshot(resultCache, cfg.Cache.File, logger)
	}

	translator := newTranslator(cfg, logger, resultCache)

	var out io.Writer = stdout
	if flags.Output != "" {
		f, err := os.Create(flags.Output) // #nosec G304 - CLI tool writes user-specified files
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if !flags.Quiet {
		fmt.Fprintf(stderr, "Translating %s to %s...\n", inputName, flags.TargetLang)
	}
	start := time.Now()

	switch {
	case flags.HTML:
		err = translateHTML(ctx, translator, input, flags, out, stderr, start)
	case flags.Batch:
		err = translateLines(ctx, translator, input, flags, out, stderr)
	default:
		err = translateText(ctx, translator, input, flags, out, stderr, start)
	}
	if err != nil {
		return err
	}

	if resultCache != nil && cfg.Cache.File != "" {
		saveSnapshot(resultCache, cfg.Cache.File, logger)
	}
	return nil
}

// readInput returns the text to translate and a display name. In text mode
// the argument is the text itself; in HTML mode it names a file. Without an
// argument the input is read from stdin.
func readInput(stdin io.Reader, args []string, html bool) (string, string, error) {
	if len(args) == 1 && args[0] != "-" {
		if !html {
			return args[0], "argument", nil
		}
		data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return "", "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), filepath.Base(args[0]), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	text := string(data)
	if !html {
		text = strings.TrimRight(text, "\r\n")
	}
	return text, "stdin", nil
}

func newLogger(cfg LogConfig, w io.Writer, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using warn")
		level = logrus.WarnLevel
	}
	if quiet && level > logrus.ErrorLevel {
		level = logrus.ErrorLevel
	}
	logger.SetLevel(level)

	return logger
}

func newTranslator(cfg *Config, logger *logrus.Logger, resultCache cache.TranslationCache) *linguachain.Translator {
	client := linguachain.NewHTTPClient(linguachain.HTTPConfig{
		DialTimeout:       cfg.HTTP.DialTimeout,
		RequestTimeout:    cfg.HTTP.AttemptTimeout,
		RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
		BurstSize:         cfg.HTTP.BurstSize,
	})

	opts := []linguachain.TranslatorOption{
		linguachain.WithHTTPClient(client),
		linguachain.WithLogger(logger),
		linguachain.WithAttemptTimeout(cfg.HTTP.AttemptTimeout),
		linguachain.WithConcurrency(cfg.HTTP.Concurrency),
		linguachain.WithProcessor(processor.NewHTMLProcessor()),
	}
	if resultCache != nil {
		opts = append(opts, linguachain.WithCache(resultCache))
	}

	providers := provider.NewChainProviders(cfg.ProviderConfig())
	logger.WithField("providers", len(providers)).Debug("Provider chain ready")

	return linguachain.NewTranslator(providers, opts...)
}

// loadSnapshot imports a cache file. A missing file is the normal first run.
func loadSnapshot(c cache.TranslationCache, path string, logger *logrus.Logger) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return
	}
	res, err := cache.NewImporter(c).ImportFromFile(path)
	if err != nil {
		logger.WithError(err).WithField("file", path).Warn("Cache import failed")
		return
	}
	logger.WithFields(logrus.Fields{
		"file":     path,
		"imported": res.Imported,
		"skipped":  res.Skipped,
		"failed":   res.Failed,
	}).Debug("Cache imported")
}

func saveSnapshot(c cache.TranslationCache, path string, logger *logrus.Logger) {
	exporter, err := cache.NewExporter(c)
	if err != nil {
		logger.WithError(err).Warn("Cache export unavailable")
		return
	}
	n, err := exporter.ExportToFile(path, map[string]string{"generator": linguachain.Name + " " + version})
	if err != nil {
		logger.WithError(err).WithField("file", path).Warn("Cache export failed")
		return
	}
	logger.WithFields(logrus.Fields{"file": path, "entries": n}).Debug("Cache exported")
}

type textOutput struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
	*linguachain.Result
	Error string `json:"error,omitempty"`
}

func translateText(ctx context.Context, t *linguachain.Translator, input string, flags *Flags, out, stderr io.Writer, start time.Time) error {
	result, err := t.Translate(ctx, input, flags.TargetLang)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if flags.JSON {
		return encodeJSON(out, textOutput{Text: input, TargetLang: flags.TargetLang, Result: result})
	}

	fmt.Fprintln(out, result.TranslatedText)
	if result.Pronunciation != nil {
		fmt.Fprintf(out, "pronunciation: %s\n", *result.Pronunciation)
	}

	if !flags.Quiet {
		fmt.Fprintf(stderr, "Done in %v via %s\n", time.Since(start).Round(time.Millisecond), result.Provider)
	}
	return nil
}

// translateLines fails only when no line could be translated.
func translateLines(ctx context.Context, t *linguachain.Translator, input string, flags *Flags, out, stderr io.Writer) error {
	var lines []string
	for _, line := range strings.Split(input, "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return errors.New("no input lines")
	}

	items := t.TranslateBatch(ctx, lines, flags.TargetLang)

	failed := 0
	var firstErr error
	results := make([]textOutput, len(items))
	for i, item := range items {
		results[i] = textOutput{Text: item.Text, TargetLang: flags.TargetLang, Result: item.Result}
		if item.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = item.Err
			}
			results[i].Error = item.Err.Error()
		}
	}
	if failed == len(items) {
		return fmt.Errorf("translation failed: %w", firstErr)
	}

	if flags.JSON {
		return encodeJSON(out, results)
	}

	for _, r := range results {
		switch {
		case r.Result == nil:
			fmt.Fprintf(out, "%s\t!\t%s\n", r.Text, r.Error)
		case r.Pronunciation != nil:
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.Text, r.TranslatedText, *r.Pronunciation)
		default:
			fmt.Fprintf(out, "%s\t%s\n", r.Text, r.TranslatedText)
		}
	}

	if !flags.Quiet {
		fmt.Fprintf(stderr, "Translated %d of %d lines\n", len(items)-failed, len(items))
	}
	return nil
}

func translateHTML(ctx context.Context, t *linguachain.Translator, input string, flags *Flags, out, stderr io.Writer, start time.Time) error {
	result, err := t.TranslateHTML(ctx, input, flags.TargetLang)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	if flags.JSON {
		type htmlOutput struct {
			Content         string `json:"content"`
			TargetLang      string `json:"target_lang"`
			TotalNodes      int    `json:"total_nodes"`
			TranslatedCount int    `json:"translated_count"`
			FailedCount     int    `json:"failed_count"`
			ElapsedMs       int64  `json:"elapsed_ms"`
		}
		return encodeJSON(out, htmlOutput{
			Content:         result.Content,
			TargetLang:      flags.TargetLang,
			TotalNodes:      result.TotalNodes,
			TranslatedCount: result.TranslatedCount,
			FailedCount:     result.FailedCount,
			ElapsedMs:       elapsed.Milliseconds(),
		})
	}

	fmt.Fprint(out, result.Content)

	if !flags.Quiet {
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(stderr, "  Nodes found:  %d\n", result.TotalNodes)
		fmt.Fprintf(stderr, "  Translated:   %d\n", result.TranslatedCount)
		fmt.Fprintf(stderr, "  Failed:       %d\n", result.FailedCount)
	}
	return nil
}

// runDryRun shows what would be translated without calling any provider.
func runDryRun(input, inputName, targetLang string, stdout io.Writer, jsonOut bool) error {
	_, nodes, err := processor.NewHTMLProcessor().Extract(input)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	if jsonOut {
		type dryRunOutput struct {
			InputFile  string   `json:"input_file"`
			TargetLang string   `json:"target_lang"`
			NodeCount  int      `json:"node_count"`
			Texts      []string `json:"texts"`
		}

		texts := make([]string, len(nodes))
		for i, n := range nodes {
			texts[i] = n.Text
		}
		return encodeJSON(stdout, dryRunOutput{
			InputFile:  inputName,
			TargetLang: targetLang,
			NodeCount:  len(nodes),
			Texts:      texts,
		})
	}

	fmt.Fprintf(stdout, "Dry run: %s -> %s\n", inputName, targetLang)
	fmt.Fprintf(stdout, "Found %d translatable text nodes:\n\n", len(nodes))
	for i, node := range nodes {
		text := node.Text
		if len([]rune(text)) > 60 {
			text = string([]rune(text)[:57]) + "..."
		}
		fmt.Fprintf(stdout, "%3d. %q\n", i+1, text)
		if tag := node.Metadata["parent_tag"]; tag != "" {
			fmt.Fprintf(stdout, "     Tag: %s\n", tag)
		}
	}
	return nil
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
