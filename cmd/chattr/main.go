// Command chattr renders chat components for a locale and maintains the
// lang files behind them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/chattr"
	"github.com/ZaguanLabs/chattr/cache"
	"github.com/ZaguanLabs/chattr/component"
	"github.com/ZaguanLabs/chattr/locale"
	"github.com/ZaguanLabs/chattr/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	commit    = chattr.GitCommit
	buildDate = chattr.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the parsed command line flags.
type options struct {
	lang       string
	sourceLang string
	output     string
	diffFile   string
	envFile    string
	publish    bool
	fill       bool
	jsonOutput bool
	verbose    bool
	args       []string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chattr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.lang, "lang", "", "Target locale (e.g., de_de, ja_jp)")
	fs.StringVar(&opts.sourceLang, "source", "", "Source locale for -fill (default: -default-locale)")
	fs.StringVar(&opts.output, "o", "", "Output file (default: stdout)")
	fs.StringVar(&opts.diffFile, "diff", "", "Previous version of a lang file to compare against")
	fs.StringVar(&opts.envFile, "env", ".env", "Environment file to load")
	fs.BoolVar(&opts.publish, "publish", false, "Publish all loaded locales to Redis")
	fs.BoolVar(&opts.fill, "fill", false, "Translate entries missing from -lang using OpenAI")
	fs.BoolVar(&opts.jsonOutput, "json", false, "Output result as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose logging")

	locales := fs.String("locales", "", "Directory of lang files")
	defaultLocale := fs.String("default-locale", "", "Locale used when a key is missing (default: en_us)")
	overrides := fs.String("overrides", "", "Comma-separated go-i18n TOML message files consulted before lang files")
	redisURL := fs.String("redis", "", "Redis URL of a shared dictionary (e.g., redis://localhost:6379)")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "", "OpenAI model to use (default: gpt-4o-mini)")
	configPath := fs.String("config", "", "YAML config file")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}
	opts.args = fs.Args()

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", chattr.Name, chattr.FullVersion())
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if err := loadEnv(opts.envFile); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// Flags given explicitly win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "locales":
			cfg.Locales = *locales
		case "default-locale":
			cfg.DefaultLocale = *defaultLocale
		case "overrides":
			cfg.Overrides = splitList(*overrides)
		case "redis":
			cfg.Redis.URL = *redisURL
		case "api-key":
			cfg.OpenAI.APIKey = *apiKey
		case "model":
			cfg.OpenAI.Model = *model
		}
	})

	logger := newLogger(stderr, opts.verbose)

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	switch {
	case opts.publish:
		return runPublish(ctx, cfg, logger, stdout)
	case opts.fill:
		return runFill(ctx, cfg, opts, logger, stdout)
	case opts.diffFile != "":
		return runDiff(opts, stdout)
	}

	if opts.lang == "" {
		fs.Usage()
		return fmt.Errorf("-lang is required")
	}
	return runRender(ctx, cfg, opts, logger, stdin, stdout)
}

// loadStore loads the configured lang directory. Without a directory the
// store is empty.
func loadStore(ctx context.Context, cfg Config, logger zerolog.Logger) (*locale.Store, error) {
	store := locale.NewStore(cfg.DefaultLocale)
	if cfg.Locales == "" {
		return store, nil
	}

	files, err := locale.LoadDir(ctx, store, cfg.Locales)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		logger.Debug().
			Str("file", filepath.Base(f.Path)).
			Str("locale", f.Locale).
			Int("entries", len(f.Table.Keys())).
			Msg("Loaded lang file")
	}
	logger.Debug().Int("files", len(files)).Strs("locales", store.Locales()).Msg("Loaded locales")

	return store, nil
}

// runRender renders a chat component read from the first argument or stdin.
func runRender(ctx context.Context, cfg Config, opts options, logger zerolog.Logger, stdin io.Reader, stdout io.Writer) error {
	input, err := readInput(opts.args, stdin)
	if err != nil {
		return err
	}

	msg, err := component.Decode(input)
	if err != nil {
		return err
	}

	dict, closeDict, err := openDictionary(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDict()

	resolverOpts := []chattr.Option{chattr.WithLogger(logger)}

	if cfg.Marker.Prefix != nil || cfg.Marker.Suffix != nil {
		marker := chattr.DefaultMarker
		if cfg.Marker.Prefix != nil {
			marker.Prefix = *cfg.Marker.Prefix
		}
		if cfg.Marker.Suffix != nil {
			marker.Suffix = *cfg.Marker.Suffix
		}
		resolverOpts = append(resolverOpts, chattr.WithUnresolvedMarker(marker))
	}

	if len(cfg.Overrides) > 0 {
		tag, err := chattr.ParseLocale(cfg.DefaultLocale)
		if err != nil {
			return err
		}
		bundle := locale.NewBundleTranslator(tag)
		for _, path := range cfg.Overrides {
			if err := bundle.LoadMessageFile(path); err != nil {
				return err
			}
		}
		chain := chattr.NewChain()
		chain.Add("overrides", bundle)
		resolverOpts = append(resolverOpts, chattr.WithGlobalTranslator(chain))
	}

	renderer := component.NewRenderer(chattr.NewResolver(dict, resolverOpts...))
	text, unresolved, err := renderer.RenderString(msg, opts.lang)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(opts.output, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	if opts.jsonOutput {
		return writeJSON(out, renderOutput{
			Locale:     chattr.NormalizeLocale(opts.lang),
			Text:       text,
			Unresolved: unresolved,
		})
	}

	_, err = fmt.Fprintln(out, text)
	return err
}

// renderOutput is the -json output of a render.
type renderOutput struct {
	Locale     string `json:"locale"`
	Text       string `json:"text"`
	Unresolved bool   `json:"unresolved"`
}

// openDictionary returns the Redis dictionary when configured, the lang
// directory otherwise.
func openDictionary(ctx context.Context, cfg Config, logger zerolog.Logger) (chattr.Dictionary, func(), error) {
	if cfg.Redis.URL == "" {
		store, err := loadStore(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		URL:       cfg.Redis.URL,
		TTL:       cfg.Redis.TTL,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	dict := locale.NewCachedDictionary(
		locale.NewCacheDictionary(rc, cfg.DefaultLocale),
		cache.NewInMemoryCache(time.Minute),
		locale.WithCacheLogger(logger),
	)
	return dict, func() { _ = rc.Close() }, nil
}

// runPublish loads the lang directory and writes it to Redis.
func runPublish(ctx context.Context, cfg Config, logger zerolog.Logger, stdout io.Writer) error {
	if cfg.Locales == "" {
		return fmt.Errorf("-publish requires -locales")
	}
	if cfg.Redis.URL == "" {
		return fmt.Errorf("-publish requires -redis")
	}

	store, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		URL:       cfg.Redis.URL,
		TTL:       cfg.Redis.TTL,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer rc.Close()

	n, err := locale.Publish(ctx, store, rc)
	if err != nil {
		return fmt.Errorf("publishing: %w", err)
	}

	logger.Info().Int("entries", n).Strs("locales", store.Locales()).Msg("Published dictionary")
	fmt.Fprintf(stdout, "Published %d entries for %d locales\n", n, len(store.Locales()))
	return nil
}

// runFill translates the entries -lang is missing and writes the merged
// lang file.
func runFill(ctx context.Context, cfg Config, opts options, logger zerolog.Logger, stdout io.Writer) error {
	if opts.lang == "" {
		return fmt.Errorf("-fill requires -lang")
	}
	if cfg.Locales == "" {
		return fmt.Errorf("-fill requires -locales")
	}

	key := cfg.apiKey()
	if key == "" {
		return fmt.Errorf("OpenAI API key required (-api-key or OPENAI_API_KEY env)")
	}

	store, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	sourceLang := opts.sourceLang
	if sourceLang == "" {
		sourceLang = cfg.DefaultLocale
	}

	req := locale.FillRequest{
		SourceLang: chattr.NormalizeLocale(sourceLang),
		TargetLang: chattr.NormalizeLocale(opts.lang),
		Source:     store.Entries(sourceLang),
		Target:     store.Entries(opts.lang),
	}
	if len(req.Source) == 0 {
		return fmt.Errorf("no entries for source locale %s", req.SourceLang)
	}

	if opts.diffFile != "" {
		prev, err := locale.LoadFile(opts.diffFile)
		if err != nil {
			return err
		}
		req.Previous = locale.EntriesOf(prev.Table)
	}

	var p provider.Provider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:  key,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	})
	p = provider.NewRateLimitedProvider(p, provider.RateLimitConfig{
		RequestsPerMinute: cfg.Fill.RequestsPerMinute,
	})
	p = provider.NewRetryableProvider(p, provider.DefaultRetryConfig())

	filler := locale.NewFiller(p,
		locale.WithBatchSize(cfg.Fill.BatchSize),
		locale.WithConcurrency(cfg.Fill.Concurrency),
		locale.WithContext(cfg.Fill.Context),
		locale.WithFillLogger(logger),
	)

	logger.Info().
		Str("source", req.SourceLang).
		Str("target", req.TargetLang).
		Int("pending", len(filler.Pending(req))).
		Msg("Filling missing translations")

	start := time.Now()
	result, err := filler.Fill(ctx, req)
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	merged := result.Merge(req.Target)

	if opts.output != "" {
		if err := locale.WriteFile(opts.output, merged); err != nil {
			return err
		}
	} else if !opts.jsonOutput {
		if err := locale.WriteJSON(stdout, merged); err != nil {
			return err
		}
	}

	if opts.jsonOutput {
		return writeJSON(stdout, fillOutput{
			Source:     req.SourceLang,
			Target:     req.TargetLang,
			Requested:  result.Requested,
			Translated: len(result.Translated),
			Rejected:   result.Rejected,
			ElapsedMs:  time.Since(start).Milliseconds(),
		})
	}
	return nil
}

// fillOutput is the -json output of -fill.
type fillOutput struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Requested  int      `json:"requested"`
	Translated int      `json:"translated"`
	Rejected   []string `json:"rejected,omitempty"`
	ElapsedMs  int64    `json:"elapsed_ms"`
}

// runDiff compares a lang file with its previous version.
func runDiff(opts options, stdout io.Writer) error {
	if len(opts.args) == 0 {
		return fmt.Errorf("-diff requires the new lang file as argument")
	}
	newPath := opts.args[0]

	oldFile, err := locale.LoadFile(opts.diffFile)
	if err != nil {
		return err
	}
	newFile, err := locale.LoadFile(newPath)
	if err != nil {
		return err
	}

	oldEntries := locale.EntriesOf(oldFile.Table)
	newEntries := locale.EntriesOf(newFile.Table)
	diff := locale.Diff(oldEntries, newEntries)
	stats := diff.Stats()

	if opts.jsonOutput {
		out := diffOutput{
			File:             filepath.Base(newPath),
			PreviousFile:     filepath.Base(opts.diffFile),
			NeedsTranslation: diff.NeedsTranslation(),
			Added:            diff.Added,
			Removed:          diff.Removed,
			Changed:          diff.Changed,
		}
		out.Stats.Added = stats.Added
		out.Stats.Removed = stats.Removed
		out.Stats.Changed = stats.Changed
		out.Stats.Unchanged = stats.Unchanged
		return writeJSON(stdout, out)
	}

	fmt.Fprintf(stdout, "Diff: %s vs %s\n\n", filepath.Base(newPath), filepath.Base(opts.diffFile))

	fmt.Fprintf(stdout, "Summary:\n")
	fmt.Fprintf(stdout, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(stdout, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(stdout, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(stdout, "  Changed:   %d\n", stats.Changed)
	fmt.Fprintf(stdout, "\n")

	if !diff.HasChanges() {
		fmt.Fprintf(stdout, "No changes detected. All translations are up to date.\n")
		return nil
	}

	fmt.Fprintf(stdout, "Needs translation: %d keys\n\n", len(diff.NeedsTranslation()))

	if len(diff.Added) > 0 {
		fmt.Fprintf(stdout, "Added:\n")
		for _, k := range diff.Added {
			fmt.Fprintf(stdout, "  + %s = %q\n", k, truncate(newEntries[k], 50))
		}
		fmt.Fprintf(stdout, "\n")
	}

	if len(diff.Changed) > 0 {
		fmt.Fprintf(stdout, "Changed:\n")
		for _, k := range diff.Changed {
			fmt.Fprintf(stdout, "  ~ %s: %q -> %q\n", k, truncate(oldEntries[k], 30), truncate(newEntries[k], 30))
		}
		fmt.Fprintf(stdout, "\n")
	}

	if len(diff.Removed) > 0 {
		fmt.Fprintf(stdout, "Removed:\n")
		for _, k := range diff.Removed {
			fmt.Fprintf(stdout, "  - %s\n", k)
		}
		fmt.Fprintf(stdout, "\n")
	}

	return nil
}

// diffOutput is the -json output of -diff.
type diffOutput struct {
	File         string `json:"file"`
	PreviousFile string `json:"previous_file"`
	Stats        struct {
		Added     int `json:"added"`
		Removed   int `json:"removed"`
		Changed   int `json:"changed"`
		Unchanged int `json:"unchanged"`
	} `json:"stats"`
	NeedsTranslation []string `json:"needs_translation"`
	Added            []string `json:"added,omitempty"`
	Removed          []string `json:"removed,omitempty"`
	Changed          []string `json:"changed,omitempty"`
}

func readInput(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
