package locale

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ZaguanLabs/chattr"
	"github.com/ZaguanLabs/chattr/provider"
)

// Filler translates the entries a target locale is missing using a
// provider.Provider.
type Filler struct {
	provider    provider.Provider
	batchSize   int
	concurrency int
	context     string
	logger      zerolog.Logger
}

// FillerOption is a functional option for configuring the Filler.
type FillerOption func(*Filler)

// WithBatchSize sets the number of strings sent per provider call.
func WithBatchSize(n int) FillerOption {
	return func(f *Filler) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// WithConcurrency sets the maximum number of provider calls in flight.
func WithConcurrency(n int) FillerOption {
	return func(f *Filler) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithContext sets the content description passed to the provider.
func WithContext(description string) FillerOption {
	return func(f *Filler) {
		f.context = description
	}
}

// WithFillLogger sets the logger.
func WithFillLogger(logger zerolog.Logger) FillerOption {
	return func(f *Filler) {
		f.logger = logger
	}
}

// NewFiller creates a Filler. Defaults: 50 strings per batch, 4 concurrent
// calls.
func NewFiller(p provider.Provider, opts ...FillerOption) *Filler {
	f := &Filler{
		provider:    p,
		batchSize:   50,
		concurrency: 4,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FillRequest describes one fill run.
type FillRequest struct {
	SourceLang string
	TargetLang string

	// Source holds the source locale entries.
	Source map[string]string
	// Target holds the existing target locale entries.
	Target map[string]string
	// Previous optionally holds the source entries from the last run. Keys
	// whose source text changed since then are translated again.
	Previous map[string]string
}

// FillResult is the outcome of a fill run.
type FillResult struct {
	// Translated maps keys to their new target text.
	Translated map[string]string
	// Rejected lists keys whose translation changed the placeholders.
	Rejected []string
	// Requested is the number of keys sent to the provider.
	Requested int
}

// Merge returns target with the translated entries applied.
func (r *FillResult) Merge(target map[string]string) map[string]string {
	out := make(map[string]string, len(target)+len(r.Translated))
	for k, v := range target {
		out[k] = v
	}
	for k, v := range r.Translated {
		out[k] = v
	}
	return out
}

// Pending returns the keys of req that need translating, sorted.
func (f *Filler) Pending(req FillRequest) []string {
	need := make(map[string]struct{})
	for _, k := range Diff(req.Target, req.Source).Added {
		need[k] = struct{}{}
	}
	if req.Previous != nil {
		for _, k := range Diff(req.Previous, req.Source).NeedsTranslation() {
			need[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(need))
	for k := range need {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fill translates the pending keys of req in batches. Translations whose
// placeholder signature differs from the source text are rejected.
func (f *Filler) Fill(ctx context.Context, req FillRequest) (*FillResult, error) {
	keys := f.Pending(req)
	result := &FillResult{
		Translated: make(map[string]string, len(keys)),
		Requested:  len(keys),
	}
	if len(keys) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for start := 0; start < len(keys); start += f.batchSize {
		end := min(start+f.batchSize, len(keys))
		batch := keys[start:end]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, k := range batch {
				texts[i] = req.Source[k]
			}

			out, err := f.provider.Translate(ctx, provider.Request{
				Texts:      texts,
				Keys:       batch,
				SourceLang: req.SourceLang,
				TargetLang: req.TargetLang,
				Context:    f.context,
			})
			if err != nil {
				return err
			}
			if len(out) != len(batch) {
				return &provider.CountMismatchError{Expected: len(batch), Got: len(out)}
			}

			mu.Lock()
			defer mu.Unlock()
			for i, k := range batch {
				if !chattr.CountPlaceholders(texts[i]).Equal(chattr.CountPlaceholders(out[i])) {
					f.logger.Warn().
						Str("key", k).
						Str("locale", req.TargetLang).
						Str("source", texts[i]).
						Str("translation", out[i]).
						Msg("Rejected translation with mismatched placeholders")
					result.Rejected = append(result.Rejected, k)
					continue
				}
				result.Translated[k] = out[i]
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(result.Rejected)

	f.logger.Info().
		Str("locale", req.TargetLang).
		Int("requested", result.Requested).
		Int("translated", len(result.Translated)).
		Int("rejected", len(result.Rejected)).
		Msg("Filled missing translations")

	return result, nil
}
