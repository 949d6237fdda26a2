package locale

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/chattr/provider"
)

var fillSource = map[string]string{
	"gui.done":         "Done",
	"gui.cancel":       "Cancel",
	"key.jump":         "Jump",
	"multiplayer.join": "Hello %s",
	"death.generic":    "%s was slain by %s",
}

func TestFiller_Pending(t *testing.T) {
	f := NewFiller(provider.NewMockProvider())

	keys := f.Pending(FillRequest{
		Source: fillSource,
		Target: map[string]string{"gui.done": "Fertig", "gui.cancel": "Abbrechen"},
		Previous: map[string]string{
			"gui.done":   "Done",
			"gui.cancel": "Close",
		},
	})

	assert.Equal(t, []string{"death.generic", "gui.cancel", "key.jump", "multiplayer.join"}, keys)
}

func TestFiller_Fill(t *testing.T) {
	mock := provider.NewMockProvider()
	f := NewFiller(mock, WithBatchSize(2), WithConcurrency(2), WithContext("Survival server"))

	target := map[string]string{"gui.done": "Fertig"}
	result, err := f.Fill(context.Background(), FillRequest{
		SourceLang: "en_us",
		TargetLang: "de_de",
		Source:     fillSource,
		Target:     target,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Requested)
	assert.Equal(t, map[string]string{
		"gui.cancel":       "Abbrechen",
		"key.jump":         "Springen",
		"multiplayer.join": "Hallo %s",
		"death.generic":    "%s wurde von %s getötet",
	}, result.Translated)
	assert.Empty(t, result.Rejected)
	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "Survival server", mock.LastRequest().Context)

	merged := result.Merge(target)
	assert.Len(t, merged, 5)
	assert.Equal(t, "Fertig", merged["gui.done"])
}

func TestFiller_RejectsPlaceholderChanges(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.Translations = map[string]string{
		"Hello %s":           "Hallo",
		"%s was slain by %s": "%2$s tötete %1$s",
		"Jump":               "Springen %s",
		"Done":               "%1$s Fertig",
	}
	f := NewFiller(mock)

	result, err := f.Fill(context.Background(), FillRequest{
		TargetLang: "de_de",
		Source: map[string]string{
			"multiplayer.join": "Hello %s",
			"death.generic":    "%s was slain by %s",
			"key.jump":         "Jump",
			"gui.done":         "Done",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"gui.done", "key.jump", "multiplayer.join"}, result.Rejected)
	assert.Equal(t, map[string]string{"death.generic": "%2$s tötete %1$s"}, result.Translated)
}

func TestFiller_NothingPending(t *testing.T) {
	mock := provider.NewMockProvider()
	f := NewFiller(mock)

	result, err := f.Fill(context.Background(), FillRequest{
		Source: map[string]string{"gui.done": "Done"},
		Target: map[string]string{"gui.done": "Fertig"},
	})
	require.NoError(t, err)

	assert.Zero(t, result.Requested)
	assert.Zero(t, mock.CallCount())
}

func TestFiller_ProviderError(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.Err = &provider.ProviderError{Message: "invalid API key"}
	f := NewFiller(mock)

	_, err := f.Fill(context.Background(), FillRequest{Source: fillSource})

	var providerErr *provider.ProviderError
	assert.True(t, errors.As(err, &providerErr))
}

type shortProvider struct {
	mu    sync.Mutex
	calls int
}

func (p *shortProvider) Translate(ctx context.Context, req provider.Request) ([]string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return req.Texts[:len(req.Texts)-1], nil
}

func TestFiller_CountMismatch(t *testing.T) {
	f := NewFiller(&shortProvider{})

	_, err := f.Fill(context.Background(), FillRequest{Source: fillSource})

	var mismatch *provider.CountMismatchError
	assert.True(t, errors.As(err, &mismatch))
}
