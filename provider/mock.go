package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a mock provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Err          error             // Returned by Translate when set

	mu          sync.Mutex
	callCount   int
	lastRequest *Request
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Done":               "Fertig",
			"Cancel":             "Abbrechen",
			"Jump":               "Springen",
			"Hello %s":           "Hallo %s",
			"%1$s joined":        "%1$s ist beigetreten",
			"%s was slain by %s": "%s wurde von %s getötet",
		},
	}
}

// Translate returns mock translations. Unknown texts come back in brackets.
func (m *MockProvider) Translate(ctx context.Context, req Request) ([]string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastRequest = &req
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

var _ Provider = (*MockProvider)(nil)
