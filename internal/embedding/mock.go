package embedding

import (
	"context"
	"sync"
)

// MockClient is a configurable mock implementation of domain.EmbeddingClient
// for testing. It returns a fixed vector and records every input it receives.
type MockClient struct {
	EmbedResponse []float32
	EmbedError    error

	mu         sync.Mutex
	embedCalls []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		EmbedResponse: []float32{0.1, 0.2, 0.3},
	}
}

func (m *MockClient) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls = append(m.embedCalls, text)
	m.mu.Unlock()

	if m.EmbedError != nil {
		return nil, m.EmbedError
	}
	vec := make([]float32, len(m.EmbedResponse))
	copy(vec, m.EmbedResponse)
	return vec, nil
}

// EmbedCalls returns a copy of the inputs passed to Embed so far.
func (m *MockClient) EmbedCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.embedCalls))
	copy(calls, m.embedCalls)
	return calls
}

// Reset clears recorded calls.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls = nil
}
