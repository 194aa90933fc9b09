package source

import (
	"context"
	"sync"

	"github.com/veracityhq/veracity/internal/domain"
)

// MockAdapter is a configurable source adapter for testing.
// Set Record/Err to control what Lookup returns. The collector invokes
// adapters from multiple goroutines, so call tracking is mutex-guarded.
type MockAdapter struct {
	AdapterName string
	Record      *domain.EvidenceRecord
	Err         error

	mu          sync.Mutex
	lookupCalls []string
}

func NewMockAdapter(name string) *MockAdapter {
	return &MockAdapter{AdapterName: name}
}

func (m *MockAdapter) Name() string { return m.AdapterName }

func (m *MockAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	m.mu.Lock()
	m.lookupCalls = append(m.lookupCalls, query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Record == nil {
		return nil, nil
	}
	rec := *m.Record
	return &rec, nil
}

// LookupCalls returns a copy of the queries seen so far.
func (m *MockAdapter) LookupCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.lookupCalls))
	copy(calls, m.lookupCalls)
	return calls
}

// Reset clears recorded calls and configured responses.
func (m *MockAdapter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Record = nil
	m.Err = nil
	m.lookupCalls = nil
}

var _ domain.SourceAdapter = (*MockAdapter)(nil)
