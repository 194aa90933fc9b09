package llm

import "context"

// MockClient is a configurable LLM client for testing.
// Set GenerateResponse/GenerateError to control what Generate returns.
type MockClient struct {
	GenerateResponse string
	GenerateError    error

	// Call tracking for assertions
	GenerateCalls []string
}

const mockVerdictJSON = `{"status": "unverified", "confidence": 0.5, "sources": [], "reasoning": "Mock reasoning"}`

func NewMockClient() *MockClient {
	return &MockClient{
		GenerateResponse: mockVerdictJSON,
	}
}

func (c *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.GenerateCalls = append(c.GenerateCalls, prompt)
	if c.GenerateError != nil {
		return "", c.GenerateError
	}
	return c.GenerateResponse, nil
}

// Reset clears recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.GenerateResponse = mockVerdictJSON
	c.GenerateError = nil
	c.GenerateCalls = nil
}
