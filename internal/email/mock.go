package email

import "sync"

// MockProvider records sent messages instead of delivering them. Used in
// development and tests.
type MockProvider struct {
	mu   sync.Mutex
	Sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, *email)
	return nil
}

func (p *MockProvider) Close() error {
	return nil
}
