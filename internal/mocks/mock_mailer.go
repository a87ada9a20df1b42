package mocks

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	SendActivationMailFunc func(to, name, code string) error

	// Sent records every delivery for assertion
	Sent []SentMail
}

// SentMail is one recorded delivery
type SentMail struct {
	To   string
	Name string
	Code string
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SendActivationMail records the mail and succeeds unless overridden
func (m *MockMailer) SendActivationMail(to, name, code string) error {
	if m.SendActivationMailFunc != nil {
		return m.SendActivationMailFunc(to, name, code)
	}
	m.Sent = append(m.Sent, SentMail{To: to, Name: name, Code: code})
	return nil
}
