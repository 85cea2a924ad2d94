package mailer

import "sync"

// MockMailer records sent messages for inspection in tests.
type MockMailer struct {
	mu   sync.Mutex
	Sent []MockMessage
}

type MockMessage struct {
	Recipient    string
	TemplateFile string
	Data         any
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = append(m.Sent, MockMessage{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// Messages returns a snapshot of everything sent so far.
func (m *MockMailer) Messages() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]MockMessage(nil), m.Sent...)
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = nil
}
