package email

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Provider sends transactional email. Delivery failures are logged by
// callers and never surfaced to end users.
type Provider interface {
	Send(email *Email) error
	Close() error
}
