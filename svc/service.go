package svc

// Service is a long-running component managed by the application core.
type Service interface {
	Start() error // bootstrap errors only; runtime errors go to Done
	Stop()
	// Done - shutdown error channel. Consumed by the core only, the
	// implementation must not close it.
	Done() <-chan error
	Name() string
}
