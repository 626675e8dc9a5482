package svc

// Internal service states used by Service implementations
const (
	StateREADY   = 0
	StateRUNNING = 1
	StateSTOPPED = 2
)
