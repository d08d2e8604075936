package domain

// Identity is the authenticated account the run operates as. Only
// messages authored by it are eligible for processing.
type Identity struct {
	ID       string
	Username string
}
