package domain

// Actor is whoever issued the current request
type Actor interface {
	// Can reports whether the actor holds capability
	Can(capability string) bool
}

// Capabilities is an Actor backed by an explicit capability list
type Capabilities []string

// Can reports whether capability is in the list
func (c Capabilities) Can(capability string) bool {
	for _, have := range c {
		if have == capability {
			return true
		}
	}
	return false
}

// Superuser holds every capability; API key callers act as one
type Superuser struct{}

// Can always returns true
func (Superuser) Can(string) bool {
	return true
}

// Anonymous holds no capability
type Anonymous struct{}

// Can always returns false
func (Anonymous) Can(string) bool {
	return false
}
