package domain

// Caller is the authenticated identity on whose behalf an operation runs.
// The transport layer resolves it from the request's session and passes it
// explicitly into every use case call.
type Caller struct {
	UserID string
}

// Authenticated reports whether the caller carries an identity.
func (c Caller) Authenticated() bool {
	return c.UserID != ""
}
