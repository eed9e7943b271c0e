package models

// Session is the identity resolved at startup. The zero value is the
// anonymous session.
type Session struct {
	Authenticated bool
	Username      string
}

// Anonymous is returned whenever the identity cannot be established.
var Anonymous = Session{}

// Owns reports whether the session may see edit/delete affordances for a
// contact owned by owner. This is presentational only.
func (s Session) Owns(owner string) bool {
	return s.Authenticated && s.Username != "" && s.Username == owner
}
