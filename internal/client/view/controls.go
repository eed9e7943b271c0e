package view

import "github.com/dmitrijs2005/contactdir/internal/client/models"

// Controls are the session-dependent affordances outside the list.
type Controls struct {
	Create bool
	Export bool
	Logout bool
	Login  bool
	Signup bool
}

// AuthControls derives control visibility from the session. It depends on
// Authenticated only.
func AuthControls(sess models.Session) Controls {
	auth := sess.Authenticated
	return Controls{
		Create: auth,
		Export: auth,
		Logout: auth,
		Login:  !auth,
		Signup: !auth,
	}
}
