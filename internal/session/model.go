package session

// Session is the reactive snapshot the rendering layer observes.
// Invariant: Authenticated == false implies Username == "" and Role == "".
type Session struct {
	Authenticated bool
	Username      string
	Role          Role
}

// anonymous is the zero snapshot.
var anonymous = Session{}

// LoginOutcome is the structured result of a login attempt. A failed
// attempt never leaks past this boundary as a panic or raw error.
type LoginOutcome struct {
	OK      bool
	Message string
}
