// Package session resolves who is making a request. A session is always in
// exactly one of three states: Pending while the identity provider cannot
// answer yet, Anonymous, or Authenticated with an Identity.
package session

import "fmt"

// LoginPath is where anonymous page requests are sent.
const LoginPath = "/login"

// CookieName is the cookie carrying the session token for page requests.
const CookieName = "session"

// Status is the resolved state of a session.
type Status int

const (
	Pending Status = iota
	Authenticated
	Anonymous
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Identity is what the identity provider knows about a signed-in user.
type Identity struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// Session pairs a Status with the Identity it carries. Identity is non-nil
// only when Status is Authenticated.
type Session struct {
	Status   Status
	Identity *Identity
}

// NewPending returns a session whose state is not known yet.
func NewPending() Session { return Session{Status: Pending} }

// NewAnonymous returns a session with no signed-in user.
func NewAnonymous() Session { return Session{Status: Anonymous} }

// NewAuthenticated returns a session for id.
func NewAuthenticated(id Identity) Session {
	return Session{Status: Authenticated, Identity: &id}
}

// Verifier is the identity provider boundary. Ready reports whether the
// provider can verify tokens at all; Verify checks a single token.
type Verifier interface {
	Ready() bool
	Verify(token string) (*Identity, error)
}

// Resolve maps a raw token to a Session. An unready verifier yields Pending
// regardless of the token; a missing or invalid token yields Anonymous.
func Resolve(v Verifier, token string) Session {
	if v == nil || !v.Ready() {
		return NewPending()
	}
	if token == "" {
		return NewAnonymous()
	}
	id, err := v.Verify(token)
	if err != nil || id == nil {
		return NewAnonymous()
	}
	return NewAuthenticated(*id)
}

// Decision is what a protected route does with a Session.
type Decision int

const (
	ShowLoading Decision = iota
	RedirectLogin
	Render
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show-loading"
	case RedirectLogin:
		return "redirect-login"
	case Render:
		return "render"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// Guard decides how a protected route responds to s.
func Guard(s Session) Decision {
	switch s.Status {
	case Authenticated:
		if s.Identity != nil {
			return Render
		}
		return RedirectLogin
	case Anonymous:
		return RedirectLogin
	}
	return ShowLoading
}
