// Package guard implements the one-shot route gates: every check resolves to
// Pending, Allowed or Denied with a reason.
package guard

import (
	"time"

	"dpiportal/models"
	"dpiportal/services/access"
)

// State is the gate outcome.
type State int

const (
	Pending State = iota
	Allowed
	Denied
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Reason explains a Denied decision.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonExpired         Reason = "expired"
	ReasonNotAdmin        Reason = "not_admin"
	ReasonAdminOnly       Reason = "admin_account"
	ReasonNoServiceAccess Reason = "no_service_access"
)

// Decision is the tagged result of a gate.
type Decision struct {
	State  State
	Reason Reason
}

// Allowed reports whether the gate let the request through.
func (d Decision) Allowed() bool { return d.State == Allowed }

func allow() Decision { return Decision{State: Allowed} }

func pending() Decision { return Decision{State: Pending} }

func deny(r Reason) Decision { return Decision{State: Denied, Reason: r} }

// Protect requires a live session.
func Protect(sess *models.Session, now time.Time) Decision {
	if sess == nil || sess.Token == "" {
		return deny(ReasonUnauthenticated)
	}
	if sess.Expired(now) {
		return deny(ReasonExpired)
	}
	return allow()
}

// Profile requires a live session whose profile has been fetched.
func Profile(sess *models.Session, now time.Time) Decision {
	if d := Protect(sess, now); !d.Allowed() {
		return d
	}
	if sess.Profile == nil {
		return pending()
	}
	return allow()
}

// Admin requires a live session whose profile has the admin role. A session
// whose profile has not been fetched yet is Pending.
func Admin(sess *models.Session, now time.Time) Decision {
	if d := Protect(sess, now); !d.Allowed() {
		return d
	}
	if sess.Profile == nil {
		return pending()
	}
	if !sess.Profile.IsAdmin() {
		return deny(ReasonNotAdmin)
	}
	return allow()
}

// User requires a live non-admin session; admins belong in the console.
func User(sess *models.Session, now time.Time) Decision {
	if d := Protect(sess, now); !d.Allowed() {
		return d
	}
	if sess.Profile == nil {
		return pending()
	}
	if sess.Profile.IsAdmin() {
		return deny(ReasonAdminOnly)
	}
	return allow()
}

// Service requires a live session whose identity may use service.
func Service(sess *models.Session, service string, resolver *access.Resolver, now time.Time) Decision {
	if d := Protect(sess, now); !d.Allowed() {
		return d
	}
	if sess.Profile == nil {
		return pending()
	}
	if resolver == nil {
		resolver = access.Default
	}
	id := sess.Profile.ID
	if !resolver.HasServiceAccess(service, &id, sess.Profile.Email, sess.Profile.Username) {
		return deny(ReasonNoServiceAccess)
	}
	return allow()
}
