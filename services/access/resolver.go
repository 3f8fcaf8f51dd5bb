// Package access resolves which service categories a sandbox identity may use.
//
// An identity with no rule is allowed every category. Anonymous sessions are
// therefore fail-open; route guards are responsible for rejecting them earlier.
package access

import (
	"strings"

	"dpiportal/models"
	"dpiportal/services/directory"
)

// LookupFunc finds a partner for an identity.
type LookupFunc func(id *int, email, username string) (models.Startup, bool)

// Resolver resolves access rules over a rule table.
type Resolver struct {
	Rules  map[int]models.AccessRule
	Lookup LookupFunc
}

// Default is the resolver over the built-in partner and rule tables.
var Default = &Resolver{Rules: rules, Lookup: directory.Lookup}

// DefaultRule allows every known category.
func DefaultRule() models.AccessRule {
	allowed := make([]string, len(AllServices))
	copy(allowed, AllServices)
	return models.AccessRule{AllowedServices: allowed, HiddenServices: []string{}}
}

// Resolve returns the rule for an identity. A rule keyed on the supplied id
// wins; otherwise the matched partner's rule; otherwise DefaultRule.
func (r *Resolver) Resolve(id *int, email, username string) models.AccessRule {
	if id != nil {
		if rule, ok := r.Rules[*id]; ok {
			return normalize(rule)
		}
	}
	if r.Lookup != nil {
		if partner, ok := r.Lookup(id, email, username); ok {
			if rule, ok := r.Rules[partner.ID]; ok {
				return normalize(rule)
			}
		}
	}
	return DefaultRule()
}

// HasServiceAccess reports whether service is allowed and not hidden.
func (r *Resolver) HasServiceAccess(service string, id *int, email, username string) bool {
	return Allows(r.Resolve(id, email, username), service)
}

// AllowedServices lists the visible categories for an identity.
func (r *Resolver) AllowedServices(id *int, email, username string) []string {
	rule := r.Resolve(id, email, username)
	out := make([]string, 0, len(rule.AllowedServices))
	for _, s := range rule.AllowedServices {
		if Allows(rule, s) {
			out = append(out, s)
		}
	}
	return out
}

// Allows checks one category against a resolved rule.
func Allows(rule models.AccessRule, service string) bool {
	service = strings.ToLower(strings.TrimSpace(service))
	if service == "" {
		return false
	}
	for _, hidden := range rule.HiddenServices {
		if strings.ToLower(hidden) == service {
			return false
		}
	}
	for _, allowed := range rule.AllowedServices {
		if strings.ToLower(allowed) == service {
			return true
		}
	}
	return false
}

func normalize(rule models.AccessRule) models.AccessRule {
	if len(rule.AllowedServices) == 0 {
		d := DefaultRule()
		d.StartupID = rule.StartupID
		d.HiddenServices = rule.HiddenServices
		rule = d
	}
	if rule.HiddenServices == nil {
		rule.HiddenServices = []string{}
	}
	return rule
}

// Resolve uses the Default resolver.
func Resolve(id *int, email, username string) models.AccessRule {
	return Default.Resolve(id, email, username)
}

// HasServiceAccess uses the Default resolver.
func HasServiceAccess(service string, id *int, email, username string) bool {
	return Default.HasServiceAccess(service, id, email, username)
}
