// Package directory maps signed-in identities to sandbox partner organisations.
package directory

import (
	"strings"

	"dpiportal/models"
)

// All returns a copy of the partner table.
func All() []models.Startup {
	out := make([]models.Startup, len(startups))
	copy(out, startups)
	return out
}

// Lookup finds a partner by id, then email, then username. The bool is false
// when nothing matched.
func Lookup(id *int, email, username string) (models.Startup, bool) {
	if id != nil {
		for _, s := range startups {
			if s.ID == *id {
				return s, true
			}
		}
	}
	if email != "" {
		for _, s := range startups {
			if strings.EqualFold(s.Email, email) {
				return s, true
			}
		}
	}
	if username != "" {
		for _, s := range startups {
			if strings.EqualFold(s.Username, username) {
				return s, true
			}
		}
	}
	return models.Startup{}, false
}

// GetStartupByUser is Lookup falling back to DefaultStartup.
func GetStartupByUser(id *int, email, username string) models.Startup {
	if s, ok := Lookup(id, email, username); ok {
		return s
	}
	return DefaultStartup
}

// USSDEndpointName is the slug used in the partner's dedicated USSD test path.
func USSDEndpointName(s models.Startup) string {
	if s.USSDEndpoint != "" {
		return s.USSDEndpoint
	}
	return s.Username
}
