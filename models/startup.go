package models

// Startup is a partner organisation with sandbox access.
type Startup struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	// ServiceCode is the partner's USSD short code, when one is assigned.
	ServiceCode string `json:"serviceCode,omitempty"`
	// USSDEndpoint overrides Username when building the partner's USSD test path.
	USSDEndpoint string `json:"ussdEndpoint,omitempty"`
}

// AccessRule lists the service categories a partner may use.
type AccessRule struct {
	StartupID       int      `json:"startupId"`
	AllowedServices []string `json:"allowedServices"`
	HiddenServices  []string `json:"hiddenServices"`
}
