package models

// NavigationPage is one documentation page in traversal order.
type NavigationPage struct {
	Title string `json:"title" yaml:"title"`
	Path  string `json:"path" yaml:"path"`
	// Service is the category tag gating the page; empty means ungated.
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
}
