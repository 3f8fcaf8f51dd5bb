// Package navigation resolves previous/next documentation pages.
package navigation

import (
	"encoding/json"
	"fmt"
	"os"

	"dpiportal/models"
	"dpiportal/services/guard"
)

// Navigation holds the neighbours of the current page. Nil at the boundaries.
type Navigation struct {
	Previous *models.NavigationPage `json:"previous"`
	Next     *models.NavigationPage `json:"next"`
}

// AccessState is the caller's access-control state. Allows is consulted only
// once Loaded is true.
type AccessState struct {
	Loaded bool
	Allows func(service string) bool
}

// Resolver walks one ordered page list.
type Resolver struct {
	pages []models.NavigationPage
}

// New builds a resolver over a copy of pages.
func New(pages []models.NavigationPage) *Resolver {
	cp := make([]models.NavigationPage, len(pages))
	copy(cp, pages)
	return &Resolver{pages: cp}
}

// LoadFile reads a navgen navigation.json.
func LoadFile(path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read navigation file: %w", err)
	}
	var pages []models.NavigationPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decode navigation file: %w", err)
	}
	return New(pages), nil
}

// Default walks the built-in page list.
var Default = New(builtinPages)

// Pages returns a copy of the ordered list.
func (r *Resolver) Pages() []models.NavigationPage {
	return New(r.pages).pages
}

// GetNavigation returns the neighbours of the page whose path equals currentPath.
func (r *Resolver) GetNavigation(currentPath string) Navigation {
	return neighbours(r.pages, currentPath)
}

// GetAccessibleNavigation is GetNavigation over the pages state allows. It
// returns a Pending decision and no navigation until state is loaded.
func (r *Resolver) GetAccessibleNavigation(currentPath string, state AccessState) (Navigation, guard.Decision) {
	if !state.Loaded {
		return Navigation{}, guard.Decision{State: guard.Pending}
	}
	visible := make([]models.NavigationPage, 0, len(r.pages))
	for _, p := range r.pages {
		if p.Service == "" || state.Allows == nil || state.Allows(p.Service) {
			visible = append(visible, p)
		}
	}
	return neighbours(visible, currentPath), guard.Decision{State: guard.Allowed}
}

func neighbours(pages []models.NavigationPage, currentPath string) Navigation {
	idx := -1
	for i, p := range pages {
		if p.Path == currentPath {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Navigation{}
	}
	var nav Navigation
	if idx > 0 {
		prev := pages[idx-1]
		nav.Previous = &prev
	}
	if idx < len(pages)-1 {
		next := pages[idx+1]
		nav.Next = &next
	}
	return nav
}

// GetNavigation uses the Default resolver.
func GetNavigation(currentPath string) Navigation {
	return Default.GetNavigation(currentPath)
}
