package admin

import (
	"fmt"
	"strings"

	"dpiportal/models"
)

// DefaultPageSize is the console's fixed page size.
const DefaultPageSize = 10

// Screen names the console views.
type Screen string

const (
	ScreenActive        Screen = "active-users"
	ScreenDeactivated   Screen = "deactivated-users"
	ScreenManage        Screen = "manage-users"
	ScreenResetPassword Screen = "reset-password"
)

// ParseScreen validates a screen name from a URL.
func ParseScreen(name string) (Screen, error) {
	switch s := Screen(name); s {
	case ScreenActive, ScreenDeactivated, ScreenManage, ScreenResetPassword:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
}

// ListQuery selects one page of one screen.
type ListQuery struct {
	Screen Screen
	Role   string
	Search string
	Page   int
}

// Page is one slice of a filtered list.
type Page struct {
	Items      []models.AdminUser `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalItems int                `json:"totalItems"`
	TotalPages int                `json:"totalPages"`
}

// Predicate returns the screen's filter. Role and search narrow any screen.
func Predicate(q ListQuery) func(models.AdminUser) bool {
	role := strings.ToLower(strings.TrimSpace(q.Role))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	return func(u models.AdminUser) bool {
		switch q.Screen {
		case ScreenActive:
			if !u.IsActive {
				return false
			}
		case ScreenDeactivated:
			if u.IsActive {
				return false
			}
		}
		if role != "" && strings.ToLower(u.Role) != role {
			return false
		}
		if search != "" {
			hay := strings.ToLower(u.Email + " " + u.FirstName + " " + u.LastName)
			if !strings.Contains(hay, search) {
				return false
			}
		}
		return true
	}
}

// Filter keeps the users matching keep, preserving order.
func Filter(users []models.AdminUser, keep func(models.AdminUser) bool) []models.AdminUser {
	out := make([]models.AdminUser, 0, len(users))
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

// Paginate returns 1-based page of items. Pages below 1 clamp to 1; pages past
// the end come back empty with the totals filled in.
func Paginate(items []models.AdminUser, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	pages := (total + size - 1) / size

	if page > pages {
		return Page{Items: []models.AdminUser{}, Page: page, PageSize: size, TotalItems: total, TotalPages: pages}
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	slice := make([]models.AdminUser, end-start)
	copy(slice, items[start:end])

	return Page{Items: slice, Page: page, PageSize: size, TotalItems: total, TotalPages: pages}
}
