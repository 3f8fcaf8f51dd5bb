package admin

import (
	"context"
	"errors"
	"strings"

	"dpiportal/backend"
)

var (
	ErrUnknownScreen        = errors.New("unknown screen")
	ErrUnknownAction        = errors.New("unknown action")
	ErrInvalidAction        = errors.New("invalid action")
	ErrConfirmationNotFound = errors.New("confirmation not found or expired")
)

const fallbackMessage = "Something went wrong. Please try again."

// ExtractErrorMessage turns a mutation error into toast text.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		switch {
		case apiErr.Status == 401 || apiErr.Status == 403:
			return "You are not allowed to perform this action."
		case apiErr.Status == 404:
			return "User not found."
		case apiErr.Status >= 500:
			return "The sandbox API is unavailable. Please try again."
		}
		return fallbackMessage
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "The request was cancelled."
	}
	for _, known := range []error{ErrConfirmationNotFound, ErrUnknownAction, ErrUnknownScreen, ErrInvalidAction} {
		if errors.Is(err, known) {
			msg := err.Error()
			if msg == "" {
				break
			}
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return fallbackMessage
}

// StatusOf returns the backend status behind err, or 0.
func StatusOf(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
