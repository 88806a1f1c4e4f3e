package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrTimeout means the request did not finish within its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrOffline means the server could not be reached at all.
	ErrOffline = errors.New("no internet connection")
)

// Validation errors returned by CreateTask before anything is sent.
var (
	ErrMissingWorkspace = errors.New("no workspace selected")
	ErrMissingBoard     = errors.New("please select a board")
	ErrMissingList      = errors.New("please select a list")
	ErrMissingName      = errors.New("please enter a task name")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// classify maps transport failures onto ErrTimeout and ErrOffline so
// callers can tell them apart with errors.Is.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %w", ErrOffline, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %w", ErrOffline, err)
	}

	return err
}

// UserMessage turns an API error into the text shown to the user.
func UserMessage(action string, err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "Request timed out. Please try again."
	case errors.Is(err, ErrOffline):
		return "No internet connection. Check your network and try again."
	case errors.Is(err, ErrMissingWorkspace), errors.Is(err, ErrMissingBoard),
		errors.Is(err, ErrMissingList), errors.Is(err, ErrMissingName):
		return capitalize(err.Error())
	case errors.As(err, &statusErr) && statusErr.Message != "":
		return fmt.Sprintf("Failed to %s: %s", action, statusErr.Message)
	default:
		return fmt.Sprintf("Failed to %s. Please try again.", action)
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
