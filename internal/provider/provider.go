package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// TokenExchanger turns a long-lived refresh token into a short-lived access
// token with a single network round trip.
type TokenExchanger interface {
	Exchange(ctx context.Context, refreshToken string) (domain.AccessToken, error)
}

// GroupFetcher retrieves the remote contact groups of one account.
type GroupFetcher interface {
	FetchGroups(ctx context.Context, token domain.AccessToken, username string) ([]domain.Group, error)
}

var (
	// ErrOffline reports that the remote service could not be reached at all.
	ErrOffline = errors.New("offline")

	// ErrMalformedResponse reports a response body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// Stage names used in TransportError.
const (
	StageToken  = "token"
	StageGroups = "groups"
)

// TransportError is a failed request to the remote service: a non-success
// status or an undecodable body.
type TransportError struct {
	Stage  string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s request failed", e.Stage)
	if e.Status != 0 {
		msg += fmt.Sprintf(" with status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }
