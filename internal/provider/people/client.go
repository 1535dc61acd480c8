package people

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	peopleapi "google.golang.org/api/people/v1"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/provider"
)

// maxGroups is the largest page the contactGroups.list endpoint accepts.
const maxGroups = 1000

// Options configures a Client. Empty URLs select Google's production endpoints.
type Options struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Endpoint     string
	Timeout      time.Duration
}

// Client talks to Google's OAuth2 token endpoint and the People API.
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	endpoint   string
	log        zerolog.Logger
}

// New creates a Client. All requests share one HTTP client with the
// configured timeout.
func New(opts Options, log zerolog.Logger) *Client {
	return &Client{
		oauth:      newOAuthConfig(opts),
		httpClient: &http.Client{Timeout: opts.Timeout},
		endpoint:   opts.Endpoint,
		log:        log.With().Str("component", "people").Logger(),
	}
}

func (c *Client) service(ctx context.Context, token domain.AccessToken) (*peopleapi.Service, error) {
	hc := &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value, TokenType: token.Type}),
			Base:   c.httpClient.Transport,
		},
	}
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	srv, err := peopleapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create people service: %w", err)
	}
	return srv, nil
}

// FetchGroups returns every contact group of the account in one request. A
// single undecodable entry fails the whole fetch.
func (c *Client) FetchGroups(ctx context.Context, token domain.AccessToken, username string) ([]domain.Group, error) {
	c.log.Debug().Str("username", username).Msg("fetching groups")

	srv, err := c.service(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err := srv.ContactGroups.List().PageSize(maxGroups).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list contact groups for %s: %w", username, classify(provider.StageGroups, err))
	}

	groups := make([]domain.Group, 0, len(resp.ContactGroups))
	for i, g := range resp.ContactGroups {
		group, err := mapContactGroup(g)
		if err != nil {
			return nil, fmt.Errorf("failed to parse contact group %d for %s: %w", i, username,
				&provider.TransportError{Stage: provider.StageGroups, Err: err})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Profile returns the primary email address of the account behind token.
func (c *Client) Profile(ctx context.Context, token domain.AccessToken) (string, error) {
	srv, err := c.service(ctx, token)
	if err != nil {
		return "", err
	}

	person, err := srv.People.Get("people/me").PersonFields("emailAddresses").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", classify("profile", err))
	}
	for _, e := range person.EmailAddresses {
		if e.Metadata != nil && e.Metadata.Primary {
			return e.Value, nil
		}
	}
	if len(person.EmailAddresses) > 0 {
		return person.EmailAddresses[0].Value, nil
	}
	return "", fmt.Errorf("profile has no email address")
}

// classify maps a request failure onto the provider error taxonomy.
func classify(stage string, err error) error {
	if isOffline(err) {
		return provider.ErrOffline
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		te := &provider.TransportError{Stage: stage, Body: string(retrieveErr.Body)}
		if retrieveErr.Response != nil {
			te.Status = retrieveErr.Response.StatusCode
		}
		return te
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &provider.TransportError{Stage: stage, Status: apiErr.Code, Body: apiErr.Body}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &provider.TransportError{Stage: stage, Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &provider.TransportError{Stage: stage, Err: err}
	}

	// What remains is a body that arrived but could not be decoded.
	return &provider.TransportError{Stage: stage, Err: fmt.Errorf("%w: %v", provider.ErrMalformedResponse, err)}
}

// isOffline reports whether err means no connection could be made.
func isOffline(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// Compile-time interface compliance checks.
var (
	_ provider.TokenExchanger = (*Client)(nil)
	_ provider.GroupFetcher   = (*Client)(nil)
)
