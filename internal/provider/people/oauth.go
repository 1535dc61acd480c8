package people

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	peopleapi "google.golang.org/api/people/v1"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/provider"
)

// No credentials are embedded in the binary. Users must supply their own
// Google Cloud OAuth credentials via one of:
//   - Config file (~/.config/contactsync/config.toml) under [google]
//   - Environment variables GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET

func newOAuthConfig(opts Options) *oauth2.Config {
	endpoint := google.Endpoint
	if opts.TokenURL != "" {
		endpoint.TokenURL = opts.TokenURL
	}
	if opts.AuthURL != "" {
		endpoint.AuthURL = opts.AuthURL
	}
	return &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Scopes: []string{
			peopleapi.ContactsScope,
			peopleapi.UserinfoEmailScope,
		},
		Endpoint: endpoint,
	}
}

// HasCredentials reports whether OAuth credentials have been configured.
func (c *Client) HasCredentials() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != ""
}

// EnsureCredentials returns nil if OAuth credentials have been configured via
// config file or environment variables. Otherwise it returns an error with setup
// instructions.
func (c *Client) EnsureCredentials() error {
	if c.HasCredentials() {
		return nil
	}
	return fmt.Errorf("google OAuth credentials not configured; set them in ~/.config/contactsync/config.toml under [google] or via GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET env vars")
}

// Exchange trades a refresh token for an access token. It makes exactly one
// request to the token endpoint and never retries.
func (c *Client) Exchange(ctx context.Context, refreshToken string) (domain.AccessToken, error) {
	c.log.Debug().Msg("requesting access token")

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("failed to exchange refresh token: %w", classify(provider.StageToken, err))
	}
	return domain.AccessToken{Type: tok.Type(), Value: tok.AccessToken}, nil
}

// Authenticate runs the installed-app OAuth2 flow with a loopback redirect and
// returns a token that carries a refresh token.
func (c *Client) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	cfg := *c.oauth
	cfg.RedirectURL = fmt.Sprintf("http://127.0.0.1:%d", port)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errCh <- fmt.Errorf("no code in callback: %s", r.URL.Query().Get("error"))
			fmt.Fprint(w, "Authorization failed. You can close this tab.")
			return
		}
		codeCh <- code
		fmt.Fprint(w, "Authorization successful! You can close this tab.")
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Shutdown(ctx)

	url := cfg.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("\nOpen this URL in your browser to authorize contactsync:\n\n  %s\n\nWaiting for authorization...\n", url)

	select {
	case code := <-codeCh:
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
		token, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange auth code: %w", err)
		}
		if token.RefreshToken == "" {
			return nil, fmt.Errorf("authorization returned no refresh token")
		}
		return token, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
