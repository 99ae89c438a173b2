package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var (
	ErrOAuthExchangeFailed    = errors.New("sign-in with the provider failed")
	ErrOAuthEmailNotVerified  = errors.New("the provider did not confirm an email address")
	ErrOAuthProviderMisconfig = errors.New("sign-in with this provider is not configured")
)

// IdentityProvider runs the authorization-code flow of an external sign-in
// provider and reports the verified e-mail of the signed-in account.
type IdentityProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Identify(ctx context.Context, code string) (string, error)
}

type OAuthProvider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
}

type OAuthProviderOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint and UserInfoURL default to Google's when empty.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

func NewGoogleProvider(options OAuthProviderOptions) (*OAuthProvider, error) {
	if strings.TrimSpace(options.ClientID) == "" || strings.TrimSpace(options.ClientSecret) == "" {
		return nil, ErrOAuthProviderMisconfig
	}

	endpoint := options.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = endpoints.Google
	}
	userInfoURL := options.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = googleUserInfoURL
	}

	return &OAuthProvider{
		name: "google",
		config: &oauth2.Config{
			ClientID:     options.ClientID,
			ClientSecret: options.ClientSecret,
			RedirectURL:  options.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email"},
		},
		userInfoURL: userInfoURL,
	}, nil
}

func (provider *OAuthProvider) Name() string {
	return provider.name
}

func (provider *OAuthProvider) AuthCodeURL(state string) string {
	return provider.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type oauthUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (provider *OAuthProvider) Identify(ctx context.Context, code string) (string, error) {
	token, err := provider.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthExchangeFailed, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.userInfoURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthExchangeFailed, err)
	}
	response, err := provider.config.Client(ctx, token).Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthExchangeFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: userinfo status %d", ErrOAuthExchangeFailed, response.StatusCode)
	}

	var info oauthUserInfo
	if err := json.NewDecoder(io.LimitReader(response.Body, 1<<20)).Decode(&info); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOAuthExchangeFailed, err)
	}
	if strings.TrimSpace(info.Email) == "" || !info.EmailVerified {
		return "", ErrOAuthEmailNotVerified
	}
	return info.Email, nil
}
