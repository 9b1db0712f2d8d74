package user

import (
	"context"
	"errors"

	"github.com/saulo-duarte/taskflow/internal/config"
	"golang.org/x/oauth2"
	goauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var ErrIncompleteProfile = errors.New("google profile has no id")

type GoogleProfile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// GoogleProvider is the slice of Google OAuth the login flow needs.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Profile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error)
}

type googleProvider struct {
	oauthConfig *oauth2.Config
}

func NewGoogleProvider(s config.GoogleSettings) GoogleProvider {
	return &googleProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			RedirectURL:  s.RedirectURL,
			Scopes:       []string{goauth.OpenIDScope, goauth.UserinfoEmailScope, goauth.UserinfoProfileScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
	}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.oauthConfig.Exchange(ctx, code)
}

func (p *googleProvider) Profile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	srv, err := goauth.NewService(ctx, option.WithTokenSource(p.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}
	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if info.Id == "" {
		return nil, ErrIncompleteProfile
	}
	return &GoogleProfile{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
