package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Identity хранит профиль пользователя у внешнего провайдера.
// По email выполняется привязка к существующему аккаунту.
type Identity struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"picture"`
}

type OAuthProvider interface {
	AuthURL(state string) string
	Identity(ctx context.Context, code string) (*Identity, error)
}

type GoogleProvider struct {
	cfg *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
	}
}

func (p *GoogleProvider) AuthURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Identity обменивает код на токен и читает профиль из userinfo.
func (p *GoogleProvider) Identity(ctx context.Context, code string) (*Identity, error) {
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := p.cfg.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read userinfo: %w", err)
	}

	identity := &Identity{}
	if err := json.Unmarshal(body, identity); err != nil {
		return nil, fmt.Errorf("unmarshal userinfo: %w", err)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("userinfo has no email")
	}

	return identity, nil
}
