package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const googleTokenInfoBaseURL = "https://oauth2.googleapis.com"

// GoogleIdentity is the subset of Google's tokeninfo response social
// sign-in needs.
type GoogleIdentity struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint and checks the audience against the configured client ID.
type GoogleVerifier struct {
	http     *HttpClient
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		http:     NewHttpClient(googleTokenInfoBaseURL),
		clientID: clientID,
	}
}

func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	resp, err := v.http.GET(ctx, "/tokeninfo?id_token="+url.QueryEscape(idToken))
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token with status %d", resp.StatusCode)
	}

	var identity GoogleIdentity
	if err := resp.DecodeJSON(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if v.clientID != "" && identity.Audience != v.clientID {
		return nil, fmt.Errorf("token audience %q does not match configured client ID", identity.Audience)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("token carries no email claim")
	}

	return &identity, nil
}
