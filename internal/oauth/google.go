// Package oauth fetches provider-verified identity profiles. Token
// verification happens entirely on the provider side; the auth service
// only ever sees the resulting profile.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"assessment-genie/internal/model"
)

type GoogleVerifier struct {
	userinfoURL string
	httpClient  *http.Client
}

func NewGoogleVerifier(userinfoURL string) *GoogleVerifier {
	return &GoogleVerifier{
		userinfoURL: userinfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchIdentity resolves a frontend-supplied access token into the
// profile Google asserts for it.
func (g *GoogleVerifier) FetchIdentity(ctx context.Context, accessToken string) (model.GoogleIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userinfoURL, nil)
	if err != nil {
		return model.GoogleIdentity{}, fmt.Errorf("google: create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return model.GoogleIdentity{}, fmt.Errorf("google: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.GoogleIdentity{}, fmt.Errorf("google: userinfo fetch failed (%d): %s", resp.StatusCode, string(body))
	}

	var profile struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return model.GoogleIdentity{}, fmt.Errorf("google: decode userinfo: %w", err)
	}

	return model.GoogleIdentity{
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	}, nil
}
