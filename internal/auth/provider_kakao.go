// Copyright (c) 2026 Darass. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/zereight/2021-darass/internal/users"
)

// Kakao OAuth endpoints.
var kakaoEndpoint = oauth2.Endpoint{
	AuthURL:  "https://kauth.kakao.com/oauth/authorize",
	TokenURL: "https://kauth.kakao.com/oauth/token",
}

const kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

// KakaoProvider implements [Provider] against the Kakao REST API.
type KakaoProvider struct {
	config *oauth2.Config
}

// NewKakaoProvider builds a KakaoProvider from application credentials.
func NewKakaoProvider(clientID, clientSecret, redirectURL string) *KakaoProvider {
	return &KakaoProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     kakaoEndpoint,
		},
	}
}

// Name returns the registry key for this provider.
func (provider *KakaoProvider) Name() string { return ProviderKakao }

/*
ExchangeCode redeems the authorization code with Kakao and fetches the
account's profile.

Parameters:
  - ctx: context.Context
  - authorizationCode: string

Returns:
  - *users.ExternalIdentity: Kakao account ID, email (when the scope grants
    it), and profile nickname
  - error: ErrCodeRejected or ErrProviderUnreachable
*/
func (provider *KakaoProvider) ExchangeCode(ctx context.Context, authorizationCode string) (*users.ExternalIdentity, error) {
	token, err := provider.config.Exchange(ctx, authorizationCode)
	if err != nil {
		return nil, classifyExchangeError("kakao", err)
	}

	// Kakao nests profile data under kakao_account.
	var payload struct {
		ID      int64 `json:"id"`
		Account struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname string `json:"nickname"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}

	if err := fetchUserInfo(ctx, provider.config, token, kakaoUserInfoURL, &payload); err != nil {
		return nil, err
	}

	return &users.ExternalIdentity{
		Provider:       ProviderKakao,
		ProviderUserID: fmt.Sprintf("%d", payload.ID),
		Email:          payload.Account.Email,
		Nickname:       payload.Account.Profile.Nickname,
	}, nil
}

// # Shared Provider Plumbing

// classifyExchangeError maps an oauth2 exchange failure onto the package
// sentinels.
//
// A [*oauth2.RetrieveError] means the provider answered and refused the code;
// everything else (DNS, TLS, deadline) means we never got an answer.
func classifyExchangeError(providerName string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %s: %s", ErrCodeRejected, providerName, retrieveErr.Error())
	}
	return fmt.Errorf("%w: %s: %s", ErrProviderUnreachable, providerName, err.Error())
}

// fetchUserInfo retrieves and decodes the provider's userinfo document using
// the freshly exchanged provider token.
func fetchUserInfo(ctx context.Context, config *oauth2.Config, token *oauth2.Token, url string, target any) error {
	client := config.Client(ctx, token)

	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("%w: userinfo: %s", ErrProviderUnreachable, err.Error())
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		// The provider accepted the code but refused the profile request:
		// treat it the same as a rejected code, the login cannot proceed.
		return fmt.Errorf("%w: userinfo status %s", ErrCodeRejected, response.Status)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: userinfo decode: %s", ErrCodeRejected, err.Error())
	}

	return nil
}
