// Copyright (c) 2026 Darass. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/zereight/2021-darass/internal/users"
)

// Naver OAuth endpoints.
var naverEndpoint = oauth2.Endpoint{
	AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
	TokenURL: "https://nid.naver.com/oauth2.0/token",
}

const naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"

// NaverProvider implements [Provider] against the Naver Open API.
type NaverProvider struct {
	config *oauth2.Config
}

// NewNaverProvider builds a NaverProvider from application credentials.
func NewNaverProvider(clientID, clientSecret, redirectURL string) *NaverProvider {
	return &NaverProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     naverEndpoint,
		},
	}
}

// Name returns the registry key for this provider.
func (provider *NaverProvider) Name() string { return ProviderNaver }

/*
ExchangeCode redeems the authorization code with Naver and fetches the
account's profile.

Parameters:
  - ctx: context.Context
  - authorizationCode: string

Returns:
  - *users.ExternalIdentity: Naver account ID, email, and nickname
  - error: ErrCodeRejected or ErrProviderUnreachable
*/
func (provider *NaverProvider) ExchangeCode(ctx context.Context, authorizationCode string) (*users.ExternalIdentity, error) {
	token, err := provider.config.Exchange(ctx, authorizationCode)
	if err != nil {
		return nil, classifyExchangeError("naver", err)
	}

	// Naver wraps the profile in a result envelope.
	var payload struct {
		ResultCode string `json:"resultcode"`
		Response   struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Nickname string `json:"nickname"`
		} `json:"response"`
	}

	if err := fetchUserInfo(ctx, provider.config, token, naverUserInfoURL, &payload); err != nil {
		return nil, err
	}

	if payload.ResultCode != "00" {
		return nil, fmt.Errorf("%w: naver result code %s", ErrCodeRejected, payload.ResultCode)
	}

	return &users.ExternalIdentity{
		Provider:       ProviderNaver,
		ProviderUserID: payload.Response.ID,
		Email:          payload.Response.Email,
		Nickname:       payload.Response.Nickname,
	}, nil
}
