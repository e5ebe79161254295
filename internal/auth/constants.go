// Copyright (c) 2026 Darass. All rights reserved.

package auth

import "time"

// # Token Lifetimes

const (
	// AccessTokenTTL is the duration an access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token remains valid.
	// Long-lived (2 weeks) so a regular commenter stays signed in.
	RefreshTokenTTL = 14 * 24 * time.Hour
)

// # Registered Provider Names

const (
	ProviderKakao = "kakao"
	ProviderNaver = "naver"
)

// # JSON Field Identifiers

// Wire field names of the login API. The widget frontend depends on these
// exact spellings.
const (
	FieldProviderName      = "oauthProviderName"
	FieldAuthorizationCode = "authorizationCode"
	FieldAccessToken       = "accessToken"
)
