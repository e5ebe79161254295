// Copyright (c) 2026 Darass. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zereight/2021-darass/internal/platform/sec"
)

const (
	testAccessSecret  = "access-secret-for-tests-only"
	testRefreshSecret = "refresh-secret-for-tests-only"
	testIssuer        = "darass.app"
	testSubject       = "018f1c2e-0000-7000-8000-000000000001"
)

func newTestService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testAccessSecret, testRefreshSecret, testIssuer, 15*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsBadSecrets verifies the constructor refuses empty
or shared signing material.
*/
func TestNewTokenService_RejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
	}{
		{"empty_access", "", testRefreshSecret},
		{"empty_refresh", testAccessSecret, ""},
		{"equal_secrets", "same-secret", "same-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.accessSecret, tt.refreshSecret, testIssuer, time.Minute, time.Hour)
			assert.Error(t, err)
		})
	}
}

/*
TestIssue_RoundTrip verifies that both tokens of a freshly issued pair verify
back to the subject they were minted for.
*/
func TestIssue_RoundTrip(t *testing.T) {
	service := newTestService(t)

	pair, err := service.Issue(testSubject)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	subject, err := service.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)

	subject, err = service.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)
}

/*
TestIssue_EmptySubject verifies that a pair is never minted without a subject.
*/
func TestIssue_EmptySubject(t *testing.T) {
	service := newTestService(t)

	pair, err := service.Issue("")
	assert.Error(t, err)
	assert.Nil(t, pair)
}

/*
TestVerify_CrossFamilyRejection verifies that an access token never passes
refresh verification and vice versa, even within its validity window.
*/
func TestVerify_CrossFamilyRejection(t *testing.T) {
	service := newTestService(t)

	pair, err := service.Issue(testSubject)
	require.NoError(t, err)

	// Access token presented as a refresh token
	_, err = service.VerifyRefresh(pair.AccessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// Refresh token presented as an access token
	_, err = service.VerifyAccess(pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerify_MissingVersusInvalid verifies the two failure sentinels: an absent
refresh token is reported as missing, a present-but-garbage one as invalid.
*/
func TestVerify_MissingVersusInvalid(t *testing.T) {
	service := newTestService(t)

	_, err := service.VerifyRefresh("")
	assert.ErrorIs(t, err, sec.ErrMissingToken)

	_, err = service.VerifyRefresh("not-a-jwt-at-all")
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	_, err = service.VerifyAccess("")
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerify_TamperedToken verifies that flipping payload bytes breaks the
signature check.
*/
func TestVerify_TamperedToken(t *testing.T) {
	service := newTestService(t)

	pair, err := service.Issue(testSubject)
	require.NoError(t, err)

	// Corrupt the payload segment while keeping a structurally valid JWT
	segments := strings.Split(pair.AccessToken, ".")
	require.Len(t, segments, 3)
	replacement := "xx"
	if strings.HasSuffix(segments[1], replacement) {
		replacement = "yy"
	}
	segments[1] = segments[1][:len(segments[1])-2] + replacement
	tampered := strings.Join(segments, ".")

	_, err = service.VerifyAccess(tampered)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerify_Expiry verifies that tokens stop verifying once their window has
passed, using an injected clock so the test never sleeps.
*/
func TestVerify_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	currentTime := issuedAt

	service := newTestService(t).WithClock(func() time.Time { return currentTime })

	pair, err := service.Issue(testSubject)
	require.NoError(t, err)

	// Inside the access window
	currentTime = issuedAt.Add(14 * time.Minute)
	_, err = service.VerifyAccess(pair.AccessToken)
	assert.NoError(t, err)

	// Past the access window, refresh still valid
	currentTime = issuedAt.Add(16 * time.Minute)
	_, err = service.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	_, err = service.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)

	// Past the refresh window too
	currentTime = issuedAt.Add(15 * 24 * time.Hour)
	_, err = service.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestIssue_SuccessivePairsAreDistinct verifies that two issuances for the same
subject never produce identical token strings, even within the same second.
*/
func TestIssue_SuccessivePairsAreDistinct(t *testing.T) {
	service := newTestService(t)

	first, err := service.Issue(testSubject)
	require.NoError(t, err)

	second, err := service.Issue(testSubject)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

/*
TestVerify_WrongIssuer verifies that a token minted for another deployment is
rejected.
*/
func TestVerify_WrongIssuer(t *testing.T) {
	service := newTestService(t)

	other, err := sec.NewTokenService(testAccessSecret, testRefreshSecret, "other.app", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := other.Issue(testSubject)
	require.NoError(t, err)

	_, err = service.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}
