// Copyright (c) 2026 Darass. All rights reserved.

package users_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zereight/2021-darass/internal/platform/apperr"
	"github.com/zereight/2021-darass/internal/users"
	"github.com/zereight/2021-darass/pkg/uuidv7"
)

func newTestUserService(t *testing.T) (*users.Service, *users.User) {
	t.Helper()

	repository := newFakeRepository()
	user, err := repository.FindOrCreate(context.Background(), kakaoIdentity())
	require.NoError(t, err)

	return users.NewService(repository), user
}

/*
TestService_Me returns the profile for the token subject.
*/
func TestService_Me(t *testing.T) {
	service, registered := newTestUserService(t)

	profile, err := service.Me(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, profile.ID)
	assert.Equal(t, "우기", profile.Nickname)

	_, err = service.Me(context.Background(), uuidv7.New())
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_Rename verifies nickname validation and the returned updated
profile.
*/
func TestService_Rename(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, registered := newTestUserService(t)

		updated, err := service.Rename(context.Background(), registered.ID, "부기")
		require.NoError(t, err)
		assert.Equal(t, "부기", updated.Nickname)
	})

	t.Run("empty_nickname", func(t *testing.T) {
		service, registered := newTestUserService(t)

		_, err := service.Rename(context.Background(), registered.ID, "   ")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("oversized_nickname", func(t *testing.T) {
		service, registered := newTestUserService(t)

		_, err := service.Rename(context.Background(), registered.ID, strings.Repeat("가", users.NicknameMaxLen+1))
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("unknown_user", func(t *testing.T) {
		service, _ := newTestUserService(t)

		_, err := service.Rename(context.Background(), uuidv7.New(), "부기")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})
}
