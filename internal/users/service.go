// Copyright (c) 2026 Darass. All rights reserved.

package users

import (
	"context"

	"github.com/zereight/2021-darass/internal/platform/validate"
)

// Service implements the user-profile use cases consumed by the widget.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its directory dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Me returns the profile of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string (subject of the verified access token)

Returns:
  - *User: Profile entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.repository.FindByID(context, userID)
}

/*
Rename updates the authenticated user's display name.

Description: Validates the new nickname and writes it through the directory.

Parameters:
  - context: context.Context
  - userID: string
  - nickname: string

Returns:
  - *User: The updated profile
  - error: Validation, apperr.NotFound, or storage failures
*/
func (service *Service) Rename(context context.Context, userID, nickname string) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldNickname, nickname).
		MaxLen(FieldNickname, nickname, NicknameMaxLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateNickname(context, userID, nickname); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, userID)
}
