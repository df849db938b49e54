// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/validate"
)

// # Service Layer

// Service orchestrates profile reads and username changes.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service].
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{accountRepository: accountRepo, logger: logger}
}

// GetProfile returns the caller's account.
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	return service.accountRepository.FindByID(context, userID)
}

/*
UpdateUsername renames the caller's account.

Rules, checked in order:
  - 3 to 30 characters from [a-zA-Z0-9_] after trimming (400 on username).
  - Different from the current username (400, general message).
  - Not used by another account, case-insensitively (409).

Returns:
  - *UsernameResult: Confirmation message and the updated account
*/
func (service *Service) UpdateUsername(context context.Context, userID string, input UsernameInput) (*UsernameResult, error) {
	username := strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username)
	if username != "" {
		validator.MinLen(FieldUsername, username, usernameMinLen).
			MaxLen(FieldUsername, username, usernameMaxLen).
			Match(FieldUsername, username, usernamePattern, "Only letters, digits and underscores are allowed")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	if current.Username == username {
		return nil, apperr.BadRequest(msgUsernameUnchanged)
	}

	taken, err := service.accountRepository.UsernameTaken(context, username, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(msgUsernameTaken)
	}

	user, err := service.accountRepository.UpdateUsername(context, userID, username)
	if err != nil {
		return nil, err
	}

	service.logger.Info("username_updated",
		slog.String("user_id", userID),
		slog.String("previous", current.Username),
		slog.String("username", username),
	)

	return &UsernameResult{Message: msgUsernameUpdated, User: user}, nil
}
