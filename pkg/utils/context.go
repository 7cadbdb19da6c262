package utils

import (
	"context"

	"github.com/google/uuid"

	"hr-system/pkg/contextkeys"
	apperrors "hr-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func GetUserEmailFromCtx(ctx context.Context) string {
	email, _ := ctx.Value(contextkeys.UserEmailKey).(string)
	return email
}
