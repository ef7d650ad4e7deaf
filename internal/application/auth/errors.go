package auth

import "goodswap-backend/internal/pkg/apperrors"

var (
	ErrEmailPasswordRequired = apperrors.NewInvalidArgument("Email and password are required")
	ErrInvalidEmail          = apperrors.NewInvalidArgument("Invalid Email")
	ErrIncorrectPassword     = apperrors.NewForbidden("Incorrect Password")
	ErrNotAuthenticated      = apperrors.NewForbidden("Not authenticated")
	ErrEmailTaken            = apperrors.NewConflict("Email is already registered")
)
