package usecase

import "errors"

var (
	ErrForbidden           = errors.New("you do not have permission to perform this action")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAccountExists       = errors.New("an account with this username or email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account is deactivated")
	ErrImageStorageMissing = errors.New("image uploads are not configured")
)
