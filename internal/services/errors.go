// internal/services/errors.go
package services

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin with this email already exists")

	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrInvalidImage       = errors.New("invalid image file")
	ErrInvalidFileKey     = errors.New("invalid file key")
)
