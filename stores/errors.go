package stores

import "errors"

var (
	ErrClientNotFound = errors.New("client not found")
	ErrMobileExists   = errors.New("client with this mobile number already exists")
	ErrAdminNotFound  = errors.New("admin not found")
	ErrUsernameExists = errors.New("username already taken")
)
