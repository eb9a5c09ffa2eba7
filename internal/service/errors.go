package service

import "errors"

var (
	// ErrInvalidCredentials is returned on login failure. It deliberately
	// never distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrForbidden is returned when an authenticated caller is not allowed
	// to access or mutate a record.
	ErrForbidden = errors.New("you do not have permission to access this resource")
	// ErrNoFile is returned when an image upload carries no file.
	ErrNoFile = errors.New("please attach an image file")
)
