package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSpeciesNotFound    = errors.New("species not found")
	ErrLogNotFound        = errors.New("species log not found")
	ErrOptionsRequired    = errors.New("choice questions require a non-empty options list")
	ErrMissingRequired    = errors.New("a required question was not answered")
	ErrPhotoTooLarge      = errors.New("photo exceeds the 10MB limit")
	ErrPhotoNotImage      = errors.New("photo must be an image file")
)
