package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Topic request related errors
	ErrTopicRequestNotFound = errors.New("topic request not found")

	// Blueprint related errors
	ErrBlueprintNotFound = errors.New("blueprint not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
