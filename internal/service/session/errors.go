package session

import "errors"

var (
	// ErrInvalidCredentials carries the user-facing login failure message.
	ErrInvalidCredentials = errors.New("Невірний логін або пароль")

	// ErrUsernameTaken carries the user-facing duplicate-username message.
	ErrUsernameTaken = errors.New("Такий логін вже існує")
)
