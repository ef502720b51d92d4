package store

import "errors"

// Ошибки уровня сторов. Каждая из них также дублируется в поле Error
// снимка состояния, чтобы слой представления мог показать сообщение.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrForbidden          = errors.New("user is not allowed to resolve this alert")
	ErrInvalidTransition  = errors.New("alert status cannot move backward")
)
