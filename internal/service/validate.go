package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/songru/blititor/internal/domain"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors 逐字段收集，一次性返回给客户端
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

const (
	nicknameMinLen = 2
	nicknameMaxLen = 20
	passwordMinLen = 4
)

// ValidateNewAccount 注册表单的字段级校验
func ValidateNewAccount(acc *domain.NewAccount, passwordCheck string) ValidationErrors {
	var errs ValidationErrors

	nick := strings.TrimSpace(acc.Nickname)
	if n := utf8.RuneCountInString(nick); n < nicknameMinLen || n > nicknameMaxLen {
		errs = append(errs, FieldError{Field: "nickname", Message: "screen name must be between 2 and 20 chars long"})
	}

	email := strings.TrimSpace(acc.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "user id is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "user id must be a valid email address"})
	}

	if len(acc.Password) < passwordMinLen {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 4 characters long"})
	}
	if passwordCheck != acc.Password {
		errs = append(errs, FieldError{Field: "password_check", Message: "password check must be same as password"})
	}
	return errs
}
