package account

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("Sai email hoặc mật khẩu. Vui lòng thử lại.")
	ErrInvalidCode        = errors.New("invalid or expired code")

	ErrOldPasswordRequired = errors.New("Vui lòng nhập mật khẩu cũ.")
	ErrNewPasswordTooShort = errors.New("Mật khẩu mới tối thiểu 6 ký tự.")
	ErrPasswordTooShort    = errors.New("Mật khẩu tối thiểu 6 ký tự.")
	ErrPasswordMismatch    = errors.New("Mật khẩu nhập lại không khớp.")
	ErrPasswordUnchanged   = errors.New("Mật khẩu mới phải khác mật khẩu cũ.")
	ErrWrongOldPassword    = errors.New("Mật khẩu cũ không đúng.")
)

const MinPasswordLength = 6

// Profile maps to the `profiles` table.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"fullName"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the editable contact fields.
type ProfileUpdate struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// PasswordChange is the signed-in "change password" form.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
	Confirm     string `json:"confirmPassword"`
}

// Session is an issued access token.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Profile   Profile   `json:"user"`
}
