// Package quote stores the storefront's "request a quote" messages.
package quote

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("quote request not found")
	ErrMissingContact = errors.New("Vui lòng nhập họ tên và số điện thoại.")
	ErrInvalidPhone   = errors.New("Số điện thoại không hợp lệ.")
	ErrInvalidStatus  = errors.New("Trạng thái không hợp lệ.")
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

var statuses = map[string]bool{StatusNew: true, StatusContacted: true, StatusClosed: true}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool { return statuses[s] }

// Request maps to the `quote_requests` table.
type Request struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Address   *string   `json:"address"`
	Message   *string   `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Form is the public submission payload.
type Form struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Message  string `json:"message"`
}

// Normalize trims f and checks the contact fields. The phone keeps its
// leading "+" and digits only and must have 9 to 12 digits.
func Normalize(f Form) (Request, error) {
	name := strings.TrimSpace(f.FullName)
	phone := strings.TrimSpace(f.Phone)
	if name == "" || phone == "" {
		return Request{}, ErrMissingContact
	}

	var b strings.Builder
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '-':
		default:
			return Request{}, ErrInvalidPhone
		}
	}
	if digits < 9 || digits > 12 {
		return Request{}, ErrInvalidPhone
	}

	return Request{
		FullName: name,
		Phone:    b.String(),
		Address:  blank(f.Address),
		Message:  blank(f.Message),
		Status:   StatusNew,
	}, nil
}

func blank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
