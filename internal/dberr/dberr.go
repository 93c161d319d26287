// Package dberr turns database errors into messages shown to shop operators.
package dberr

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type Kind int

const (
	Unknown Kind = iota
	Conflict
	Validation
	Referential
	Authorization
)

const (
	MsgDuplicate     = "Dữ liệu bị trùng (đã tồn tại). Vui lòng kiểm tra lại."
	MsgRequired      = "Bạn đang bỏ trống một trường bắt buộc. Vui lòng kiểm tra lại."
	MsgReferenced    = "Không thể lưu vì dữ liệu đang được liên kết ở nơi khác. Vui lòng kiểm tra ràng buộc."
	MsgNotPermitted  = "Bạn không có quyền thực hiện thao tác này."
	MsgFallback      = "Có lỗi xảy ra, vui lòng thử lại."
	msgUnknownPrefix = "Có lỗi: "
)

// constraint name → message, checked in order
var duplicateMessages = []struct {
	constraint string
	message    string
}{
	{"brands_abbr_key", "Mã viết tắt của hãng đã tồn tại. Vui lòng chọn mã khác."},
	{"brands_slug_key", "Slug của hãng đã tồn tại. Vui lòng chọn slug khác."},
	{"brands_name_key", "Tên hãng đã tồn tại. Vui lòng chọn tên khác."},
	{"categories_abbr_key", "Mã viết tắt danh mục đã tồn tại. Vui lòng chọn mã khác."},
	{"categories_slug_key", "Slug danh mục đã tồn tại. Vui lòng chọn slug khác."},
	{"categories_name_key", "Tên danh mục đã tồn tại. Vui lòng chọn tên khác."},
}

// Error is a database error reduced to the fields the translator reads.
type Error struct {
	Code       string
	Message    string
	Constraint string
}

func (e *Error) Error() string { return e.Message }

// Detail extracts the SQLSTATE code, message and constraint name from err.
// Errors that carry no code keep only their message.
func Detail(err error) Error {
	if err == nil {
		return Error{}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Error{Code: pgErr.Code, Message: pgErr.Message, Constraint: pgErr.ConstraintName}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return Error{Code: string(pqErr.Code), Message: pqErr.Message, Constraint: pqErr.Constraint}
	}
	var e *Error
	if errors.As(err, &e) {
		return *e
	}
	return Error{Message: err.Error()}
}

// Classify reports which family err belongs to.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}
	d := Detail(err)
	msg := strings.ToLower(d.Message)
	switch {
	case d.Code == "23505" || strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint"):
		return Conflict
	case d.Code == "23502" || strings.Contains(msg, "null value") || strings.Contains(msg, "not-null constraint"):
		return Validation
	case d.Code == "23503" || strings.Contains(msg, "foreign key"):
		return Referential
	case d.Code == "42501" || strings.Contains(msg, "permission denied") || strings.Contains(msg, "row-level security"):
		return Authorization
	}
	return Unknown
}

// Translate returns the Vietnamese message for err.
func Translate(err error) string {
	if err == nil {
		return ""
	}
	d := Detail(err)
	switch Classify(err) {
	case Conflict:
		haystack := d.Message + " " + d.Constraint
		for _, m := range duplicateMessages {
			if strings.Contains(haystack, m.constraint) {
				return m.message
			}
		}
		return MsgDuplicate
	case Validation:
		return MsgRequired
	case Referential:
		return MsgReferenced
	case Authorization:
		return MsgNotPermitted
	}
	if strings.TrimSpace(d.Message) != "" {
		return msgUnknownPrefix + d.Message
	}
	return MsgFallback
}

// Status maps an error family to an HTTP status code.
func Status(err error) int {
	switch Classify(err) {
	case Conflict, Referential:
		return fiber.StatusConflict
	case Validation:
		return fiber.StatusBadRequest
	case Authorization:
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// Respond writes err as a {"message": ...} body with the mapped status.
func Respond(c *fiber.Ctx, err error) error {
	return c.Status(Status(err)).JSON(fiber.Map{"message": Translate(err)})
}
