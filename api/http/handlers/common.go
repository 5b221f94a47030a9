package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/api/http/presenter"
	"github.com/artem13815/jobtracker/pkg/apperr"
	"github.com/artem13815/jobtracker/pkg/logging"
)

const (
	msgInvalidJSON  = "invalid JSON payload"
	msgNotFound     = "not found"
	msgAccessDenied = "access denied: the referenced application does not exist or belongs to another user"
	msgInternal     = "internal server error"
)

// Date accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date (midnight
// UTC).
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperr.Validation("dates must be strings")
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses RFC 3339 or YYYY-MM-DD and returns the instant in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperr.Validation("invalid date: " + strconv.Quote(s))
}

func datePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// bindJSON decodes the JSON body into out. On failure it returns the message
// for a 400 response; date errors keep their own message.
func bindJSON(c *fiber.Ctx, out any) (string, bool) {
	err := c.BodyParser(out)
	if err == nil {
		return "", true
	}
	var v apperr.Validation
	if errors.As(err, &v) {
		return v.Error(), false
	}
	return msgInvalidJSON, false
}

// bindPatch is bindJSON for partial updates. Pointer fields cannot tell an
// explicit null from an absent key, so the listed non-nullable keys are
// checked on the raw body.
func bindPatch(c *fiber.Ctx, out any, nonNull ...string) (string, bool) {
	if msg, ok := bindJSON(c, out); !ok {
		return msg, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return msgInvalidJSON, false
	}
	for _, key := range nonNull {
		if v, ok := raw[key]; ok && string(v) == "null" {
			return key + " cannot be null", false
		}
	}
	return "", true
}

// applicationRef is an application id inside a request body.
type applicationRef struct {
	uuid.UUID
}

func (r *applicationRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperr.Validation("applicationId must be a string")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return apperr.Validation("invalid applicationId: " + strconv.Quote(s))
	}
	r.UUID = id
	return nil
}

// unauthenticated answers a request that reached a protected handler without
// a resolved identity.
func unauthenticated(c *fiber.Ctx) error {
	return presenter.Error(c, http.StatusUnauthorized, "unauthenticated")
}

// pathID parses the :id parameter. A malformed id cannot exist, so it is
// reported as not found.
func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// fail maps a use case error to a response. Unknown errors are logged with
// op and answered with a generic 500.
func fail(c *fiber.Ctx, log logging.Logger, op string, err error) error {
	switch {
	case apperr.IsValidation(err):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	case errors.Is(err, apperr.ErrAccessDenied):
		return presenter.Error(c, http.StatusBadRequest, msgAccessDenied)
	default:
		log.Error(c.UserContext(), op, "err", err,
			"method", c.Method(), "path", c.Path(), "request_id", requestID(c))
		return presenter.Error(c, http.StatusInternalServerError, msgInternal)
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("requestid").(string); ok {
		return v
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
