// Package httputil holds the request parsing helpers shared by the handler
// packages.
package httputil

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/gin-gonic/gin"
)

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD or RFC3339")

// ParseID reads a numeric path parameter. On failure it answers 400 and
// returns false.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apierror.BadRequest(c, "Invalid "+strings.ReplaceAll(name, "_", " "))
		return 0, false
	}
	return uint(id), true
}

// ParseDate parses a YYYY-MM-DD or RFC3339 value. Empty input yields nil.
// Date-only values are taken as midnight UTC.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	t = t.UTC()
	return &t, nil
}

// QueryUint reads an optional unsigned integer query parameter. The second
// return is false when the handler should stop (400 already sent).
func QueryUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apierror.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		apierror.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &v, true
}

// QueryInt reads an optional integer query parameter bounded by [min, max],
// falling back to def when absent.
func QueryInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		apierror.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// QueryDate reads an optional date query parameter.
func QueryDate(c *gin.Context, name string) (*time.Time, bool) {
	t, err := ParseDate(c.Query(name))
	if err != nil {
		apierror.BadRequest(c, "Invalid "+name+": "+err.Error())
		return nil, false
	}
	return t, true
}

// StartOfDay returns midnight UTC of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDatePtr is ParseDate for optional request fields.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return ParseDate(*s)
}
