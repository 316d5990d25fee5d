package apierror

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var receiptRegex = regexp.MustCompile(`^[A-Z]{3}[0-9]{10}$`)

// Request structs across the handler packages rely on the custom tags, and
// every handler package imports this one.
func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// RegisterValidators adds the custom binding tags used by request structs:
//
//	receipt  USCIS receipt number, three letters and ten digits (e.g. EAC2190012345)
//	isodate  YYYY-MM-DD or RFC3339 timestamp
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	if err := v.RegisterValidation("receipt", func(fl validator.FieldLevel) bool {
		return receiptRegex.MatchString(strings.ToUpper(fl.Field().String()))
	}); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return true
		}
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	})
}

// FieldError describes one failed field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Bind binds the JSON body into req and answers 400 with per-field details
// on failure. It returns false when the handler should stop.
func Bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, len(verrs))
			for i, fe := range verrs {
				fields[i] = FieldError{Field: fe.Field(), Rule: fe.Tag()}
			}
			BadRequestWithDetails(c, "Validation failed", fields)
			return false
		}
		BadRequest(c, err.Error())
		return false
	}
	return true
}
