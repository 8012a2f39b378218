// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/mymenu/mymenu/config"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs struct-tag validation.
// The body is capped at MAX_BODY_BYTES to prevent memory exhaustion.
// Any failure — malformed JSON, oversized body, validation — is returned as
// a single error suitable for a 400 response.
func JSON(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := validate.Struct(dest); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			// Report the first failing field; clients fix one at a time anyway.
			fe := verrs[0]
			return fmt.Errorf("%s is %s", fieldName(fe), ruleMessage(fe))
		}
		return err
	}

	return nil
}

func fieldName(fe validator.FieldError) string {
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not a valid email address"
	case "min":
		return "too short (min " + fe.Param() + ")"
	case "max":
		return "too long (max " + fe.Param() + ")"
	case "gte":
		return "too small (min " + fe.Param() + ")"
	case "lte":
		return "too large (max " + fe.Param() + ")"
	default:
		return "invalid"
	}
}
