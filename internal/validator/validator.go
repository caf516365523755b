// Package validator checks form input on the client before it reaches the
// network. Failing input is reported with field-level messages and the
// request is never sent.
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/filter"
)

// ErrInvalidInput wraps every validation failure.
var ErrInvalidInput = errors.New("invalid input")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// fieldError builds a field-level validation error.
func fieldError(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, msg)
}

// ValidateLogin checks login credentials.
func ValidateLogin(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fieldError("email", "required")
	}
	if !emailRe.MatchString(email) {
		return fieldError("email", "not a valid email address")
	}
	if password == "" {
		return fieldError("password", "required")
	}
	return nil
}

// ValidateCreateProduct checks a create request.
func ValidateCreateProduct(req api.CreateProductRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fieldError("title", "required")
	}
	if len(req.Title) > filter.MaxTitleLength {
		return fieldError("title", fmt.Sprintf("longer than %d characters", filter.MaxTitleLength))
	}
	if req.Price < 0 {
		return fieldError("price", "must not be negative")
	}
	if req.CategoryID <= 0 {
		return fieldError("category", "required")
	}
	if len(req.Images) == 0 {
		return fieldError("images", "at least one image URL is required")
	}
	for _, img := range req.Images {
		if err := validateImageURL(img); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdateProduct checks the fields present in a partial update.
func ValidateUpdateProduct(req api.UpdateProductRequest) error {
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return fieldError("title", "must not be empty")
		}
		if len(*req.Title) > filter.MaxTitleLength {
			return fieldError("title", fmt.Sprintf("longer than %d characters", filter.MaxTitleLength))
		}
	}
	if req.Price != nil && *req.Price < 0 {
		return fieldError("price", "must not be negative")
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return fieldError("category", "must be a positive id")
	}
	for _, img := range req.Images {
		if err := validateImageURL(img); err != nil {
			return err
		}
	}
	return nil
}

func validateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fieldError("images", fmt.Sprintf("%q is not a valid URL", raw))
	}
	return nil
}
