package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrReviewNotFound     = errors.New("models: review not found")
	ErrInvalidStatus      = errors.New("models: invalid review status")
	ErrReviewNotApproved  = errors.New("models: review is not approved")
	ErrBookingNotFound    = errors.New("models: booking not found")
	ErrAdminNotFound      = errors.New("models: admin not found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
)

// ValidationError reports the specific fields that were missing or out of
// range on a submit or import request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}
