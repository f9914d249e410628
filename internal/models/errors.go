package models

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)
	ErrServiceNotFound = fmt.Errorf("%w: service", ErrNotFound)
	ErrReviewNotFound  = fmt.Errorf("%w: review", ErrNotFound)
	ErrHashtagNotFound = fmt.Errorf("%w: hashtag", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrDuplicateEmail    = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrAlreadyReviewed   = fmt.Errorf("%w: service already reviewed by this client", ErrConflict)

	ErrInvalidRating   = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	ErrSelfReview      = fmt.Errorf("%w: cannot review your own service", ErrInvalidArgument)
	ErrEmptyTag        = fmt.Errorf("%w: empty hashtag", ErrInvalidArgument)
	ErrInvalidSort     = fmt.Errorf("%w: unknown sort option", ErrInvalidArgument)
	ErrInvalidFilter   = fmt.Errorf("%w: unknown filter_type", ErrInvalidArgument)
	ErrInvalidLocation = fmt.Errorf("%w: coordinates out of range", ErrInvalidArgument)

	ErrNotOwner = fmt.Errorf("%w: not the owner", ErrForbidden)
)
