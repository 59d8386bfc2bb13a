package service

import "errors"

// MinPasswordLength is the minimum accepted password length, enforced at
// registration and password reset.
const MinPasswordLength = 8

// Content length limits, counted in characters after trimming.
const (
	MaxTitleLength   = 200
	MaxCommentLength = 2000
)

// Validation errors. All map to HTTP 400 at the transport boundary.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrAllFieldsRequired   = errors.New("all fields are required")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrNoFieldsToUpdate    = errors.New("no fields provided to update")
	ErrTitleAndBlogNeeded  = errors.New("title and blog are required")
	ErrTitleTooLong        = errors.New("title must be at most 200 characters")
	ErrCommentRequired     = errors.New("comment is required")
	ErrCommentTooLong      = errors.New("comment must be at most 2000 characters")
)

// ErrInvalidCredentials is returned on any login failure, whether the
// identifier was unknown or the password wrong. The two cases are
// deliberately indistinguishable to prevent identity enumeration.
var ErrInvalidCredentials = errors.New("incorrect credentials")

// Token lifecycle errors returned by CreateToken and ParseToken.
var (
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenInvalid          = errors.New("token is invalid")
)
