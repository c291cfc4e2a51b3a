package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLoginRequired indicates a mutation was attempted without a viewer.
	ErrLoginRequired = errors.New("login required")

	// ErrForbidden indicates the viewer may not act on the comment.
	ErrForbidden = errors.New("not allowed")

	// ErrEmptyComment indicates the user submitted blank content.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrInvalidOrder indicates an unknown sort order.
	ErrInvalidOrder = errors.New("invalid comment order")
)
