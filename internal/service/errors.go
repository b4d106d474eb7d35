package service

import "github.com/pkg/errors"

// Domain failure sentinels. Services wrap these with the entity identity so
// the message survives to the response body; the handler classifies with
// errors.Is and maps them to transport statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
