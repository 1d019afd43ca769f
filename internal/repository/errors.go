// Package repository holds the MongoDB data access layer. Sentinel errors
// defined here are reused across repositories so higher layers such as the
// diary service and the console session can distinguish failure scenarios
// without string matching.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no document, e.g. an
// unknown username or a user with no friend record yet.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned by user creation when the username is
// already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned by user creation when the email is already
// registered.
var ErrEmailExists = errors.New("email already exists")
