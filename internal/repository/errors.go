// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure
// scenarios. For example, ErrEmailExists indicates a registration
// conflict, while ErrLectureNotFound signals a lookup for a lecture
// that does not exist. Session lookups return
// lottery.ErrSessionNotFound directly so the engine and the HTTP
// layer share one sentinel for that case.
package repository

import "errors"

// ErrEmailExists is returned when a registration attempts to reuse
// an email address. Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")

// ErrLectureNotFound indicates that a lecture was not located in the
// DB. Handlers should translate this into an HTTP 404 response.
var ErrLectureNotFound = errors.New("lecture not found")
