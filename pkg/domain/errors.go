package domain

import "errors"

// ErrMalformedStep is returned when a step element carries no usable descriptor.
var ErrMalformedStep = errors.New("malformed step")

// ErrNoInstance is returned when a step has no enclosing scrolly instance.
var ErrNoInstance = errors.New("step is not inside a scrolly instance")

// ErrIncompleteSticky is returned when an instance lacks one of its sticky containers.
var ErrIncompleteSticky = errors.New("sticky panel is incomplete")

// ErrUnknownContentType is returned for content types the engine cannot show.
var ErrUnknownContentType = errors.New("unknown content type")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrStepNotFound is returned when no step matches an instance and index.
var ErrStepNotFound = errors.New("step not found")
