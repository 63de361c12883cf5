package domain

import "errors"

// ErrValidation indicates user input that is malformed or out of domain.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates a profile key absent from the catalog.
var ErrNotFound = errors.New("not found")

// ErrPersistence indicates the settings file could not be read or written.
var ErrPersistence = errors.New("settings persistence failed")

// ErrSourceUnavailable indicates an external rate source returned no usable data.
var ErrSourceUnavailable = errors.New("rate source unavailable")
