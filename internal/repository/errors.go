package repository

import "errors"

// ErrNotFound signals that the requested record does not exist. Every
// repository implementation maps its backend's miss condition to this.
var ErrNotFound = errors.New("record not found")
