package repository

import "errors"

// ErrNotFound hides gorm.ErrRecordNotFound from callers.
var ErrNotFound = errors.New("record not found")
