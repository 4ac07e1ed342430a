package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// This allows the repository to communicate outcomes in a database-agnostic way.

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// query for a single document finds no rows, or a delete affects none.
//
// The service layer checks for this error and translates it into
// `app_errors.ErrNotFound`, which keeps `sql.ErrNoRows` out of business logic.
var ErrNotFound = errors.New("repository: not found")
