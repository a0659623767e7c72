package sentinel

import "errors"

// ErrNotFound is returned (optionally wrapped) by every store when a record is
// missing. Services translate it into a domain error exactly once.
var ErrNotFound = errors.New("not found")
