package ingredient

import "errors"

var ErrNotFound = errors.New("ingredient not found")
