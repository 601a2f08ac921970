package dish

import "errors"

var (
	ErrNotFound      = errors.New("dish not found")
	ErrLinkNotFound  = errors.New("dish ingredient link not found")
	ErrDuplicateLink = errors.New("ingredient already linked to dish")
)
