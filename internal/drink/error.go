package drink

import "errors"

var (
	ErrNotFound      = errors.New("drink not found")
	ErrLinkNotFound  = errors.New("drink ingredient link not found")
	ErrDuplicateLink = errors.New("ingredient already linked to drink")
)
