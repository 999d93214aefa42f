package mock

import "github.com/fwojciec/menurag"

var _ menurag.MenuExtractor = (*MenuExtractor)(nil)

// MenuExtractor is a mock implementation of menurag.MenuExtractor.
type MenuExtractor struct {
	ExtractMenuItemsFn func(html string) ([]menurag.RawMenuItem, error)
}

func (e *MenuExtractor) ExtractMenuItems(html string) ([]menurag.RawMenuItem, error) {
	return e.ExtractMenuItemsFn(html)
}
