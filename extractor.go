package menurag

// MenuExtractor lifts menu items out of a restaurant page.
type MenuExtractor interface {
	// ExtractMenuItems returns every menu item embedded in html, in
	// document order. A page without menu data yields an empty slice.
	ExtractMenuItems(html string) ([]RawMenuItem, error)
}
