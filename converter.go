package menurag

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a menu item description,
	// into Markdown. Returns EINVALID for empty input.
	Convert(html string) (string, error)
}
