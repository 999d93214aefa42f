package mock

import "github.com/fwojciec/menurag"

var _ menurag.Converter = (*Converter)(nil)

// Converter is a mock implementation of menurag.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
