// Package htmltomarkdown turns HTML menu descriptions into short Markdown
// text suitable for embedding.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/menurag"
)

// Ensure Converter implements menurag.Converter at compile time.
var _ menurag.Converter = (*Converter)(nil)

// droppedElements never carry description text.
const droppedElements = "img, picture, svg, video, iframe, script, style, noscript"

// Converter renders description fragments as Markdown. Media is dropped and
// links are reduced to their text, so only wording and emphasis remain.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Convert renders an HTML description fragment as trimmed Markdown.
// Returns EINVALID for blank input.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", menurag.Errorf(menurag.EINVALID, "empty HTML input")
	}

	body, err := stripFragment(html)
	if err != nil {
		return "", err
	}

	md, err := c.conv.ConvertString(body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

func stripFragment(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", menurag.Errorf(menurag.EMALFORMED, "parse description: %v", err)
	}

	doc.Find(droppedElements).Remove()
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		inner, _ := a.Html()
		a.ReplaceWithHtml(inner)
	})

	return doc.Find("body").Html()
}
