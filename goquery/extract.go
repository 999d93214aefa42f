// Package goquery implements menurag.MenuExtractor by reading the JSON
// fragments that restaurant pages embed in their <script> elements.
package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/menurag"
)

// Ensure MenuExtractor implements menurag.MenuExtractor at compile time.
var _ menurag.MenuExtractor = (*MenuExtractor)(nil)

// objectPattern matches the shortest brace-delimited span. Nested objects
// are cut at the first closing brace and fail to decode, so only flat
// product records are recognized.
var objectPattern = regexp.MustCompile(`(?s)\{.*?\}`)

// productKey marks a JSON object as a menu item.
const productKey = "product_name"

// MenuExtractor lifts menu items out of server-rendered restaurant pages.
type MenuExtractor struct {
	conv menurag.Converter
}

// Option configures a MenuExtractor.
type Option func(*MenuExtractor)

// WithConverter converts descriptions containing HTML markup with conv.
func WithConverter(conv menurag.Converter) Option {
	return func(e *MenuExtractor) {
		e.conv = conv
	}
}

// NewMenuExtractor creates a new MenuExtractor.
func NewMenuExtractor(opts ...Option) *MenuExtractor {
	e := &MenuExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractMenuItems returns every JSON object with a product_name key found
// in the page's script bodies, in document order. Fragments that are not
// valid JSON objects are ignored.
func (e *MenuExtractor) ExtractMenuItems(html string) ([]menurag.RawMenuItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, menurag.Errorf(menurag.EINVALID, "failed to parse HTML: %v", err)
	}

	items := []menurag.RawMenuItem{}
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		for _, fragment := range objectPattern.FindAllString(sel.Text(), -1) {
			item, ok := decodeItem(fragment)
			if !ok {
				continue
			}
			e.convertDescriptions(&item)
			items = append(items, item)
		}
	})
	return items, nil
}

func decodeItem(fragment string) (menurag.RawMenuItem, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(fragment), &fields); err != nil {
		return menurag.RawMenuItem{}, false
	}
	if _, ok := fields[productKey]; !ok {
		return menurag.RawMenuItem{}, false
	}

	var item menurag.RawMenuItem
	if err := json.Unmarshal([]byte(fragment), &item); err != nil {
		return menurag.RawMenuItem{}, false
	}
	return item, true
}

func (e *MenuExtractor) convertDescriptions(item *menurag.RawMenuItem) {
	if e.conv == nil {
		return
	}
	for _, desc := range []*string{item.SmallDescription, item.BigDescription} {
		if desc == nil || !strings.Contains(*desc, "<") {
			continue
		}
		if md, err := e.conv.Convert(*desc); err == nil {
			*desc = strings.TrimSpace(md)
		}
	}
}
