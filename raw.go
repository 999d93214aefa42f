package menurag

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRestaurant is one scraped restaurant as emitted by the scraper.
type RawRestaurant struct {
	Name          string        `json:"restaurant_name,omitempty"`
	Location      string        `json:"location,omitempty"`
	AvailableTime string        `json:"available_time,omitempty"`
	Contact       string        `json:"contact,omitempty"`
	MenuItems     []RawMenuItem `json:"menu_items"`
}

// RawMenuItem is an untyped menu entry lifted from a page's embedded JSON.
// Every field is optional; nil means the source did not provide it.
type RawMenuItem struct {
	ProductID        *Label   `json:"product_id,omitempty"`
	Name             *string  `json:"product_name,omitempty"`
	SmallDescription *string  `json:"small_description,omitempty"`
	BigDescription   *string  `json:"big_description,omitempty"`
	Price            *Number  `json:"price,omitempty"`
	Rating           *Number  `json:"rating,omitempty"`
	RatingCount      *Number  `json:"count_of_rating,omitempty"`
	IsVeg            *Number  `json:"is_veg,omitempty"`
	IsCustomizable   *Number  `json:"is_customizable,omitempty"`
	SpiceLevel       *Label   `json:"spice_level,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// Number is a numeric value that tolerates the shapes scraped JSON uses:
// plain numbers, numeric strings and booleans (true=1, false=0).
// Values that cannot be read as a number are treated as absent.
type Number struct {
	value float64
	valid bool
}

// NewNumber returns a present Number holding v.
func NewNumber(v float64) *Number {
	return &Number{value: v, valid: true}
}

// Float returns the value, or nil when n is nil or unparseable.
func (n *Number) Float() *float64 {
	if n == nil || !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	n.value, n.valid = parseNumber(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func parseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return 0, false
	case bytes.Equal(data, []byte("true")):
		return 1, true
	case bytes.Equal(data, []byte("false")):
		return 0, true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		return parseFloat(strings.TrimSpace(s))
	}
	return parseFloat(string(data))
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Label is a free-form scalar kept as text. Numbers are stored in their
// JSON spelling.
type Label string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	*l = Label(data)
	return nil
}
