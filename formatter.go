package menurag

import (
	"fmt"
	"strconv"
	"strings"
)

// notAvailable is rendered in place of absent values.
const notAvailable = "N/A"

// Result is a retrieved menu item with its similarity to the query.
// Higher scores are more similar.
type Result struct {
	Metadata
	SimilarityScore float32 `json:"similarity_score"`
}

// FormatResults renders results as numbered context blocks for a language
// model prompt. Blocks keep the given order and are separated by blank lines.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i := range results {
		parts = append(parts, formatResult(i+1, &results[i]))
	}

	return strings.Join(parts, "\n\n")
}

func formatResult(n int, r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Result %d:\n", n)
	field(&b, "Restaurant", r.RestaurantName)
	field(&b, "Item", r.ItemName)
	field(&b, "Price", formatFloat(r.Price))
	field(&b, "Description", joinNonEmpty(" ",
		strings.TrimSpace(deref(r.ShortDescription)),
		strings.TrimSpace(deref(r.LongDescription))))
	field(&b, "Location", r.Location)
	field(&b, "Gluten Free", strconv.FormatBool(r.GlutenFree))
	field(&b, "Affordability", r.AffordabilityTag)
	field(&b, "Dish Type", string(r.DishType))
	field(&b, "Tags", strings.Join(r.Tags, ", "))
	field(&b, "Dietary", strings.Join(r.DietaryTags, ", "))
	field(&b, "Popularity Score", formatFloat(r.PopularityScore))
	field(&b, "Available Time", r.AvailableTime)
	field(&b, "Contact", r.Contact)
	return strings.TrimSuffix(b.String(), "\n")
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		value = notAvailable
	}
	b.WriteString("  ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
