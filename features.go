package menurag

import "strings"

// Features are attributes derived from a menu item's description text.
type Features struct {
	SpiceScore      int      `json:"spice_counter"`
	SweetScore      int      `json:"sweet_counter"`
	GlutenFree      bool     `json:"gluten_free"`
	PreparationTags []string `json:"preparation_tags"`
	DishTags        []string `json:"dish_tags"`
	CuisineTags     []string `json:"cuisine_tags"`
	DietaryTags     []string `json:"dietary_tags"`
	Allergens       []string `json:"allergens"`
}

// Tags added to an item when the corresponding feature is detected.
const (
	TagSpicy      = "spicy"
	TagSweet      = "sweet"
	TagGlutenFree = "gluten-free"
)

type weightedTerm struct {
	term   string
	weight int
}

var spiceTerms = []weightedTerm{
	{"spicy", 1}, {"hot", 1}, {"chili", 1}, {"masala", 1}, {"pepper", 1},
	{"jalapeno", 2}, {"curry", 1}, {"szechuan", 2}, {"peri-peri", 2},
	{"wasabi", 3}, {"fiery", 2}, {"zesty", 1}, {"pungent", 2},
}

var sweetTerms = []weightedTerm{
	{"sweet", 1}, {"dessert", 2}, {"sugar", 1}, {"honey", 1}, {"chocolate", 2},
	{"caramel", 2}, {"vanilla", 1}, {"candy", 1}, {"pudding", 1}, {"cake", 2},
	{"brownie", 2}, {"syrupy", 2}, {"custard", 1},
}

var glutenFreePhrases = []string{
	"gluten-free", "gluten free", "gf", "celiac-friendly", "no gluten",
	"without gluten", "wheat-free",
}

var preparationTerms = []string{
	"grilled", "fried", "baked", "steamed", "raw", "smoked", "poached",
	"sautéed", "seared",
}

var dishTerms = []string{
	"savory", "dessert", "appetizer", "main course", "beverage", "snack",
	"healthy", "organic", "comfort food", "street food", "brunch",
}

var cuisineTerms = []string{
	"indian", "chinese", "italian", "mexican", "thai", "japanese",
	"continental", "mediterranean", "american", "fast food", "korean",
	"french", "vietnamese", "greek",
}

var dietaryTerms = []string{
	"vegan", "vegetarian", "keto", "paleo", "low-carb", "low fat",
	"high protein",
}

var allergenTerms = []string{
	"peanut", "nut", "soy", "dairy", "milk", "egg", "shellfish", "wheat",
	"sesame",
}

// ExtractFeatures derives spice and sweetness scores and vocabulary tags
// from description, and adds newly discovered tags to tags.
//
// Matching is plain substring matching on the lower-cased description:
// scores count every non-overlapping occurrence times the term weight, so a
// term inside a longer word ("hot" in "hothouse") still counts. Category
// tags appear at most once regardless of how often they occur. Allergens
// are reported but never added to tags.
func ExtractFeatures(description string, tags *Tags) Features {
	desc := strings.ToLower(description)

	f := Features{
		SpiceScore:      weightedCount(desc, spiceTerms),
		SweetScore:      weightedCount(desc, sweetTerms),
		GlutenFree:      containsAny(desc, glutenFreePhrases),
		PreparationTags: matchTerms(desc, preparationTerms),
		DishTags:        matchTerms(desc, dishTerms),
		CuisineTags:     matchTerms(desc, cuisineTerms),
		DietaryTags:     matchTerms(desc, dietaryTerms),
		Allergens:       matchTerms(desc, allergenTerms),
	}

	if tags == nil {
		return f
	}
	if f.SpiceScore > 0 {
		tags.Add(TagSpicy)
	}
	if f.SweetScore > 0 {
		tags.Add(TagSweet)
	}
	if f.GlutenFree {
		tags.Add(TagGlutenFree)
	}
	for _, group := range [][]string{f.PreparationTags, f.DishTags, f.CuisineTags, f.DietaryTags} {
		for _, tag := range group {
			tags.Add(tag)
		}
	}
	return f
}

func weightedCount(desc string, terms []weightedTerm) int {
	if desc == "" {
		return 0
	}
	var total int
	for _, t := range terms {
		total += strings.Count(desc, t.term) * t.weight
	}
	return total
}

func containsAny(desc string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(desc, p) {
			return true
		}
	}
	return false
}

func matchTerms(desc string, terms []string) []string {
	out := []string{}
	for _, t := range terms {
		if strings.Contains(desc, t) {
			out = append(out, t)
		}
	}
	return out
}
