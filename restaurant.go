package menurag

import "math"

// DishType classifies a single menu item.
type DishType string

// DishType values.
const (
	DishVeg    DishType = "veg"
	DishNonVeg DishType = "non-veg"
)

// RestaurantType classifies a restaurant by the dishes it serves.
type RestaurantType string

// RestaurantType values.
const (
	RestaurantPureVeg      RestaurantType = "pure veg"
	RestaurantNonVeg       RestaurantType = "non-veg"
	RestaurantVegAndNonVeg RestaurantType = "veg and non-veg"
	RestaurantUnknown      RestaurantType = "unknown"
)

// Affordability tiers by price.
const (
	AffordabilityBudget    = "budget"
	AffordabilityMidRange  = "mid-range"
	AffordabilityExpensive = "expensive"
	AffordabilityLuxury    = "luxury"
)

// Feedback tags derived from ratings.
const (
	FeedbackHighlyRated   = "highly rated"
	FeedbackPopular       = "popular"
	FeedbackValueForMoney = "value for money"
)

// Restaurant-level facility features.
const (
	FeatureDelivery        = "delivery available"
	FeatureVegetarian      = "vegetarian options"
	FeatureAllVegetarian   = "100% vegetarian"
	FeatureGlutenFree      = "gluten-free options"
	FeatureCustomizable    = "customizable dishes"
	FeatureHighlyRated     = "highly rated"
	highlyRatedItemsNeeded = 5
)

// unknownField fills restaurant identity fields the scraper did not provide.
const unknownField = "Unknown"

// MenuItem is a normalized menu entry. Optional values that are absent are
// omitted from the JSON encoding entirely; present empty strings are kept.
type MenuItem struct {
	Name             string   `json:"item_name"`
	Price            *float64 `json:"price,omitempty"`
	Tags             []string `json:"tags"`
	SpiceLevel       *string  `json:"spice_level,omitempty"`
	Features
	Type             DishType `json:"type"`
	ShortDescription *string  `json:"short_description,omitempty"`
	LongDescription  *string  `json:"long_description,omitempty"`
	FeedbackTags     []string `json:"feedback_tags"`
	AffordabilityTag string   `json:"affordability_tag,omitempty"`
	IsCustomizable   *bool    `json:"is_customizable,omitempty"`
	PopularityScore  *float64 `json:"popularity_score,omitempty"`
}

// HasFeedbackTag reports whether the item carries the given feedback tag.
func (m *MenuItem) HasFeedbackTag(tag string) bool {
	for _, t := range m.FeedbackTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Restaurant is a normalized restaurant with its menu.
type Restaurant struct {
	Name          string         `json:"restaurant_name"`
	Location      string         `json:"location"`
	AvailableTime string         `json:"available_time"`
	Contact       string         `json:"contact"`
	Menu          []MenuItem     `json:"menu"`
	Type          RestaurantType `json:"type"`
	Features      []string       `json:"features"`
}

// AffordabilityTag returns the price tier for price, or "" when price is nil.
func AffordabilityTag(price *float64) string {
	if price == nil {
		return ""
	}
	p := *price
	switch {
	case p < 100:
		return AffordabilityBudget
	case p < 300:
		return AffordabilityMidRange
	case p < 500:
		return AffordabilityExpensive
	default:
		return AffordabilityLuxury
	}
}

// FeedbackTags returns the rating-derived tags. Both rating and count are
// required; the rules are independent and applied in a fixed order.
func FeedbackTags(rating, count *float64) []string {
	tags := []string{}
	if rating == nil || count == nil {
		return tags
	}
	r, c := *rating, *count
	if r > 4.5 && c > 50 {
		tags = append(tags, FeedbackHighlyRated)
	}
	if r > 4.0 && c > 20 {
		tags = append(tags, FeedbackPopular)
	}
	if r < 3.5 && c > 50 {
		tags = append(tags, FeedbackValueForMoney)
	}
	return tags
}

// PopularityScore returns rating*count rounded to two decimals, or nil when
// either is absent.
func PopularityScore(rating, count *float64) *float64 {
	if rating == nil || count == nil {
		return nil
	}
	v := math.Round(*rating**count*100) / 100
	return &v
}

// NormalizeMenuItem converts one raw item into a MenuItem.
func NormalizeMenuItem(raw RawMenuItem) MenuItem {
	short := deref(raw.SmallDescription)
	long := deref(raw.BigDescription)

	tags := NewTags(raw.Tags...)
	features := ExtractFeatures(short+" "+long, tags)

	price := raw.Price.Float()
	rating := raw.Rating.Float()
	count := raw.RatingCount.Float()

	feedback := FeedbackTags(rating, count)
	affordability := AffordabilityTag(price)
	if affordability != "" {
		tags.Add(affordability)
	}
	for _, tag := range feedback {
		tags.Add(tag)
	}

	dishType := DishNonVeg
	if v := raw.IsVeg.Float(); v != nil && *v == 1 {
		dishType = DishVeg
	}
	tags.Add(string(dishType))

	name := unknownField
	if raw.Name != nil {
		name = *raw.Name
	}

	var customizable *bool
	if v := raw.IsCustomizable.Float(); v != nil {
		b := *v != 0
		customizable = &b
	}

	var spiceLevel *string
	if raw.SpiceLevel != nil {
		s := string(*raw.SpiceLevel)
		spiceLevel = &s
	}

	return MenuItem{
		Name:             name,
		Price:            price,
		Tags:             tags.Slice(),
		SpiceLevel:       spiceLevel,
		Features:         features,
		Type:             dishType,
		ShortDescription: cloneString(raw.SmallDescription),
		LongDescription:  cloneString(raw.BigDescription),
		FeedbackTags:     feedback,
		AffordabilityTag: affordability,
		IsCustomizable:   customizable,
		PopularityScore:  PopularityScore(rating, count),
	}
}

// NormalizeRestaurant converts a raw restaurant into a Restaurant.
// Reports false when the restaurant has no menu items, in which case it
// must be left out of the knowledge base.
func NormalizeRestaurant(raw RawRestaurant) (*Restaurant, bool) {
	menu := make([]MenuItem, 0, len(raw.MenuItems))
	for _, item := range raw.MenuItems {
		menu = append(menu, NormalizeMenuItem(item))
	}
	if len(menu) == 0 {
		return nil, false
	}

	return &Restaurant{
		Name:          orUnknown(raw.Name),
		Location:      orUnknown(raw.Location),
		AvailableTime: orUnknown(raw.AvailableTime),
		Contact:       orUnknown(raw.Contact),
		Menu:          menu,
		Type:          RestaurantTypeOf(menu),
		Features:      RestaurantFeatures(menu),
	}, true
}

// BuildKnowledgeBase normalizes every raw restaurant in order and returns
// the kept restaurants along with the number skipped for having no menu.
func BuildKnowledgeBase(raws []RawRestaurant) (kb []*Restaurant, skipped int) {
	kb = make([]*Restaurant, 0, len(raws))
	for _, raw := range raws {
		r, ok := NormalizeRestaurant(raw)
		if !ok {
			skipped++
			continue
		}
		kb = append(kb, r)
	}
	return kb, skipped
}

// RestaurantTypeOf classifies a restaurant by the dish types on its menu.
func RestaurantTypeOf(menu []MenuItem) RestaurantType {
	hasVeg, hasNonVeg := dishTypes(menu)
	switch {
	case hasVeg && hasNonVeg:
		return RestaurantVegAndNonVeg
	case hasVeg:
		return RestaurantPureVeg
	case hasNonVeg:
		return RestaurantNonVeg
	default:
		return RestaurantUnknown
	}
}

// RestaurantFeatures aggregates facility features over a menu.
func RestaurantFeatures(menu []MenuItem) []string {
	features := []string{}
	hasVeg, hasNonVeg := dishTypes(menu)

	var glutenFree, customizable bool
	var highlyRated int
	for i := range menu {
		item := &menu[i]
		if item.GlutenFree {
			glutenFree = true
		}
		if item.IsCustomizable != nil && *item.IsCustomizable {
			customizable = true
		}
		if item.HasFeedbackTag(FeedbackHighlyRated) {
			highlyRated++
		}
	}

	if len(menu) > 0 {
		features = append(features, FeatureDelivery)
	}
	if hasVeg {
		features = append(features, FeatureVegetarian)
	}
	if hasVeg && !hasNonVeg {
		features = append(features, FeatureAllVegetarian)
	}
	if glutenFree {
		features = append(features, FeatureGlutenFree)
	}
	if customizable {
		features = append(features, FeatureCustomizable)
	}
	if highlyRated > highlyRatedItemsNeeded {
		features = append(features, FeatureHighlyRated)
	}
	return features
}

func dishTypes(menu []MenuItem) (hasVeg, hasNonVeg bool) {
	for _, item := range menu {
		switch item.Type {
		case DishVeg:
			hasVeg = true
		case DishNonVeg:
			hasNonVeg = true
		}
	}
	return hasVeg, hasNonVeg
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orUnknown(s string) string {
	if s == "" {
		return unknownField
	}
	return s
}
