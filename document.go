package menurag

import "strings"

// Metadata is the flattened display record stored alongside each index
// row. Entry i describes the same menu item as index row i.
type Metadata struct {
	RestaurantName   string   `json:"restaurant_name"`
	ItemName         string   `json:"item_name"`
	Location         string   `json:"location"`
	Price            *float64 `json:"price,omitempty"`
	Tags             []string `json:"tags"`
	SpiceLevel       *string  `json:"spice_level,omitempty"`
	GlutenFree       bool     `json:"gluten_free"`
	DishType         DishType `json:"dish_type"`
	ShortDescription *string  `json:"short_description,omitempty"`
	LongDescription  *string  `json:"long_description,omitempty"`
	PreparationTags  []string `json:"preparation_tags"`
	DishTags         []string `json:"dish_tags"`
	CuisineTags      []string `json:"cuisine_tags"`
	DietaryTags      []string `json:"dietary_tags"`
	Allergens        []string `json:"allergens"`
	PopularityScore  *float64 `json:"popularity_score,omitempty"`
	AffordabilityTag string   `json:"affordability_tag,omitempty"`
	FeedbackTags     []string `json:"feedback_tags"`
	Contact          string   `json:"contact"`
	AvailableTime    string   `json:"available_time"`
}

// Clone returns a deep copy of m. Callers may modify the copy freely.
func (m *Metadata) Clone() Metadata {
	other := *m
	other.Price = cloneFloat(m.Price)
	other.PopularityScore = cloneFloat(m.PopularityScore)
	other.SpiceLevel = cloneString(m.SpiceLevel)
	other.ShortDescription = cloneString(m.ShortDescription)
	other.LongDescription = cloneString(m.LongDescription)
	other.Tags = cloneStrings(m.Tags)
	other.PreparationTags = cloneStrings(m.PreparationTags)
	other.DishTags = cloneStrings(m.DishTags)
	other.CuisineTags = cloneStrings(m.CuisineTags)
	other.DietaryTags = cloneStrings(m.DietaryTags)
	other.Allergens = cloneStrings(m.Allergens)
	other.FeedbackTags = cloneStrings(m.FeedbackTags)
	return other
}

// NewMetadata flattens a restaurant and one of its menu items.
func NewMetadata(r *Restaurant, item *MenuItem) Metadata {
	m := Metadata{
		RestaurantName:   r.Name,
		ItemName:         item.Name,
		Location:         r.Location,
		Price:            item.Price,
		Tags:             item.Tags,
		SpiceLevel:       item.SpiceLevel,
		GlutenFree:       item.GlutenFree,
		DishType:         item.Type,
		ShortDescription: item.ShortDescription,
		LongDescription:  item.LongDescription,
		PreparationTags:  item.PreparationTags,
		DishTags:         item.DishTags,
		CuisineTags:      item.CuisineTags,
		DietaryTags:      item.DietaryTags,
		Allergens:        item.Allergens,
		PopularityScore:  item.PopularityScore,
		AffordabilityTag: item.AffordabilityTag,
		FeedbackTags:     item.FeedbackTags,
		Contact:          r.Contact,
		AvailableTime:    r.AvailableTime,
	}
	// Detach from the knowledge base so metadata never aliases it.
	return m.Clone()
}

// SearchText renders the text that is embedded for a menu item.
func SearchText(r *Restaurant, item *MenuItem) string {
	return strings.Join([]string{
		r.Name,
		r.Location,
		item.Name,
		deref(item.ShortDescription),
		deref(item.LongDescription),
		"Tags: " + strings.Join(item.Tags, ", "),
	}, " | ")
}

// BuildDocuments flattens the knowledge base into parallel slices of search
// texts and metadata, restaurants in order and items in menu order.
func BuildDocuments(kb []*Restaurant) ([]string, []Metadata) {
	var n int
	for _, r := range kb {
		n += len(r.Menu)
	}

	docs := make([]string, 0, n)
	metadata := make([]Metadata, 0, n)
	for _, r := range kb {
		for i := range r.Menu {
			item := &r.Menu[i]
			docs = append(docs, SearchText(r, item))
			metadata = append(metadata, NewMetadata(r, item))
		}
	}
	return docs, metadata
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
