package menurag

// Tags is an insertion-ordered set of tag strings.
type Tags struct {
	list []string
	seen map[string]struct{}
}

// NewTags returns a tag set holding the given tags in order, dropping
// duplicates.
func NewTags(tags ...string) *Tags {
	t := &Tags{seen: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		t.Add(tag)
	}
	return t
}

// Add appends tag unless it is already present. Reports whether it was added.
func (t *Tags) Add(tag string) bool {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[tag]; ok {
		return false
	}
	t.seen[tag] = struct{}{}
	t.list = append(t.list, tag)
	return true
}

// Has reports whether tag is in the set.
func (t *Tags) Has(tag string) bool {
	_, ok := t.seen[tag]
	return ok
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return len(t.list)
}

// Slice returns a copy of the tags in insertion order. Never nil.
func (t *Tags) Slice() []string {
	out := make([]string, len(t.list))
	copy(out, t.list)
	return out
}
