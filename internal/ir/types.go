package ir

// ListItem is one selectable entry of a List.
// Sub is nil when the source line carried no sub-value.
type ListItem struct {
	Value string  `json:"value"`
	Sub   *string `json:"sub"`
}

// List is a named pool of items produced by the list importer.
// Lists are immutable after import except for deletion.
type List struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []ListItem `json:"items"`
}

// NewListItem creates an item. An empty sub is stored as nil.
func NewListItem(value, sub string) ListItem {
	if sub == "" {
		return ListItem{Value: value}
	}
	return ListItem{Value: value, Sub: &sub}
}

// SubValue returns the item's sub-value or "" when absent.
func (it ListItem) SubValue() string {
	if it.Sub == nil {
		return ""
	}
	return *it.Sub
}

// Schema is an ordered set of fields (an "instance" in the exported blob).
// Field order is significant: sub fields only see parents resolved before them.
type Schema struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FieldIndex returns the position of the field with the given id, or -1.
func (s *Schema) FieldIndex(id string) int {
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return i
		}
	}
	return -1
}

// Lists indexes lists by id for resolution.
// The first list wins when ids collide.
type Lists map[string]*List

// IndexLists builds a Lists index over the given slice.
// The returned index points into the slice; callers must not mutate it
// while the index is in use.
func IndexLists(lists []List) Lists {
	idx := make(Lists, len(lists))
	for i := range lists {
		if _, exists := idx[lists[i].ID]; exists {
			continue
		}
		idx[lists[i].ID] = &lists[i]
	}
	return idx
}

// Get returns the list with the given id. Empty ids never match.
func (l Lists) Get(id string) (*List, bool) {
	if id == "" {
		return nil, false
	}
	list, ok := l[id]
	return list, ok
}
