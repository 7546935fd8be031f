package ir

// Resolved is the outcome of resolving one field within one variant.
// Value and RawValue are identical; both are kept for consumers of the
// exported result shape.
type Resolved struct {
	FieldID       string `json:"fieldId"`
	Label         string `json:"label"`
	Value         string `json:"value"`
	RawValue      string `json:"rawValue"`
	FormattedLine string `json:"formattedLine"`
}

// Variant is one generated set of values, one entry per field in field order.
type Variant struct {
	Index       int        `json:"index"` // 1-based
	Entries     []Resolved `json:"entries"`
	OutputLines []string   `json:"outputLines"`
}

// Lookup returns the last entry resolved for the field id.
func (v Variant) Lookup(fieldID string) (Resolved, bool) {
	for i := len(v.Entries) - 1; i >= 0; i-- {
		if v.Entries[i].FieldID == fieldID {
			return v.Entries[i], true
		}
	}
	return Resolved{}, false
}

// Result is the output of one generation request.
type Result struct {
	Variants []Variant `json:"variants"`
}
