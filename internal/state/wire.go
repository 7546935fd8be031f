package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/varigen/internal/engine"
	"github.com/roach88/varigen/internal/ir"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// wireField is the exported form of a field.
// Bounds are omitted when unset or when the type has none.
type wireField struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Type       ir.FieldType `json:"type"`
	Min        *float64     `json:"min,omitempty"`
	Max        *float64     `json:"max,omitempty"`
	ListID     string       `json:"listId"`
	SubFieldID string       `json:"subFieldId"`
	Format     string       `json:"format"`
}

type wireSchema struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Fields []wireField `json:"fields"`
}

type wireState struct {
	Lists            []ir.List    `json:"lists"`
	Instances        []wireSchema `json:"instances"`
	ActiveInstanceID string       `json:"activeInstanceId"`
	SingleLine       bool         `json:"singleLine"`
	VariantCount     int          `json:"variantCount"`
}

func boundPtr(b ir.Bound) *float64 {
	v, ok := b.Float()
	if !ok {
		return nil
	}
	return &v
}

func toWireField(f ir.Field) wireField {
	w := wireField{
		ID:     f.ID,
		Label:  f.Label,
		Type:   f.Type(),
		Format: f.Format,
	}
	if min, max, ok := f.Range(); ok {
		w.Min, w.Max = boundPtr(min), boundPtr(max)
	}
	if listID, ok := f.ListRef(); ok {
		w.ListID = listID
	}
	if parentID, ok := f.ParentRef(); ok {
		w.SubFieldID = parentID
	}
	return w
}

// Encode writes the state as JSON indented with two spaces.
func Encode(s *State) ([]byte, error) {
	w := wireState{
		Lists:            make([]ir.List, len(s.Lists)),
		Instances:        make([]wireSchema, len(s.Instances)),
		ActiveInstanceID: s.ActiveInstanceID,
		SingleLine:       s.SingleLine,
		VariantCount:     s.VariantCount,
	}
	for i, l := range s.Lists {
		if l.Items == nil {
			l.Items = []ir.ListItem{}
		}
		w.Lists[i] = l
	}
	for i, schema := range s.Instances {
		fields := make([]wireField, len(schema.Fields))
		for j, f := range schema.Fields {
			fields[j] = toWireField(f)
		}
		w.Instances[i] = wireSchema{ID: schema.ID, Name: schema.Name, Fields: fields}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an exported or stored blob into a new State.
//
// Malformed input (invalid JSON, a non-object document, or lists,
// instances or fields that are not arrays) is rejected with an
// *ImportError and nothing is returned. Everything else is normalized:
// records are defaulted attribute by attribute, never rejected.
func Decode(data []byte, ids IDGenerator) (*State, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if err := validateShape(data); err != nil {
		return nil, err
	}

	var top record
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &ImportError{Message: MsgInvalidJSON, Err: err}
	}

	s := &State{}
	s.SetIDGenerator(ids)

	for _, raw := range asArray(top["lists"]) {
		s.Lists = append(s.Lists, s.normalizeList(asRecord(raw)))
	}

	instances := asArray(top["instances"])
	switch {
	case len(instances) > 0:
		for _, raw := range instances {
			s.Instances = append(s.Instances, s.normalizeSchema(asRecord(raw)))
		}
		s.ActiveInstanceID = looseString(top["activeInstanceId"])
	case asArray(top["fields"]) != nil:
		// Legacy blob: a bare field list becomes the default schema.
		s.Instances = []ir.Schema{{
			ID:     s.newID(),
			Name:   DefaultSchemaName,
			Fields: s.normalizeFields(asArray(top["fields"])),
		}}
	}

	s.SingleLine = truthy(top["singleLine"])
	s.VariantCount = engine.CoerceCount(jsNumber(top["variantCount"]))

	s.EnsureInstances()
	return s, nil
}

func (s *State) idOrNew(raw json.RawMessage) string {
	if id := looseString(raw); id != "" {
		return id
	}
	return s.newID()
}

func (s *State) normalizeList(r record) ir.List {
	list := ir.List{
		ID:    s.idOrNew(r["id"]),
		Name:  looseString(r["name"]),
		Items: []ir.ListItem{},
	}
	for _, raw := range asArray(r["items"]) {
		if !isObject(raw) {
			continue
		}
		item := asRecord(raw)
		list.Items = append(list.Items, ir.NewListItem(looseString(item["value"]), looseString(item["sub"])))
	}
	return list
}

func (s *State) normalizeSchema(r record) ir.Schema {
	return ir.Schema{
		ID:     s.idOrNew(r["id"]),
		Name:   looseString(r["name"]),
		Fields: s.normalizeFields(asArray(r["fields"])),
	}
}

func (s *State) normalizeFields(raws []json.RawMessage) []ir.Field {
	fields := make([]ir.Field, 0, len(raws))
	for _, raw := range raws {
		fields = append(fields, s.normalizeField(asRecord(raw)))
	}
	return fields
}

// normalizeField builds a Field from a loose record. Unknown or missing
// types become number; a blank format falls back to the legacy
// labelFormat/valueFormat pair, then to the default format.
func (s *State) normalizeField(r record) ir.Field {
	t := ir.FieldType(looseString(r["type"]))
	if !ir.ValidFieldTypes[t] {
		t = ir.FieldNumber
	}
	attrs := fieldAttrs{
		min:      ir.NewBound(jsNumber(r["min"])),
		max:      ir.NewBound(jsNumber(r["max"])),
		listID:   looseString(r["listId"]),
		parentID: looseString(r["subFieldId"]),
	}
	return ir.Field{
		ID:     s.idOrNew(r["id"]),
		Label:  looseString(r["label"]),
		Format: normalizeFormat(r),
		Spec:   buildSpec(t, attrs),
	}
}

func normalizeFormat(r record) string {
	format := looseString(r["format"])
	if format != "" {
		return format
	}
	labelFormat := looseString(r["labelFormat"])
	valueFormat := looseString(r["valueFormat"])
	if labelFormat != "" || valueFormat != "" {
		labelPart := strings.TrimSpace(labelFormat)
		if labelPart == "" {
			labelPart = engine.PlaceholderLabel
		}
		valuePart := strings.TrimSpace(valueFormat)
		if valuePart == "" {
			valuePart = engine.PlaceholderValue
		}
		return labelPart + ": " + valuePart
	}
	return ir.DefaultFormat
}
