// Package jsonapi holds the minimal JSON:API envelope types the backend
// speaks and helpers for resolving side-loaded resources.
package jsonapi

import "encoding/json"

// Resource is a single JSON:API resource object. Attributes are kept raw so
// each call site can decode them into its own typed struct.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Relationship is the linkage section of a resource. Data may be a single
// identifier or a list depending on cardinality.
type Relationship struct {
	Data json.RawMessage `json:"data"`
}

// Identifier is a (type, id) pair referencing another resource.
type Identifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ListDocument is the envelope of list responses.
type ListDocument struct {
	Data     []Resource `json:"data"`
	Included []Resource `json:"included,omitempty"`
}

// SingleDocument is the envelope of single-resource responses.
type SingleDocument struct {
	Data     Resource   `json:"data"`
	Included []Resource `json:"included,omitempty"`
}

// DecodeAttributes unmarshals the resource's attributes into v.
func (r Resource) DecodeAttributes(v any) error {
	if len(r.Attributes) == 0 {
		return nil
	}
	return json.Unmarshal(r.Attributes, v)
}

// One decodes the relationship as a single identifier. ok is false when the
// linkage is absent or null.
func (rel Relationship) One() (Identifier, bool) {
	var id Identifier
	if len(rel.Data) == 0 || string(rel.Data) == "null" {
		return id, false
	}
	if err := json.Unmarshal(rel.Data, &id); err != nil {
		return Identifier{}, false
	}
	return id, true
}

// Many decodes the relationship as a list of identifiers.
func (rel Relationship) Many() []Identifier {
	var ids []Identifier
	if len(rel.Data) == 0 {
		return nil
	}
	_ = json.Unmarshal(rel.Data, &ids)
	return ids
}

// FindIncluded returns the side-loaded resource matching (typ, id), or nil.
func FindIncluded(included []Resource, typ, id string) *Resource {
	for i := range included {
		if included[i].Type == typ && included[i].ID == id {
			return &included[i]
		}
	}
	return nil
}

// FindAllIncluded returns every side-loaded resource of the given type whose
// id appears in ids, in included order.
func FindAllIncluded(included []Resource, typ string, ids []string) []Resource {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []Resource
	for _, res := range included {
		if res.Type != typ {
			continue
		}
		if _, ok := wanted[res.ID]; ok {
			out = append(out, res)
		}
	}
	return out
}
