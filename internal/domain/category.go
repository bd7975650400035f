package domain

// Property is a named attribute definition attached to a category.
type Property struct {
	Name   string   `json:"name"`   // Label like "color"
	Values []string `json:"values"` // Allowed values, order matters
}

type Category struct {
	ID         string     `json:"_id,omitempty"` // Assigned by the backend
	Name       string     `json:"name"`
	Parent     *ParentRef `json:"parent,omitempty"`
	Properties []Property `json:"properties"`
}

// ParentID returns the parent's id or an empty string for a root category.
func (c Category) ParentID() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.ID
}

// Clone returns a deep copy so callers can hold it without aliasing the list.
func (c Category) Clone() Category {
	clone := c
	if c.Parent != nil {
		parent := *c.Parent
		clone.Parent = &parent
	}
	if c.Properties != nil {
		clone.Properties = make([]Property, len(c.Properties))
		for i, p := range c.Properties {
			clone.Properties[i] = Property{
				Name:   p.Name,
				Values: append([]string(nil), p.Values...),
			}
		}
	}
	return clone
}
