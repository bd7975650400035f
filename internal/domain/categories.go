package domain

// Categories is the ordered list rendered by the manager.
type Categories []Category

// Find returns the category with the given id.
func (cs Categories) Find(id string) (Category, bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Upsert replaces the category with the same id in place or appends it.
// Children carrying the populated parent name pick up c's new name.
func (cs Categories) Upsert(c Category) Categories {
	for i := range cs {
		if p := cs[i].Parent; p != nil && p.ID == c.ID && p.Name != "" {
			cs[i].Parent = &ParentRef{ID: p.ID, Name: c.Name}
		}
	}
	for i := range cs {
		if cs[i].ID == c.ID {
			cs[i] = c
			return cs
		}
	}
	return append(cs, c)
}

// ParentName resolves the display name of c's parent. Populated parents win,
// bare ids are looked up in the list.
func (cs Categories) ParentName(c Category) string {
	if c.Parent == nil {
		return ""
	}
	if c.Parent.Name != "" {
		return c.Parent.Name
	}
	if parent, ok := cs.Find(c.Parent.ID); ok {
		return parent.Name
	}
	return ""
}

func (cs Categories) Clone() Categories {
	if cs == nil {
		return nil
	}
	clone := make(Categories, len(cs))
	for i, c := range cs {
		clone[i] = c.Clone()
	}
	return clone
}
