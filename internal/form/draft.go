// Package form adapts categories to editable text fields. Property values are
// edited as one comma separated string; the joining and splitting lives here
// and nowhere else.
package form

import (
	"errors"
	"fmt"
	"strings"

	"storeadmin/catman/internal/domain"
)

const valueSeparator = ","

var ErrRowIndex = errors.New("property row index out of range")

// PropertyRow is one editable property line.
type PropertyRow struct {
	Name   string `json:"name"`
	Values string `json:"values"` // Comma separated
}

// Draft holds the uncommitted contents of the category form.
type Draft struct {
	Name       string        `json:"name"`
	ParentID   string        `json:"parent_id"`
	Properties []PropertyRow `json:"properties"`
}

// FromCategory copies c into a fresh draft.
func FromCategory(c domain.Category) Draft {
	draft := Draft{
		Name:     c.Name,
		ParentID: c.ParentID(),
	}
	if len(c.Properties) > 0 {
		draft.Properties = make([]PropertyRow, len(c.Properties))
		for i, p := range c.Properties {
			draft.Properties[i] = PropertyRow{
				Name:   p.Name,
				Values: JoinValues(p.Values),
			}
		}
	}
	return draft
}

// Payload builds the document to send. id is empty in create mode.
func (d Draft) Payload(id string) domain.Payload {
	properties := make([]domain.Property, len(d.Properties))
	for i, row := range d.Properties {
		properties[i] = domain.Property{
			Name:   row.Name,
			Values: SplitValues(row.Values),
		}
	}
	return domain.Payload{
		ID:             id,
		Name:           d.Name,
		ParentCategory: d.ParentID,
		Properties:     properties,
	}
}

func (d Draft) IsZero() bool {
	return d.Name == "" && d.ParentID == "" && len(d.Properties) == 0
}

// Clone returns a copy that shares no rows with d.
func (d Draft) Clone() Draft {
	clone := d
	if d.Properties != nil {
		clone.Properties = append([]PropertyRow(nil), d.Properties...)
	}
	return clone
}

func (d *Draft) AddRow() {
	d.Properties = append(d.Properties, PropertyRow{})
}

func (d *Draft) SetRowName(index int, name string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Properties[index].Name = name
	return nil
}

func (d *Draft) SetRowValues(index int, values string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Properties[index].Values = values
	return nil
}

func (d *Draft) RemoveRow(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	rows := make([]PropertyRow, 0, len(d.Properties)-1)
	rows = append(rows, d.Properties[:index]...)
	d.Properties = append(rows, d.Properties[index+1:]...)
	return nil
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.Properties) {
		return fmt.Errorf("%w: %d (have %d)", ErrRowIndex, index, len(d.Properties))
	}
	return nil
}

// JoinValues renders values for the text field.
func JoinValues(values []string) string {
	return strings.Join(values, valueSeparator)
}

// SplitValues parses the text field back into values. Empty entries are
// kept as is. A value that itself contained a comma comes back as two.
func SplitValues(text string) []string {
	return strings.Split(text, valueSeparator)
}
