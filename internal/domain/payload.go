package domain

// Payload is the full document sent on create and update.
// There are no partial updates: every save carries all fields.
type Payload struct {
	ID             string     `json:"_id,omitempty"` // Empty on create
	Name           string     `json:"name"`
	ParentCategory string     `json:"parentCategory"` // Empty means no parent
	Properties     []Property `json:"properties"`
}
