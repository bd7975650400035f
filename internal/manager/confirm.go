package manager

import "context"

// Dialog describes a confirmation prompt.
type Dialog struct {
	Title          string
	Text           string
	CancelLabel    string
	ConfirmLabel   string
	ReverseButtons bool // Show confirm before cancel
}

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, dialog Dialog) (bool, error)
}

func deleteDialog(name string) Dialog {
	return Dialog{
		Title:          "Are you sure?",
		Text:           "Do you want to delete " + name + "?",
		CancelLabel:    "Cancel",
		ConfirmLabel:   "Yes, Delete",
		ReverseButtons: true,
	}
}
