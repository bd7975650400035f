package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storeadmin/catman/internal/client"
	"storeadmin/catman/internal/domain"
	"storeadmin/catman/internal/form"

	log "github.com/sirupsen/logrus"
)

var ErrNoCategory = errors.New("category has no id")

// SaveResult describes a completed save.
type SaveResult struct {
	Created  bool             // false means an update
	Category *domain.Category // Echoed by the backend, nil if it did not echo
	Reloaded bool             // The list was refreshed with a full Load
}

// Manager holds the category list and the form draft. The list is the only
// source for rendering and is replaced wholesale on every Load. The draft never
// aliases list entries.
type Manager struct {
	client    client.CategoryClient
	confirmer Confirmer

	mu         sync.Mutex
	categories domain.Categories
	loaded     bool // at least one Load succeeded
	draft      form.Draft
	editing    *domain.Category
}

func NewManager(client client.CategoryClient, confirmer Confirmer) *Manager {
	return &Manager{
		client:    client,
		confirmer: confirmer,
	}
}

// Load fetches all categories and replaces the held list. On failure the
// list is left as it was.
func (m *Manager) Load(ctx context.Context) error {
	categories, err := m.client.List(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load categories: %v", err)
		return fmt.Errorf("failed to load categories: %w", err)
	}

	m.mu.Lock()
	m.categories = categories
	m.loaded = true
	m.mu.Unlock()

	log.Debugf("Loaded %d categories", len(categories))
	return nil
}

func (m *Manager) Categories() domain.Categories {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categories.Clone()
}

func (m *Manager) Draft() form.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.Clone()
}

// Editing returns the category being edited, or nil in create mode.
func (m *Manager) Editing() *domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing == nil {
		return nil
	}
	editing := m.editing.Clone()
	return &editing
}

// StartEdit switches to edit mode for c and copies its fields into the draft.
func (m *Manager) StartEdit(c domain.Category) {
	editing := c.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = form.FromCategory(editing)
	m.editing = &editing
}

// CancelEdit clears the draft and returns to create mode.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// Restore reinstalls a stashed draft. Before the list has loaded the edit
// target is kept as a stub carrying only its id, so a later save still updates
// it. Once loaded, an editingID that is gone from the list drops the draft to
// create mode and Restore reports false.
func (m *Manager) Restore(draft form.Draft, editingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.draft = draft.Clone()
	m.editing = nil
	if editingID == "" {
		return true
	}

	c, ok := m.categories.Find(editingID)
	if !ok && !m.loaded {
		log.Debugf("Category list not loaded, keeping %s as edit target", editingID)
		m.editing = &domain.Category{ID: editingID, Name: draft.Name}
		return true
	}
	if !ok {
		log.Warnf("⚠️ Stashed draft was editing %s which no longer exists, switching to create mode", editingID)
		return false
	}
	editing := c.Clone()
	m.editing = &editing
	return true
}

// Save sends the draft as a create or a full update. The draft is cleared
// only when the backend accepted it; on failure it is kept for another try.
func (m *Manager) Save(ctx context.Context) (SaveResult, error) {
	m.mu.Lock()
	draft := m.draft.Clone()
	var id string
	if m.editing != nil {
		id = m.editing.ID
	}
	m.mu.Unlock()

	result := SaveResult{Created: id == ""}

	var (
		saved *domain.Category
		err   error
	)
	if result.Created {
		saved, err = m.client.Create(ctx, draft.Payload(""))
	} else {
		saved, err = m.client.Update(ctx, draft.Payload(id))
	}
	if err != nil {
		log.Errorf("❌ Failed to save category %q: %v", draft.Name, err)
		return result, fmt.Errorf("failed to save category %q: %w", draft.Name, err)
	}

	m.mu.Lock()
	m.reset()
	if saved != nil {
		m.categories = m.categories.Upsert(saved.Clone())
	}
	m.mu.Unlock()

	result.Category = saved
	if saved == nil {
		result.Reloaded = true
		if err := m.Load(ctx); err != nil {
			return result, err
		}
	}

	if result.Created {
		log.Infof("✅ Created category %q", draft.Name)
	} else {
		log.Infof("✅ Updated category %q (%s)", draft.Name, id)
	}
	return result, nil
}

// Remove asks for confirmation and deletes c, then reloads the list.
// It reports whether the delete was issued.
func (m *Manager) Remove(ctx context.Context, c domain.Category) (bool, error) {
	if c.ID == "" {
		return false, ErrNoCategory
	}

	confirmed, err := m.confirmer.Confirm(ctx, deleteDialog(c.Name))
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	if !confirmed {
		log.Debugf("Delete of %s cancelled", c.ID)
		return false, nil
	}

	if err := m.client.Delete(ctx, c.ID); err != nil {
		log.Errorf("❌ Failed to delete category %s: %v", c.ID, err)
		return false, fmt.Errorf("failed to delete category %q: %w", c.Name, err)
	}
	log.Infof("🗑️ Deleted category %q (%s)", c.Name, c.ID)

	return true, m.Load(ctx)
}

func (m *Manager) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Name = name
}

// SetParent sets the draft's parent id. An empty id means no parent.
func (m *Manager) SetParent(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.ParentID = id
}

func (m *Manager) AddPropertyRow() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.AddRow()
}

func (m *Manager) UpdatePropertyName(index int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.SetRowName(index, name)
}

func (m *Manager) UpdatePropertyValues(index int, values string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.SetRowValues(index, values)
}

func (m *Manager) RemovePropertyRow(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft.RemoveRow(index)
}

func (m *Manager) reset() {
	m.draft = form.Draft{}
	m.editing = nil
}
