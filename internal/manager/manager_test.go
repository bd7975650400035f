package manager

import (
	"context"
	"errors"
	"testing"

	"storeadmin/catman/internal/domain"
	"storeadmin/catman/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Op      string
	Payload domain.Payload
	ID      string
}

type fakeClient struct {
	categories domain.Categories
	echo       *domain.Category
	listErr    error
	writeErr   error
	calls      []call
}

func (f *fakeClient) List(context.Context) (domain.Categories, error) {
	f.calls = append(f.calls, call{Op: "list"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.categories.Clone(), nil
}

func (f *fakeClient) Create(_ context.Context, p domain.Payload) (*domain.Category, error) {
	f.calls = append(f.calls, call{Op: "create", Payload: p})
	return f.echo, f.writeErr
}

func (f *fakeClient) Update(_ context.Context, p domain.Payload) (*domain.Category, error) {
	f.calls = append(f.calls, call{Op: "update", Payload: p})
	return f.echo, f.writeErr
}

func (f *fakeClient) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, call{Op: "delete", ID: id})
	return f.writeErr
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) ops() []string {
	ops := make([]string, len(f.calls))
	for i, c := range f.calls {
		ops[i] = c.Op
	}
	return ops
}

type fakeConfirmer struct {
	answer  bool
	err     error
	dialogs []Dialog
}

func (f *fakeConfirmer) Confirm(_ context.Context, d Dialog) (bool, error) {
	f.dialogs = append(f.dialogs, d)
	return f.answer, f.err
}

func sampleCategories() domain.Categories {
	return domain.Categories{
		{ID: "a", Name: "Clothes", Properties: []domain.Property{}},
		{
			ID:         "b",
			Name:       "Shirts",
			Parent:     &domain.ParentRef{ID: "a", Name: "Clothes"},
			Properties: []domain.Property{{Name: "color", Values: []string{"red", "blue"}}},
		},
	}
}

func TestLoadReplacesList(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})

	require.NoError(t, m.Load(context.Background()))
	assert.Len(t, m.Categories(), 2)

	fc.categories = domain.Categories{{ID: "z", Name: "Only"}}
	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, domain.Categories{{ID: "z", Name: "Only"}}, m.Categories())
}

func TestLoadFailureKeepsList(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	fc.listErr = errors.New("connection refused")
	err := m.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, m.Categories(), 2)
}

func TestStartEditThenCancelRestoresState(t *testing.T) {
	m := NewManager(&fakeClient{}, &fakeConfirmer{})
	beforeDraft, beforeEditing := m.Draft(), m.Editing()

	m.StartEdit(sampleCategories()[1])
	require.NotNil(t, m.Editing())
	assert.Equal(t, "Shirts", m.Draft().Name)
	assert.Equal(t, "a", m.Draft().ParentID)
	assert.Equal(t, "red,blue", m.Draft().Properties[0].Values)

	m.CancelEdit()
	assert.Equal(t, beforeDraft, m.Draft())
	assert.Equal(t, beforeEditing, m.Editing())
}

func TestDraftDoesNotAliasList(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	m.StartEdit(m.Categories()[1])
	require.NoError(t, m.UpdatePropertyValues(0, "green"))
	require.NoError(t, m.UpdatePropertyName(0, "shade"))
	m.SetName("Tops")

	list := m.Categories()
	assert.Equal(t, "Shirts", list[1].Name)
	assert.Equal(t, domain.Property{Name: "color", Values: []string{"red", "blue"}}, list[1].Properties[0])
}

func TestSaveCreateShoes(t *testing.T) {
	fc := &fakeClient{}
	m := NewManager(fc, &fakeConfirmer{})

	m.SetName("Shoes")
	m.SetParent("")
	m.AddPropertyRow()
	require.NoError(t, m.UpdatePropertyName(0, "size"))
	require.NoError(t, m.UpdatePropertyValues(0, "8,9,10"))

	result, err := m.Save(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.True(t, result.Reloaded)

	require.Equal(t, []string{"create", "list"}, fc.ops())
	assert.Equal(t, domain.Payload{
		Name:           "Shoes",
		ParentCategory: "",
		Properties:     []domain.Property{{Name: "size", Values: []string{"8", "9", "10"}}},
	}, fc.calls[0].Payload)
	assert.Empty(t, fc.calls[0].Payload.ID)
	assert.True(t, m.Draft().IsZero())
}

func TestSaveUpdateUsesEditingID(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	m.StartEdit(m.Categories()[1])
	m.SetName("Tees")

	result, err := m.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Created)

	require.Equal(t, []string{"list", "update", "list"}, fc.ops())
	payload := fc.calls[1].Payload
	assert.Equal(t, "b", payload.ID)
	assert.Equal(t, "Tees", payload.Name)
	assert.Equal(t, "a", payload.ParentCategory)
	assert.Equal(t, []domain.Property{{Name: "color", Values: []string{"red", "blue"}}}, payload.Properties)
	assert.Nil(t, m.Editing())
}

func TestSaveMergesEchoedCategory(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	fc.echo = &domain.Category{ID: "c", Name: "Hats", Parent: &domain.ParentRef{ID: "a"}}
	m.SetName("Hats")
	m.SetParent("a")

	result, err := m.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Reloaded)
	require.NotNil(t, result.Category)

	assert.Equal(t, []string{"list", "create"}, fc.ops())
	list := m.Categories()
	require.Len(t, list, 3)
	assert.Equal(t, "Hats", list[2].Name)
	assert.Equal(t, "Clothes", list.ParentName(list[2]))
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories(), writeErr: errors.New("HTTP 500")}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	m.StartEdit(m.Categories()[0])
	m.SetName("Apparel")

	_, err := m.Save(context.Background())
	require.Error(t, err)

	assert.Equal(t, "Apparel", m.Draft().Name)
	require.NotNil(t, m.Editing())
	assert.Equal(t, "a", m.Editing().ID)
	assert.Equal(t, []string{"list", "update"}, fc.ops())
}

func TestRemoveNotConfirmed(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	confirmer := &fakeConfirmer{answer: false}
	m := NewManager(fc, confirmer)

	deleted, err := m.Remove(context.Background(), sampleCategories()[0])
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, fc.ops())

	require.Len(t, confirmer.dialogs, 1)
	d := confirmer.dialogs[0]
	assert.Equal(t, "Are you sure?", d.Title)
	assert.Equal(t, "Do you want to delete Clothes?", d.Text)
	assert.Equal(t, "Cancel", d.CancelLabel)
	assert.Equal(t, "Yes, Delete", d.ConfirmLabel)
}

func TestRemoveConfirmedDeletesAndReloads(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{answer: true})

	deleted, err := m.Remove(context.Background(), domain.Category{ID: "abc123", Name: "Old"})
	require.NoError(t, err)
	assert.True(t, deleted)

	require.Equal(t, []string{"delete", "list"}, fc.ops())
	assert.Equal(t, "abc123", fc.calls[0].ID)
}

func TestRemoveErrors(t *testing.T) {
	t.Run("no id", func(t *testing.T) {
		fc := &fakeClient{}
		m := NewManager(fc, &fakeConfirmer{answer: true})
		_, err := m.Remove(context.Background(), domain.Category{Name: "x"})
		assert.ErrorIs(t, err, ErrNoCategory)
		assert.Empty(t, fc.ops())
	})

	t.Run("confirmer fails", func(t *testing.T) {
		fc := &fakeClient{}
		m := NewManager(fc, &fakeConfirmer{err: errors.New("tty closed")})
		_, err := m.Remove(context.Background(), domain.Category{ID: "a", Name: "x"})
		assert.Error(t, err)
		assert.Empty(t, fc.ops())
	})

	t.Run("delete fails", func(t *testing.T) {
		fc := &fakeClient{writeErr: errors.New("HTTP 404")}
		m := NewManager(fc, &fakeConfirmer{answer: true})
		deleted, err := m.Remove(context.Background(), domain.Category{ID: "a", Name: "x"})
		assert.Error(t, err)
		assert.False(t, deleted)
		assert.Equal(t, []string{"delete"}, fc.ops())
	})
}

func TestPropertyRowOps(t *testing.T) {
	m := NewManager(&fakeClient{}, &fakeConfirmer{})
	m.AddPropertyRow()
	m.AddPropertyRow()
	require.NoError(t, m.UpdatePropertyName(1, "size"))
	require.NoError(t, m.RemovePropertyRow(0))

	assert.Equal(t, []form.PropertyRow{{Name: "size"}}, m.Draft().Properties)
	assert.ErrorIs(t, m.RemovePropertyRow(3), form.ErrRowIndex)
}

func TestRestore(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	draft := form.Draft{Name: "Shirts v2", ParentID: "a"}

	assert.True(t, m.Restore(draft, "b"))
	require.NotNil(t, m.Editing())
	assert.Equal(t, "b", m.Editing().ID)
	assert.Equal(t, draft, m.Draft())

	assert.False(t, m.Restore(draft, "missing"))
	assert.Nil(t, m.Editing())
	assert.Equal(t, draft, m.Draft())

	assert.True(t, m.Restore(form.Draft{Name: "New"}, ""))
	assert.Nil(t, m.Editing())
}

func TestRestoreBeforeLoadKeepsEditTarget(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories(), listErr: errors.New("connection refused")}
	m := NewManager(fc, &fakeConfirmer{})
	require.Error(t, m.Load(context.Background()))

	assert.True(t, m.Restore(form.Draft{Name: "Apparel"}, "a"))
	require.NotNil(t, m.Editing())
	assert.Equal(t, "a", m.Editing().ID)

	fc.listErr = nil
	_, err := m.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"list", "update", "list"}, fc.ops())
	assert.Equal(t, "a", fc.calls[1].Payload.ID)
	assert.Equal(t, "Apparel", fc.calls[1].Payload.Name)
}

func TestSaveEchoRenamesChildParents(t *testing.T) {
	fc := &fakeClient{categories: sampleCategories()}
	m := NewManager(fc, &fakeConfirmer{})
	require.NoError(t, m.Load(context.Background()))

	m.StartEdit(m.Categories()[0])
	m.SetName("Apparel")
	fc.echo = &domain.Category{ID: "a", Name: "Apparel", Properties: []domain.Property{}}

	result, err := m.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Reloaded)

	assert.Equal(t, []string{"list", "update"}, fc.ops())
	list := m.Categories()
	require.Len(t, list, 2)
	assert.Equal(t, "Apparel", list[0].Name)
	assert.Equal(t, "Apparel", list.ParentName(list[1]))
}
