package outreach

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldKind selects the input rendered for a Field and how its value is read.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldHTML     FieldKind = "html"
	FieldURL      FieldKind = "url"
	FieldImage    FieldKind = "image"
	FieldDate     FieldKind = "date"
	FieldDateTime FieldKind = "datetime"
	FieldNumber   FieldKind = "number"
	FieldCheckbox FieldKind = "checkbox"
	FieldTags     FieldKind = "tags"
	FieldSelect   FieldKind = "select"
)

// Field describes one input of an admin form.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string
}

// Resource configures a Manager: which table it edits, the form fields, and
// how rows convert to and from form values.
type Resource[R any] struct {
	Path     string // URL segment under /admin/
	Title    string
	Singular string
	Table    Table[R]

	// Fields is empty for resources that staff cannot create or edit.
	Fields   []Field
	Headings []string
	Cells    func(R) []string

	Encode func(R) url.Values
	Decode func(url.Values) (R, error)
	SetID  func(*R, string)

	// Prepare runs before every write. prev is nil when creating.
	Prepare func(r *R, prev *R, now time.Time)

	// Published is set for resources with a publish toggle.
	Published func(R) bool

	// Statuses is set for resources whose rows move through a status column.
	Statuses []string
	Status   func(R) string
}

// Manager implements list, create, update, upsert, delete and publish for one
// table. Every admin section is a Manager with a different Resource.
type Manager[R any] struct {
	db  *DB
	res Resource[R]
	now func() time.Time
}

// NewManager creates a Manager for res backed by db.
func NewManager[R any](db *DB, res Resource[R]) *Manager[R] {
	return &Manager[R]{db: db, res: res, now: time.Now}
}

// Resource returns the manager's configuration.
func (m *Manager[R]) Resource() Resource[R] {
	return m.res
}

// List returns every row in the table's natural order, published or not.
func (m *Manager[R]) List(ctx context.Context) ([]R, error) {
	return m.res.Table.Select(ctx, m.db, m.res.Table.Order)
}

// Get returns one row by id.
func (m *Manager[R]) Get(ctx context.Context, id string) (R, error) {
	return m.res.Table.Get(ctx, m.db, Eq{"id", id})
}

// Create inserts draft under a new id and returns the stored row.
func (m *Manager[R]) Create(ctx context.Context, draft R) (R, error) {
	m.res.SetID(&draft, uuid.New().String())
	m.prepare(&draft, nil)
	if err := m.res.Table.Insert(ctx, m.db, draft); err != nil {
		return draft, fmt.Errorf("create %s: %w", m.res.Singular, err)
	}
	return draft, nil
}

// Update overwrites the row with the given id.
func (m *Manager[R]) Update(ctx context.Context, id string, draft R) (R, error) {
	prev, err := m.Get(ctx, id)
	if err != nil {
		return draft, err
	}
	m.res.SetID(&draft, id)
	m.prepare(&draft, &prev)
	if err := m.res.Table.Update(ctx, m.db, draft, Eq{"id", id}); err != nil {
		return draft, fmt.Errorf("update %s: %w", m.res.Singular, err)
	}
	return draft, nil
}

// Save creates draft when it has no id, otherwise upserts it by id.
func (m *Manager[R]) Save(ctx context.Context, draft R) (R, error) {
	id := m.res.Table.ID(draft)
	if id == "" {
		return m.Create(ctx, draft)
	}
	var prevPtr *R
	prev, err := m.Get(ctx, id)
	switch {
	case err == nil:
		prevPtr = &prev
	case !errors.Is(err, ErrNotFound):
		return draft, err
	}
	m.prepare(&draft, prevPtr)
	if err := m.res.Table.Upsert(ctx, m.db, draft); err != nil {
		return draft, fmt.Errorf("save %s: %w", m.res.Singular, err)
	}
	return draft, nil
}

func (m *Manager[R]) prepare(r *R, prev *R) {
	if m.res.Prepare != nil {
		m.res.Prepare(r, prev, m.now().UTC())
	}
}

// Delete removes the row with the given id.
func (m *Manager[R]) Delete(ctx context.Context, id string) error {
	return m.res.Table.Delete(ctx, m.db, id)
}

// TogglePublished flips the published flag of a row and returns the stored value.
func (m *Manager[R]) TogglePublished(ctx context.Context, id string) (bool, error) {
	if m.res.Published == nil {
		return false, fmt.Errorf("%s cannot be published", m.res.Title)
	}
	row, err := m.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !m.res.Published(row)
	if err := m.res.Table.Set(ctx, m.db, id, "published", boolInt(next)); err != nil {
		return false, err
	}
	return next, nil
}

// SetStatus moves a row to one of the resource's statuses.
func (m *Manager[R]) SetStatus(ctx context.Context, id, status string) error {
	valid := false
	for _, s := range m.res.Statuses {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid status %q", status)
	}
	return m.res.Table.Set(ctx, m.db, id, "status", status)
}

// Count returns the number of rows in the table.
func (m *Manager[R]) Count(ctx context.Context) (int, error) {
	return m.res.Table.Count(ctx, m.db)
}

// adminSection is the type-erased view of a Manager used by the admin
// handlers, so one set of routes serves every resource.
type adminSection interface {
	path() string
	title() string
	fields() []Field
	page(ctx context.Context, editID string, submitted url.Values) (ManagerPage, error)
	saveForm(ctx context.Context, form url.Values) error
	togglePublished(ctx context.Context, id string) (bool, error)
	remove(ctx context.Context, id string) error
	setStatus(ctx context.Context, id, status string) error
	count(ctx context.Context) (int, error)
}

func (m *Manager[R]) path() string    { return m.res.Path }
func (m *Manager[R]) title() string   { return m.res.Title }
func (m *Manager[R]) fields() []Field { return m.res.Fields }

func (m *Manager[R]) remove(ctx context.Context, id string) error { return m.Delete(ctx, id) }

func (m *Manager[R]) togglePublished(ctx context.Context, id string) (bool, error) {
	return m.TogglePublished(ctx, id)
}

func (m *Manager[R]) setStatus(ctx context.Context, id, status string) error {
	return m.SetStatus(ctx, id, status)
}

func (m *Manager[R]) count(ctx context.Context) (int, error) { return m.Count(ctx) }

// FieldError reports form input that cannot be saved. The message is shown
// to staff as is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// saveForm validates required fields, sanitizes HTML fields, decodes the form
// and saves the row.
func (m *Manager[R]) saveForm(ctx context.Context, form url.Values) error {
	if len(m.res.Fields) == 0 {
		return fmt.Errorf("%s are read-only", m.res.Title)
	}
	for _, f := range m.res.Fields {
		v := strings.TrimSpace(form.Get(f.Name))
		if f.Required && v == "" {
			return &FieldError{Field: f.Name, Message: f.Label + " is required"}
		}
		if f.Kind == FieldHTML {
			form.Set(f.Name, SanitizeHTML(v))
		}
	}
	draft, err := m.res.Decode(form)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return fe
		}
		return &FieldError{Message: err.Error()}
	}
	_, err = m.Save(ctx, draft)
	return err
}

// page builds the list and the edit form. The form holds submitted when it is
// set (a rejected save), otherwise the row editID, otherwise nothing.
func (m *Manager[R]) page(ctx context.Context, editID string, submitted url.Values) (ManagerPage, error) {
	p := ManagerPage{
		Path:        m.res.Path,
		Title:       m.res.Title,
		Singular:    m.res.Singular,
		Headings:    m.res.Headings,
		Publishable: m.res.Published != nil,
		Statuses:    m.res.Statuses,
	}
	rows, err := m.List(ctx)
	if err != nil {
		return p, err
	}
	for _, r := range rows {
		row := ManagerRow{ID: m.res.Table.ID(r), Cells: m.res.Cells(r)}
		if m.res.Published != nil {
			row.Published = m.res.Published(r)
		}
		if m.res.Status != nil {
			row.Status = m.res.Status(r)
		}
		p.Rows = append(p.Rows, row)
	}
	if len(m.res.Fields) == 0 {
		return p, nil
	}

	values := url.Values{}
	switch {
	case submitted != nil:
		values = submitted
		editID = strings.TrimSpace(submitted.Get("id"))
	case editID != "":
		r, err := m.Get(ctx, editID)
		if err != nil {
			return p, err
		}
		values = m.res.Encode(r)
	}
	p.Form = &ManagerForm{ID: editID, Editing: editID != ""}
	for _, f := range m.res.Fields {
		p.Form.Fields = append(p.Form.Fields, FormField{Field: f, Value: values.Get(f.Name)})
	}
	return p, nil
}
