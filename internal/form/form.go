// Package form binds a draft record to user input and hands it to a
// List-Sync Controller for creation or update.
package form

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Tiliavir/curriculo/internal/model"
)

// Submitter is implemented by *listsync.Controller.
type Submitter[D any] interface {
	Create(ctx context.Context, draft D) bool
	Update(ctx context.Context, id model.ID, draft D) bool
}

// ErrRejected is returned by Submit when the controller reported failure.
// The user has already been alerted.
var ErrRejected = errors.New("form: submission rejected")

// ValidationError lists the labels of required fields left blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Fill in " + joinLabels(e.Missing) + "."
}

func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name := f.Tag.Get("form"); name != "" {
				return name
			}
			return f.Name
		})
	})
	return validate
}

// Validate checks the `validate` tags of draft after trimming every field in
// fields. Missing fields are reported in table order.
func Validate[D any](draft D, fields []model.Field[D]) error {
	for _, f := range fields {
		f.Set(&draft, strings.TrimSpace(f.Get(&draft)))
	}
	err := validatorInstance().Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	failed := map[string]bool{}
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	ve := &ValidationError{}
	for _, f := range fields {
		if failed[f.Key] {
			ve.Missing = append(ve.Missing, f.Label)
		}
	}
	return ve
}

// Form is the editable form of one section. In create mode it behaves as an
// accordion; in edit mode it is always open and targets one record.
type Form[T model.Record, D any] struct {
	Fields []model.Field[D]

	submit   Submitter[D]
	fromItem func(T) D
	onCancel func()

	draft  D
	editID model.ID
	edit   bool
	open   bool
}

// New creates a form in create mode, collapsed. fromItem converts a record to
// a pre-populated draft for edit mode.
func New[T model.Record, D any](fields []model.Field[D], submit Submitter[D], fromItem func(T) D) *Form[T, D] {
	return &Form[T, D]{Fields: fields, submit: submit, fromItem: fromItem}
}

// OnCancel sets the callback used when an edit is cancelled.
func (f *Form[T, D]) OnCancel(fn func()) { f.onCancel = fn }

// Draft returns a copy of the current draft.
func (f *Form[T, D]) Draft() D { return f.draft }

// Get returns the value of field key.
func (f *Form[T, D]) Get(key string) string {
	for _, fd := range f.Fields {
		if fd.Key == key {
			return fd.Get(&f.draft)
		}
	}
	return ""
}

// Set updates field key. Unknown keys are ignored.
func (f *Form[T, D]) Set(key, value string) {
	for _, fd := range f.Fields {
		if fd.Key == key {
			fd.Set(&f.draft, value)
			return
		}
	}
}

// Editing reports whether the form targets an existing record.
func (f *Form[T, D]) Editing() bool { return f.edit }

// EditID returns the record being edited.
func (f *Form[T, D]) EditID() model.ID { return f.editID }

// Open reports whether the form is expanded.
func (f *Form[T, D]) Open() bool { return f.open }

// Toggle expands or collapses the create form. Edit mode ignores it.
func (f *Form[T, D]) Toggle() {
	if f.edit {
		return
	}
	f.open = !f.open
}

// Edit switches to edit mode for item, pre-populating the draft.
func (f *Form[T, D]) Edit(item T) {
	f.draft = f.fromItem(item)
	f.editID = item.RecordID()
	f.edit = true
	f.open = true
}

// Reset returns to a blank, collapsed create form.
func (f *Form[T, D]) Reset() {
	var blank D
	f.draft = blank
	f.editID = ""
	f.edit = false
	f.open = false
}

// Cancel leaves edit mode through the parent callback, or collapses the
// create form.
func (f *Form[T, D]) Cancel() {
	if f.edit {
		f.Reset()
		if f.onCancel != nil {
			f.onCancel()
		}
		return
	}
	f.open = false
}

// Submit validates the draft and creates or updates the record. On success a
// create clears and collapses the form, and an update leaves edit mode. A
// *ValidationError means nothing was sent.
func (f *Form[T, D]) Submit(ctx context.Context) error {
	if err := Validate(f.draft, f.Fields); err != nil {
		return err
	}
	draft := f.draft
	for _, fd := range f.Fields {
		fd.Set(&draft, strings.TrimSpace(fd.Get(&draft)))
	}

	if f.edit {
		if !f.submit.Update(ctx, f.editID, draft) {
			return ErrRejected
		}
		f.Reset()
		return nil
	}
	if !f.submit.Create(ctx, draft) {
		return ErrRejected
	}
	f.Reset()
	return nil
}
