package crud

import (
	"fmt"
	"strconv"

	"github.com/felipe-souza17/stock-front/internal/domain"
)

// Column describes one list column. Render is optional for the "id" and
// "nome" keys, which every entity provides.
type Column[T domain.Named] struct {
	Key    string
	Header string
	Render func(T) string
}

func (c Column[T]) cell(item T) string {
	if c.Render != nil {
		return c.Render(item)
	}
	switch c.Key {
	case "id":
		return strconv.FormatInt(item.EntityID(), 10)
	case "nome":
		return item.EntityName()
	}
	return ""
}

func checkColumns[T domain.Named](cols []Column[T]) error {
	if len(cols) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	seen := make(map[string]bool, len(cols))
	for i, col := range cols {
		if col.Key == "" {
			return fmt.Errorf("column %d has no key", i)
		}
		if seen[col.Key] {
			return fmt.Errorf("duplicate column key %q", col.Key)
		}
		seen[col.Key] = true
		if col.Render == nil && col.Key != "id" && col.Key != "nome" {
			return fmt.Errorf("column %q needs a renderer", col.Key)
		}
	}
	return nil
}

type FieldKind string

const (
	TextField     FieldKind = "text"
	TextAreaField FieldKind = "textarea"
	NumberField   FieldKind = "number"
	SelectField   FieldKind = "select"
)

type Option struct {
	Value    string
	Label    string
	Selected bool
	Disabled bool
}

// Field is one input of a rendered form.
type Field struct {
	Key         string
	Label       string
	Kind        FieldKind
	Placeholder string
	Step        string
	Value       string
	Error       string
	Disabled    bool
	Options     []Option
}

// FieldErrors maps a form key to its first validation message.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func fill(fields []Field, values map[string]string, errs FieldErrors) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Value = values[f.Key]
		f.Error = errs[f.Key]
		if f.Kind == SelectField {
			opts := make([]Option, len(f.Options))
			for j, o := range f.Options {
				o.Selected = !o.Disabled && o.Value == f.Value
				opts[j] = o
			}
			f.Options = opts
		}
		out[i] = f
	}
	return out
}
