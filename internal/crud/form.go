package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
)

type FormConfig struct {
	Title        string // singular, e.g. "Categoria"
	Endpoint     string
	RedirectPath string
	// Feminine picks "criada"/"criado" in notices.
	Feminine bool
}

func (c FormConfig) check() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("form: title is required")
	}
	if !strings.HasPrefix(c.Endpoint, "/") {
		return fmt.Errorf("form %s: endpoint %q must start with /", c.Title, c.Endpoint)
	}
	if !strings.HasPrefix(c.RedirectPath, "/") {
		return fmt.Errorf("form %s: redirect path %q must start with /", c.Title, c.RedirectPath)
	}
	return nil
}

func (c FormConfig) savedNotice(editing bool) string {
	verb := "criad"
	if editing {
		verb = "atualizad"
	}
	if c.Feminine {
		verb += "a"
	} else {
		verb += "o"
	}
	return fmt.Sprintf("%s %s com sucesso.", c.Title, verb)
}

func (c FormConfig) failedNotice(err error) string {
	base := fmt.Sprintf("Ocorreu um erro ao salvar %s.", strings.ToLower(c.Title))
	if msg := clients.Message(err, ""); msg != "" {
		return base + " " + msg
	}
	return base
}

// FormModel is everything a form screen needs to render.
type FormModel struct {
	Heading     string
	Action      string
	SubmitLabel string
	CancelURL   string
	Editing     bool
	Fields      []Field
	Notice      *Notice
}

// Result of a submission. On success Redirect is set and the caller
// navigates; otherwise Model is re-rendered with the entered values.
type Result struct {
	Saved    bool
	Redirect string
	Notice   Notice
	Model    FormModel
	// Err is the API failure, nil for validation errors.
	Err error
}

// Invalid reports a submission rejected before reaching the API.
func (r Result) Invalid() bool { return !r.Saved && r.Err == nil }

func (c FormConfig) frame(basePath string, id int64) FormModel {
	m := FormModel{
		Heading:     "Adicionar Nova " + c.Title,
		Action:      basePath + "/add",
		SubmitLabel: "Adicionar " + c.Title,
		CancelURL:   c.RedirectPath,
	}
	if !c.Feminine {
		m.Heading = "Adicionar Novo " + c.Title
	}
	if id != 0 {
		m.Editing = true
		m.Heading = fmt.Sprintf("Editar %s #%d", c.Title, id)
		m.Action = fmt.Sprintf("%s/%d", basePath, id)
		m.SubmitLabel = "Atualizar " + c.Title
	}
	return m
}

func save[T any](ctx context.Context, r *clients.Resource[T], id int64, item T) (*T, error) {
	if id != 0 {
		return r.Update(ctx, id, item)
	}
	return r.Create(ctx, item)
}

// NameValues is the posted body of a name-only form.
type NameValues struct {
	Name string `form:"nome" validate:"required,min=2,max=50"`
}

func (v NameValues) asMap() map[string]string { return map[string]string{"nome": v.Name} }

// NameForm edits entities whose only user field is the name.
type NameForm[T domain.Named] struct {
	cfg      FormConfig
	resource *clients.Resource[T]
	build    func(id int64, name string) T
	log      logrus.FieldLogger
}

func NewNameForm[T domain.Named](api *clients.API, cfg FormConfig, build func(id int64, name string) T, logger *logrus.Logger) (*NameForm[T], error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if build == nil {
		return nil, fmt.Errorf("form %s: constructor is required", cfg.Title)
	}
	return &NameForm[T]{
		cfg:      cfg,
		resource: clients.NewResource[T](api, cfg.Endpoint),
		build:    build,
		log:      logger.WithField("form", cfg.Title),
	}, nil
}

func (f *NameForm[T]) fields() []Field {
	of := "do"
	if f.cfg.Feminine {
		of = "da"
	}
	return []Field{{
		Key:         "nome",
		Label:       "Nome",
		Kind:        TextField,
		Placeholder: fmt.Sprintf("Nome %s %s", of, strings.ToLower(f.cfg.Title)),
	}}
}

// Find loads the entity being edited. clients.ErrNotFound passes through.
func (f *NameForm[T]) Find(ctx context.Context, id int64) (*T, error) {
	return f.resource.Get(ctx, id)
}

// New renders the form for initial, which is nil when creating.
func (f *NameForm[T]) New(_ context.Context, initial *T) FormModel {
	var id int64
	values := NameValues{}
	if initial != nil {
		id = (*initial).EntityID()
		values.Name = (*initial).EntityName()
	}
	m := f.cfg.frame(f.cfg.RedirectPath, id)
	m.Fields = fill(f.fields(), values.asMap(), nil)
	return m
}

// Submit validates locally and only then calls the API.
func (f *NameForm[T]) Submit(ctx context.Context, initial *T, values NameValues) Result {
	var id int64
	if initial != nil {
		id = (*initial).EntityID()
	}
	m := f.cfg.frame(f.cfg.RedirectPath, id)

	if errs := check(values); !errs.Empty() {
		m.Fields = fill(f.fields(), values.asMap(), errs)
		return Result{Model: m}
	}

	if _, err := save(ctx, f.resource, id, f.build(id, values.Name)); err != nil {
		f.log.WithError(err).WithField("id", id).Error("failed to save")
		n := Notice{Text: f.cfg.failedNotice(err)}
		m.Fields = fill(f.fields(), values.asMap(), nil)
		m.Notice = &n
		return Result{Notice: n, Model: m, Err: err}
	}

	f.log.WithField("id", id).Info("saved")
	return Result{
		Saved:    true,
		Redirect: f.cfg.RedirectPath,
		Notice:   Notice{OK: true, Text: f.cfg.savedNotice(id != 0)},
	}
}
