// Package crud binds the remote REST collections to list and form screens.
package crud

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
)

type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

// Notice is a user-facing outcome of an operation.
type Notice struct {
	OK   bool
	Text string
}

type ListConfig[T domain.Named] struct {
	Title     string // plural, e.g. "Categorias"
	Singular  string // e.g. "Categoria"; derived from Title when empty
	Endpoint  string
	BasePath  string
	Columns   []Column[T]
	Paginated bool
	PageSize  int

	// LoadError overrides the default "could not load" message.
	LoadError string
	// EmptyText overrides the default "nothing found" row.
	EmptyText string
}

type Row struct {
	ID        int64
	Name      string
	Cells     []string
	EditURL   string
	DeleteURL string
}

type ListModel struct {
	Title      string
	Singular   string
	BasePath   string
	AddURL     string
	Headers    []string
	Status     Status
	Error      string
	Rows       []Row
	EmptyText  string
	Pagination *Pagination
	Summary    string
}

func (m ListModel) Failed() bool { return m.Status == Failed }

type DeleteDialog struct {
	Title       string
	Description string
	ID          int64
	Name        string
	ConfirmURL  string
	CancelURL   string
}

type ListView[T domain.Named] struct {
	cfg      ListConfig[T]
	resource *clients.Resource[T]
	log      logrus.FieldLogger
}

// NewListView validates cfg once so a bad column set fails at startup rather
// than on the first render.
func NewListView[T domain.Named](api *clients.API, cfg ListConfig[T], logger *logrus.Logger) (*ListView[T], error) {
	if strings.TrimSpace(cfg.Title) == "" {
		return nil, errors.New("list view: title is required")
	}
	if !strings.HasPrefix(cfg.Endpoint, "/") {
		return nil, fmt.Errorf("list view %s: endpoint %q must start with /", cfg.Title, cfg.Endpoint)
	}
	if !strings.HasPrefix(cfg.BasePath, "/") {
		return nil, fmt.Errorf("list view %s: base path %q must start with /", cfg.Title, cfg.BasePath)
	}
	if err := checkColumns(cfg.Columns); err != nil {
		return nil, fmt.Errorf("list view %s: %w", cfg.Title, err)
	}
	if cfg.Singular == "" {
		cfg.Singular = Singular(cfg.Title)
	}
	if cfg.Paginated {
		cfg.PageSize = domain.PageRequest{Size: cfg.PageSize}.Normalize(domain.DefaultPageSize).Size
	}
	return &ListView[T]{
		cfg:      cfg,
		resource: clients.NewResource[T](api, cfg.Endpoint),
		log:      logger.WithField("list", cfg.Title),
	}, nil
}

// Singular strips the plural "s" of a title. Titles ending in "es" need an
// explicit ListConfig.Singular.
func Singular(title string) string {
	return strings.TrimSuffix(title, "s")
}

func (v *ListView[T]) Config() ListConfig[T] { return v.cfg }

func (v *ListView[T]) model() ListModel {
	headers := make([]string, 0, len(v.cfg.Columns))
	for _, col := range v.cfg.Columns {
		headers = append(headers, col.Header)
	}
	singular := v.cfg.Singular
	empty := v.cfg.EmptyText
	if empty == "" {
		empty = fmt.Sprintf("Nenhum(a) %s encontrado(a).", strings.ToLower(singular))
	}
	return ListModel{
		Title:     v.cfg.Title,
		Singular:  singular,
		BasePath:  v.cfg.BasePath,
		AddURL:    v.cfg.BasePath + "/add",
		Headers:   headers,
		Status:    Loading,
		EmptyText: empty,
	}
}

// rows builds one row per item. Delete links remember a page other than the
// first so the list comes back where it was.
func (v *ListView[T]) rows(items []T, page int) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		id := strconv.FormatInt(item.EntityID(), 10)
		cells := make([]string, 0, len(v.cfg.Columns))
		for _, col := range v.cfg.Columns {
			cells = append(cells, col.cell(item))
		}
		row := Row{
			ID:        item.EntityID(),
			Name:      item.EntityName(),
			Cells:     cells,
			EditURL:   v.cfg.BasePath + "/" + id,
			DeleteURL: v.cfg.BasePath + "/" + id + "/delete",
		}
		if page > 0 {
			row.DeleteURL += "?page=" + strconv.Itoa(page)
		}
		rows = append(rows, row)
	}
	return rows
}

// PageURL links to a page of this list.
func (v *ListView[T]) PageURL(page int) string {
	if page <= 0 {
		return v.cfg.BasePath
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return v.cfg.BasePath + "?" + q.Encode()
}

// Load fetches the collection once. A failure is reported in the model, not
// retried.
func (v *ListView[T]) Load(ctx context.Context, page int) ListModel {
	m := v.model()

	if !v.cfg.Paginated {
		items, err := v.resource.List(ctx)
		if err != nil {
			return v.failed(m, err)
		}
		m.Status = Ready
		m.Rows = v.rows(items, 0)
		return m
	}

	pr := domain.PageRequest{Index: page, Size: v.cfg.PageSize}.Normalize(v.cfg.PageSize)
	p, err := v.resource.ListPage(ctx, pr)
	if err != nil {
		return v.failed(m, err)
	}
	items := p.Items
	if p.Size > 0 && len(items) > p.Size {
		items = items[:p.Size]
	}
	m.Status = Ready
	m.Rows = v.rows(items, p.Index)
	if p.TotalPages > 1 {
		w := Window(p.Index, p.TotalPages, v.PageURL)
		m.Pagination = &w
	}
	m.Summary = fmt.Sprintf("Mostrando %d de %d %s.", len(m.Rows), p.TotalItems, strings.ToLower(v.cfg.Title))
	return m
}

func (v *ListView[T]) failed(m ListModel, err error) ListModel {
	v.log.WithError(err).Error("failed to load list")
	m.Status = Failed
	m.Error = v.cfg.LoadError
	if m.Error == "" {
		m.Error = fmt.Sprintf("Não foi possível carregar as %s.", strings.ToLower(v.cfg.Title))
	}
	return m
}

// ConfirmDelete loads the target so the dialog can name it.
func (v *ListView[T]) ConfirmDelete(ctx context.Context, id int64) (*DeleteDialog, error) {
	item, err := v.resource.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := (*item).EntityName()
	return &DeleteDialog{
		Title: "Você tem certeza?",
		Description: fmt.Sprintf("Esta ação não pode ser desfeita. Isso irá deletar permanentemente %s %q.",
			strings.ToLower(v.cfg.Singular), name),
		ID:         id,
		Name:       name,
		ConfirmURL: fmt.Sprintf("%s/%d/delete", v.cfg.BasePath, id),
		CancelURL:  v.cfg.BasePath,
	}, nil
}

// Delete removes the entity. name is only used in the returned notice.
func (v *ListView[T]) Delete(ctx context.Context, id int64, name string) Notice {
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("%s #%d", v.cfg.Singular, id)
	}
	if err := v.resource.Delete(ctx, id); err != nil {
		v.log.WithError(err).WithField("id", id).Error("failed to delete")
		return Notice{Text: fmt.Sprintf("Ocorreu um erro ao deletar %s.", name)}
	}
	v.log.WithField("id", id).Info("deleted")
	return Notice{OK: true, Text: fmt.Sprintf("%s deletado(a) com sucesso.", name)}
}
