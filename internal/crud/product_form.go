package crud

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	MinPrice = 0.01
	MaxPrice = 9999999.99
	MaxStock = 99999
)

// ProductValues is the posted body of the product form. Numbers arrive as
// text and are coerced by Decode.
type ProductValues struct {
	Name        string `form:"nome" validate:"required,min=2,max=50"`
	Description string `form:"descricao" validate:"max=200"`
	Price       string `form:"preco"`
	Stock       string `form:"quantidadeEstoque"`
	CategoryID  string `form:"categoria"`
	SupplierID  string `form:"fornecedor"`
}

func (v ProductValues) asMap() map[string]string {
	return map[string]string{
		"nome":              v.Name,
		"descricao":         v.Description,
		"preco":             v.Price,
		"quantidadeEstoque": v.Stock,
		"categoria":         v.CategoryID,
		"fornecedor":        v.SupplierID,
	}
}

// ValuesOf pre-fills the form from an existing product.
func ValuesOf(p domain.Product) ProductValues {
	v := ProductValues{
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(p.Stock),
	}
	if p.Category != nil {
		v.CategoryID = strconv.FormatInt(p.Category.ID, 10)
	}
	if p.Supplier != nil {
		v.SupplierID = strconv.FormatInt(p.Supplier.ID, 10)
	}
	return v
}

// Decode validates the values and coerces them into a product. An empty
// string means zero for the numeric fields, and "none" for the references.
func Decode(v ProductValues) (domain.Product, FieldErrors) {
	errs := check(v)
	p := domain.Product{Name: v.Name, Description: v.Description}

	price, err := parseNumber(v.Price)
	switch {
	case err != nil:
		errs["preco"] = "O preço deve ser um número."
	case price < MinPrice:
		errs["preco"] = "O preço deve ser maior que zero."
	case price > MaxPrice:
		errs["preco"] = "Preço muito alto."
	default:
		p.Price = price
	}

	stock, err := parseNumber(v.Stock)
	switch {
	case err != nil:
		errs["quantidadeEstoque"] = "A quantidade em estoque deve ser um número."
	case stock != math.Trunc(stock):
		errs["quantidadeEstoque"] = "A quantidade em estoque deve ser um número inteiro."
	case stock < 0:
		errs["quantidadeEstoque"] = "A quantidade em estoque não pode ser negativa."
	case stock > MaxStock:
		errs["quantidadeEstoque"] = "Quantidade muito alta."
	default:
		p.Stock = int(stock)
	}

	if ref, ok := parseRef(v.CategoryID); ok {
		p.Category = ref
	} else {
		errs["categoria"] = "Categoria inválida."
	}
	if ref, ok := parseRef(v.SupplierID); ok {
		p.Supplier = ref
	} else {
		errs["fornecedor"] = "Fornecedor inválido."
	}
	return p, errs
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

func parseRef(s string) (*domain.Ref, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &domain.Ref{ID: id}, true
}

// RefOptions is the state of one reference selector.
type RefOptions struct {
	Loaded bool
	Items  []domain.Ref
}

type selectLabels struct {
	loading, empty, choose, none string
}

var (
	categoryLabels = selectLabels{
		loading: "Carregando categorias...",
		empty:   "Nenhuma categoria disponível",
		choose:  "Selecione uma categoria",
		none:    "Nenhuma",
	}
	supplierLabels = selectLabels{
		loading: "Carregando fornecedores...",
		empty:   "Nenhum fornecedor disponível",
		choose:  "Selecione um fornecedor",
		none:    "Nenhum",
	}
)

func (o RefOptions) field(key, label string, l selectLabels) Field {
	f := Field{Key: key, Label: label, Kind: SelectField}
	switch {
	case !o.Loaded:
		f.Placeholder = l.loading
		f.Disabled = true
	case len(o.Items) == 0:
		f.Placeholder = l.empty
	default:
		f.Placeholder = l.choose
	}
	f.Options = append(f.Options, Option{Value: "", Label: l.none})
	for _, r := range o.Items {
		f.Options = append(f.Options, Option{Value: strconv.FormatInt(r.ID, 10), Label: r.Name})
	}
	return f
}

func refsOf[T domain.Named](items []T) []domain.Ref {
	refs := make([]domain.Ref, 0, len(items))
	for _, it := range items {
		refs = append(refs, domain.Ref{ID: it.EntityID(), Name: it.EntityName()})
	}
	return refs
}

type ProductFormConfig struct {
	FormConfig
	CategoriesEndpoint string
	SuppliersEndpoint  string
}

// ProductForm creates and edits products and feeds its reference selectors.
type ProductForm struct {
	cfg        ProductFormConfig
	products   *clients.Resource[domain.Product]
	categories *clients.Resource[domain.Category]
	suppliers  *clients.Resource[domain.Supplier]
	log        logrus.FieldLogger
}

func NewProductForm(api *clients.API, cfg ProductFormConfig, logger *logrus.Logger) (*ProductForm, error) {
	if cfg.CategoriesEndpoint == "" {
		cfg.CategoriesEndpoint = "/categorias"
	}
	if cfg.SuppliersEndpoint == "" {
		cfg.SuppliersEndpoint = "/fornecedores"
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &ProductForm{
		cfg:        cfg,
		products:   clients.NewResource[domain.Product](api, cfg.Endpoint),
		categories: clients.NewResource[domain.Category](api, cfg.CategoriesEndpoint),
		suppliers:  clients.NewResource[domain.Supplier](api, cfg.SuppliersEndpoint),
		log:        logger.WithField("form", cfg.Title),
	}, nil
}

func (f *ProductForm) Find(ctx context.Context, id int64) (*domain.Product, error) {
	return f.products.Get(ctx, id)
}

// LoadOptions fetches both reference lists concurrently. Both selectors
// leave the loading state even when a fetch fails; the error is returned so
// the caller can notify.
func (f *ProductForm) LoadOptions(ctx context.Context) (cats, sups RefOptions, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := f.categories.List(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		cats.Items = refsOf(items)
		return nil
	})
	g.Go(func() error {
		items, err := f.suppliers.List(gctx)
		if err != nil {
			return fmt.Errorf("load suppliers: %w", err)
		}
		sups.Items = refsOf(items)
		return nil
	})
	err = g.Wait()
	cats.Loaded, sups.Loaded = true, true
	if err != nil {
		f.log.WithError(err).Error("failed to load reference options")
	}
	return cats, sups, err
}

func (f *ProductForm) fields(cats, sups RefOptions) []Field {
	return []Field{
		{Key: "nome", Label: "Nome", Kind: TextField, Placeholder: "Nome do produto"},
		{Key: "descricao", Label: "Descrição", Kind: TextAreaField, Placeholder: "Descrição do produto"},
		{Key: "preco", Label: "Preço", Kind: NumberField, Step: "0.01", Placeholder: "0.00"},
		{Key: "quantidadeEstoque", Label: "Quantidade em Estoque", Kind: NumberField, Step: "1", Placeholder: "0"},
		cats.field("categoria", "Categoria", categoryLabels),
		sups.field("fornecedor", "Fornecedor", supplierLabels),
	}
}

func (f *ProductForm) render(ctx context.Context, id int64, values ProductValues, errs FieldErrors) FormModel {
	m := f.cfg.frame(f.cfg.RedirectPath, id)
	cats, sups, err := f.LoadOptions(ctx)
	if err != nil {
		m.Notice = &Notice{Text: "Não foi possível carregar categorias ou fornecedores."}
	}
	m.Fields = fill(f.fields(cats, sups), values.asMap(), errs)
	return m
}

// New renders the form for initial, which is nil when creating.
func (f *ProductForm) New(ctx context.Context, initial *domain.Product) FormModel {
	if initial == nil {
		return f.render(ctx, 0, ProductValues{}, nil)
	}
	return f.render(ctx, initial.ID, ValuesOf(*initial), nil)
}

// Submit validates and coerces locally; the API is called only for valid
// input.
func (f *ProductForm) Submit(ctx context.Context, initial *domain.Product, values ProductValues) Result {
	var id int64
	if initial != nil {
		id = initial.ID
	}

	p, errs := Decode(values)
	if !errs.Empty() {
		return Result{Model: f.render(ctx, id, values, errs)}
	}
	p.ID = id

	if _, err := save(ctx, f.products, id, p); err != nil {
		f.log.WithError(err).WithField("id", id).Error("failed to save")
		n := Notice{Text: f.cfg.failedNotice(err)}
		m := f.render(ctx, id, values, nil)
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
