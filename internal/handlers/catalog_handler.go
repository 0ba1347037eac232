package handlers

import (
	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/crud"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
)

type (
	CategoryHandler = EntityHandler[domain.Category, crud.NameValues]
	SupplierHandler = EntityHandler[domain.Supplier, crud.NameValues]
)

func NewCategoryHandler(api *clients.API, view *Renderer, logger *logrus.Logger) (*CategoryHandler, error) {
	return newNamedHandler(api, "Categorias", "Categoria", "/categorias", true, view, logger,
		func(id int64, name string) domain.Category { return domain.Category{ID: id, Name: name} })
}

func NewSupplierHandler(api *clients.API, view *Renderer, logger *logrus.Logger) (*SupplierHandler, error) {
	return newNamedHandler(api, "Fornecedores", "Fornecedor", "/fornecedores", false, view, logger,
		func(id int64, name string) domain.Supplier { return domain.Supplier{ID: id, Name: name} })
}

// newNamedHandler wires the screens of an entity whose only field is its
// name. The API path and the screen path are the same.
func newNamedHandler[T domain.Named](api *clients.API, plural, singular, path string, feminine bool,
	view *Renderer, logger *logrus.Logger, build func(int64, string) T) (*EntityHandler[T, crud.NameValues], error) {
	list, err := crud.NewListView(api, crud.ListConfig[T]{
		Title:    plural,
		Singular: singular,
		Endpoint: path,
		BasePath: path,
		Columns: []crud.Column[T]{
			{Key: "id", Header: "ID"},
			{Key: "nome", Header: "Nome"},
		},
	}, logger)
	if err != nil {
		return nil, err
	}

	form, err := crud.NewNameForm(api, crud.FormConfig{
		Title:        singular,
		Endpoint:     path,
		RedirectPath: path,
		Feminine:     feminine,
	}, build, logger)
	if err != nil {
		return nil, err
	}

	return NewEntityHandler[T, crud.NameValues](list, form, view, logger), nil
}
