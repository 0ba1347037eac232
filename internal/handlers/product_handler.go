package handlers

import (
	"fmt"
	"strconv"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/crud"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
)

type ProductHandler = EntityHandler[domain.Product, crud.ProductValues]

// NewProductHandler builds the paginated product screens.
func NewProductHandler(api *clients.API, pageSize int, view *Renderer, logger *logrus.Logger) (*ProductHandler, error) {
	list, err := crud.NewListView(api, crud.ListConfig[domain.Product]{
		Title:     "Produtos",
		Singular:  "Produto",
		Endpoint:  "/produtos",
		BasePath:  "/produtos",
		Paginated: true,
		PageSize:  pageSize,
		Columns: []crud.Column[domain.Product]{
			{Key: "id", Header: "ID"},
			{Key: "nome", Header: "Nome"},
			{Key: "preco", Header: "Preço", Render: func(p domain.Product) string {
				return fmt.Sprintf("$%.2f", p.Price)
			}},
			{Key: "quantidadeEstoque", Header: "Estoque", Render: func(p domain.Product) string {
				return strconv.Itoa(p.Stock)
			}},
			{Key: "categoria", Header: "Categoria", Render: domain.Product.CategoryName},
			{Key: "fornecedor", Header: "Fornecedor", Render: domain.Product.SupplierName},
		},
		LoadError: "Não foi possível carregar os produtos. Tente novamente mais tarde.",
		EmptyText: "Nenhum produto encontrado.",
	}, logger)
	if err != nil {
		return nil, err
	}

	form, err := crud.NewProductForm(api, crud.ProductFormConfig{
		FormConfig: crud.FormConfig{
			Title:        "Produto",
			Endpoint:     "/produtos",
			RedirectPath: "/produtos",
		},
		CategoriesEndpoint: "/categorias",
		SuppliersEndpoint:  "/fornecedores",
	}, logger)
	if err != nil {
		return nil, err
	}

	return NewEntityHandler[domain.Product, crud.ProductValues](list, form, view, logger), nil
}
