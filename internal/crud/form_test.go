package crud

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryForm(t *testing.T, api *clients.API) *NameForm[domain.Category] {
	t.Helper()
	f, err := NewNameForm(api, FormConfig{
		Title:        "Categoria",
		Endpoint:     "/categorias",
		RedirectPath: "/categorias",
		Feminine:     true,
	}, func(id int64, name string) domain.Category {
		return domain.Category{ID: id, Name: name}
	}, quietLogger())
	require.NoError(t, err)
	return f
}

func TestNewNameFormRejectsBadConfig(t *testing.T) {
	api, _ := newTestAPI(t)
	build := func(id int64, name string) domain.Supplier { return domain.Supplier{ID: id, Name: name} }

	_, err := NewNameForm(api, FormConfig{Endpoint: "/fornecedores", RedirectPath: "/fornecedores"}, build, quietLogger())
	assert.Error(t, err)

	_, err = NewNameForm(api, FormConfig{Title: "Fornecedor", Endpoint: "fornecedores", RedirectPath: "/fornecedores"}, build, quietLogger())
	assert.Error(t, err)

	_, err = NewNameForm[domain.Supplier](api, FormConfig{Title: "Fornecedor", Endpoint: "/fornecedores", RedirectPath: "/fornecedores"}, nil, quietLogger())
	assert.Error(t, err)
}

func TestNameLengthBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "O nome deve ter pelo menos 2 caracteres."},
		{"one rune", "A", "O nome deve ter pelo menos 2 caracteres."},
		{"two runes", "AB", ""},
		{"fifty runes", strings.Repeat("a", 50), ""},
		{"fifty one runes", strings.Repeat("a", 51), "O nome não pode exceder 50 caracteres."},
		{"multibyte counts runes", strings.Repeat("ç", 50), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := check(NameValues{Name: tt.in})
			assert.Equal(t, tt.want, errs["nome"])
		})
	}
}

func TestInvalidNameMakesNoCall(t *testing.T) {
	api, srv := newTestAPI(t)
	f := categoryForm(t, api)

	res := f.Submit(context.Background(), nil, NameValues{Name: "A"})

	assert.True(t, res.Invalid())
	assert.Equal(t, "O nome deve ter pelo menos 2 caracteres.", res.Model.Fields[0].Error)
	assert.Equal(t, "A", res.Model.Fields[0].Value)
	assert.Empty(t, srv.Calls())
}

func TestCreateCategory(t *testing.T) {
	api, srv := newTestAPI(t)
	f := categoryForm(t, api)

	res := f.Submit(context.Background(), nil, NameValues{Name: "Beverages"})

	require.True(t, res.Saved)
	assert.Equal(t, "/categorias", res.Redirect)
	assert.Equal(t, Notice{OK: true, Text: "Categoria criada com sucesso."}, res.Notice)
	posts := srv.CallsTo(http.MethodPost, "/categorias")
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"nome":"Beverages"}`, posts[0].Body)
	require.Len(t, srv.Categories(), 1)
	assert.Equal(t, "Beverages", srv.Categories()[0].Name)
}

func TestEditCategory(t *testing.T) {
	api, srv := newTestAPI(t)
	cat := srv.AddCategory("Bevs")
	f := categoryForm(t, api)
	ctx := context.Background()

	initial, err := f.Find(ctx, cat.ID)
	require.NoError(t, err)

	m := f.New(ctx, initial)
	assert.True(t, m.Editing)
	assert.Equal(t, "Bevs", m.Fields[0].Value)
	assert.Equal(t, "Atualizar Categoria", m.SubmitLabel)

	res := f.Submit(ctx, initial, NameValues{Name: "Beverages"})
	require.True(t, res.Saved)
	assert.Equal(t, "Categoria atualizada com sucesso.", res.Notice.Text)
	assert.Len(t, srv.CallsTo(http.MethodPut, "/categorias/1"), 1)
	assert.Equal(t, "Beverages", srv.Categories()[0].Name)
}

func TestNewFormIsBlank(t *testing.T) {
	api, _ := newTestAPI(t)
	m := categoryForm(t, api).New(context.Background(), nil)

	assert.False(t, m.Editing)
	assert.Equal(t, "Adicionar Nova Categoria", m.Heading)
	assert.Equal(t, "/categorias/add", m.Action)
	assert.Empty(t, m.Fields[0].Value)
}

func TestSaveFailureKeepsValues(t *testing.T) {
	api, srv := newTestAPI(t)
	f := categoryForm(t, api)
	srv.Fail(http.StatusInternalServerError)

	res := f.Submit(context.Background(), nil, NameValues{Name: "Beverages"})

	assert.False(t, res.Saved)
	assert.Error(t, res.Err)
	assert.False(t, res.Notice.OK)
	assert.Equal(t, "Ocorreu um erro ao salvar categoria. falha simulada", res.Notice.Text)
	require.NotNil(t, res.Model.Notice)
	assert.Equal(t, "Beverages", res.Model.Fields[0].Value)
}

func TestFindMissing(t *testing.T) {
	api, _ := newTestAPI(t)
	_, err := categoryForm(t, api).Find(context.Background(), 42)
	assert.ErrorIs(t, err, clients.ErrNotFound)
}
