package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/felipe-souza17/stock-front/config"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/felipe-souza17/stock-front/internal/fakeapi"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	api    *fakeapi.Server
	front  *httptest.Server
	client *http.Client
}

func newHarness(t *testing.T, pageSize int) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := fakeapi.New()
	t.Cleanup(api.Close)
	api.AddUser("ana", "secret", domain.RoleAdmin)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router, err := New(&config.Config{
		APIBaseURL: api.URL,
		Port:       ":0",
		APITimeout: 2 * time.Second,
		PageSize:   pageSize,
	}, logger, prometheus.NewRegistry())
	require.NoError(t, err)

	front := httptest.NewServer(router)
	t.Cleanup(front.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{t: t, api: api, front: front, client: &http.Client{Jar: jar}}
}

// noFollow returns a client sharing the jar that stops at the first redirect.
func (h *harness) noFollow() *http.Client {
	return &http.Client{
		Jar: h.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	res, err := h.client.Get(h.front.URL + path)
	require.NoError(h.t, err)
	return res, body(h.t, res)
}

func (h *harness) post(path string, form url.Values) (*http.Response, string) {
	h.t.Helper()
	res, err := h.client.PostForm(h.front.URL+path, form)
	require.NoError(h.t, err)
	return res, body(h.t, res)
}

func (h *harness) login() {
	h.t.Helper()
	res, page := h.post("/login", url.Values{"username": {"ana"}, "password": {"secret"}})
	require.Equal(h.t, http.StatusOK, res.StatusCode)
	require.Contains(h.t, page, "Login realizado com sucesso!")
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestProtectedScreenRedirectsToLogin(t *testing.T) {
	h := newHarness(t, 10)

	res, err := h.noFollow().Get(h.front.URL + "/produtos")
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login?redirectedFrom=%2Fprodutos", res.Header.Get("Location"))
}

func TestLoginReturnsToRequestedScreen(t *testing.T) {
	h := newHarness(t, 10)

	res, page := h.get("/categorias")
	assert.Equal(t, "/login", res.Request.URL.Path)
	assert.Contains(t, page, `value="/categorias"`)

	res, page = h.post("/login", url.Values{
		"username":       {"ana"},
		"password":       {"secret"},
		"redirectedFrom": {"/categorias"},
	})
	assert.Equal(t, "/categorias", res.Request.URL.Path)
	assert.Contains(t, page, "ana (Administrador)")
}

func TestLoginFailureShowsMessage(t *testing.T) {
	h := newHarness(t, 10)

	res, page := h.post("/login", url.Values{"username": {"ana"}, "password": {"wrong"}})

	assert.Equal(t, "/login", res.Request.URL.Path)
	assert.Contains(t, page, "Usuário ou senha inválidos")

	res, _ = h.get("/")
	assert.Equal(t, "/login", res.Request.URL.Path)
}

func TestLoginValidation(t *testing.T) {
	h := newHarness(t, 10)

	res, page := h.post("/login", url.Values{"username": {""}, "password": {""}})

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, page, "O usuário é obrigatório.")
	assert.Empty(t, h.api.CallsTo(http.MethodPost, "/auth/login"))
}

func TestCategoryLifecycle(t *testing.T) {
	h := newHarness(t, 10)
	h.login()

	res, page := h.post("/categorias/add", url.Values{"nome": {"Beverages"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "/categorias", res.Request.URL.Path)
	assert.Equal(t, "no-store", res.Header.Get("Cache-Control"))
	assert.Contains(t, page, "Categoria criada com sucesso.")
	assert.Contains(t, page, "Beverages")

	cats := h.api.Categories()
	require.Len(t, cats, 1)
	id := cats[0].ID
	edit := "/categorias/" + itoa(id)

	res, page = h.get(edit)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, page, `value="Beverages"`)

	res, page = h.post(edit, url.Values{"nome": {"Drinks"}})
	assert.Equal(t, "/categorias", res.Request.URL.Path)
	assert.Contains(t, page, "Categoria atualizada com sucesso.")
	assert.Equal(t, "Drinks", h.api.Categories()[0].Name)

	res, page = h.get(edit + "/delete")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, page, "Você tem certeza?")

	res, page = h.post(edit+"/delete", url.Values{"nome": {"Drinks"}})
	assert.Equal(t, "/categorias", res.Request.URL.Path)
	assert.Contains(t, page, "Drinks deletado(a) com sucesso.")
	assert.Contains(t, page, "Nenhum(a) categoria encontrado(a).")
	assert.Empty(t, h.api.Categories())
}

func TestInvalidNameIsNotSent(t *testing.T) {
	h := newHarness(t, 10)
	h.login()

	res, page := h.post("/fornecedores/add", url.Values{"nome": {"A"}})

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, page, "O nome deve ter pelo menos 2 caracteres.")
	assert.Empty(t, h.api.CallsTo(http.MethodPost, "/fornecedores"))
}

func TestEditUnknownIDIsNotFound(t *testing.T) {
	h := newHarness(t, 10)
	h.login()

	res, page := h.get("/categorias/999")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, page, "Não encontrado")
	assert.NotContains(t, page, "<form method=\"post\" action=\"/categorias/999\"")

	res, _ = h.get("/produtos/abc")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProductScreens(t *testing.T) {
	h := newHarness(t, 2)
	cat := h.api.AddCategory("Beverages")
	for _, name := range []string{"Cola", "Tea", "Juice", "Water", "Beer"} {
		h.api.AddProduct(domain.Product{Name: name, Price: 2.5, Stock: 1})
	}
	h.login()

	res, page := h.get("/produtos")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, page, "Cola")
	assert.NotContains(t, page, "Juice")
	assert.Contains(t, page, "$2.50")
	assert.Contains(t, page, `href="/produtos?page=1"`)

	_, page = h.get("/produtos/add")
	assert.Contains(t, page, "Beverages")
	assert.Contains(t, page, "Selecione uma categoria")
	assert.Contains(t, page, "Nenhum fornecedor disponível")

	res, page = h.post("/produtos/add", url.Values{
		"nome":              {"Soda"},
		"preco":             {"12.5"},
		"quantidadeEstoque": {"3"},
		"categoria":         {itoa(cat.ID)},
		"fornecedor":        {""},
	})
	assert.Equal(t, "/produtos", res.Request.URL.Path)
	assert.Contains(t, page, "Produto criado com sucesso.")

	var soda domain.Product
	for _, p := range h.api.Products() {
		if p.Name == "Soda" {
			soda = p
		}
	}
	assert.Equal(t, 12.5, soda.Price)
	require.NotNil(t, soda.Category)
	assert.Equal(t, cat.ID, soda.Category.ID)
	assert.Nil(t, soda.Supplier)

	res, page = h.post("/produtos/add", url.Values{"nome": {"Free"}, "preco": {"0"}, "quantidadeEstoque": {"1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, page, "O preço deve ser maior que zero.")
}

func TestDeleteKeepsPage(t *testing.T) {
	h := newHarness(t, 2)
	var last domain.Product
	for _, name := range []string{"Cola", "Tea", "Juice", "Water"} {
		last = h.api.AddProduct(domain.Product{Name: name, Price: 1, Stock: 1})
	}
	h.login()

	res, err := h.noFollow().PostForm(h.front.URL+"/produtos/"+itoa(last.ID)+"/delete?page=1", url.Values{"nome": {"Water"}})
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/produtos?page=1", res.Header.Get("Location"))
	assert.Len(t, h.api.Products(), 3)
}

func TestLogout(t *testing.T) {
	h := newHarness(t, 10)
	h.login()

	res, _ := h.post("/logout", nil)
	assert.Equal(t, "/login", res.Request.URL.Path)

	res, _ = h.get("/fornecedores")
	assert.Equal(t, "/login", res.Request.URL.Path)
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	h := newHarness(t, 10)

	res, _ := h.get("/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, page := h.get("/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.Contains(page, "stockfront_http_requests_total"))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestSupplierScreensNameTheEntity(t *testing.T) {
	h := newHarness(t, 10)
	h.login()

	res, page := h.get("/fornecedores")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, page, "Adicionar Fornecedor</a>")
	assert.Contains(t, page, "Nenhum(a) fornecedor encontrado(a).")
	assert.NotContains(t, page, "Fornecedore<")
}
