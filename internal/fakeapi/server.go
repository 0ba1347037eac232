// Package fakeapi is an in-memory stand-in for the remote inventory API.
// It speaks the same JSON as the real service and records every call.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/gin-gonic/gin"
)

type Call struct {
	Method    string
	Path      string
	Query     string
	Body      string
	RequestID string
}

type user struct {
	password string
	session  domain.Session
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	nextID     int64
	categories map[int64]domain.Category
	suppliers  map[int64]domain.Supplier
	products   map[int64]domain.Product
	users      map[string]user
	calls      []Call
	failStatus int
}

func New() *Server {
	s := &Server{
		categories: map[int64]domain.Category{},
		suppliers:  map[int64]domain.Supplier{},
		products:   map[int64]domain.Product{},
		users:      map[string]user{},
	}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.record, s.injectFailure)
	s.registerRoutes(router)
	s.Server = httptest.NewServer(router)
	return s
}

func (s *Server) registerRoutes(router gin.IRouter) {
	router.POST("/auth/login", s.login)

	categories := router.Group("/categorias")
	{
		categories.GET("", s.listCategories)
		categories.GET("/:id", s.getCategory)
		categories.POST("", s.saveCategory)
		categories.PUT("/:id", s.saveCategory)
		categories.DELETE("/:id", s.deleteCategory)
	}

	suppliers := router.Group("/fornecedores")
	{
		suppliers.GET("", s.listSuppliers)
		suppliers.GET("/:id", s.getSupplier)
		suppliers.POST("", s.saveSupplier)
		suppliers.PUT("/:id", s.saveSupplier)
		suppliers.DELETE("/:id", s.deleteSupplier)
	}

	products := router.Group("/produtos")
	{
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.POST("", s.saveProduct)
		products.PUT("/:id", s.saveProduct)
		products.DELETE("/:id", s.deleteProduct)
	}
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Query:     c.Request.URL.RawQuery,
		Body:      string(body),
		RequestID: c.GetHeader("X-Request-ID"),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	status := s.failStatus
	s.mu.Unlock()
	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": "falha simulada"})
		return
	}
	c.Next()
}

// Fail makes every following request answer with status; 0 restores normal
// behaviour.
func (s *Server) Fail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo filters recorded calls by method and path.
func (s *Server) CallsTo(method, path string) []Call {
	var out []Call
	for _, call := range s.Calls() {
		if call.Method == method && call.Path == path {
			out = append(out, call)
		}
	}
	return out
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) AddUser(username, password string, role domain.Role) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sess := domain.Session{UserID: s.nextID, Username: username, Role: role}
	s.users[username] = user{password: password, session: sess}
	return sess
}

func (s *Server) AddCategory(name string) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	cat := domain.Category{ID: s.nextID, Name: name}
	s.categories[cat.ID] = cat
	return cat
}

func (s *Server) AddSupplier(name string) domain.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sup := domain.Supplier{ID: s.nextID, Name: name}
	s.suppliers[sup.ID] = sup
	return sup
}

func (s *Server) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	s.products[p.ID] = p
	return p
}

func (s *Server) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.categories)
}

func (s *Server) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.products)
}

func (s *Server) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Requisição inválida"})
		return
	}
	s.mu.Lock()
	u, ok := s.users[creds.Username]
	s.mu.Unlock()
	if !ok || u.password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Usuário ou senha inválidos"})
		return
	}
	c.JSON(http.StatusOK, u.session)
}

func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.Categories())
}

func (s *Server) getCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	cat, found := s.categories[id]
	s.mu.Unlock()
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (s *Server) saveCategory(c *gin.Context) {
	var cat domain.Category
	if !bindNamed(c, &cat, func() string { return cat.Name }) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.assignID(c, &cat.ID, func(id int64) bool { _, f := s.categories[id]; return f })
	if !ok {
		return
	}
	s.categories[cat.ID] = cat
	c.JSON(status, cat)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.categories[id]; !found {
		notFound(c)
		return
	}
	delete(s.categories, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listSuppliers(c *gin.Context) {
	s.mu.Lock()
	out := sortedValues(s.suppliers)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	sup, found := s.suppliers[id]
	s.mu.Unlock()
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (s *Server) saveSupplier(c *gin.Context) {
	var sup domain.Supplier
	if !bindNamed(c, &sup, func() string { return sup.Name }) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.assignID(c, &sup.ID, func(id int64) bool { _, f := s.suppliers[id]; return f })
	if !ok {
		return
	}
	s.suppliers[sup.ID] = sup
	c.JSON(status, sup)
}

func (s *Server) deleteSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.suppliers[id]; !found {
		notFound(c)
		return
	}
	delete(s.suppliers, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	s.mu.Lock()
	all := sortedValues(s.products)
	s.mu.Unlock()

	totalPages := (len(all) + size - 1) / size
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	items := all[start:end]

	c.JSON(http.StatusOK, domain.Page[domain.Product]{
		Items:      items,
		TotalItems: len(all),
		TotalPages: totalPages,
		Index:      page,
		Size:       size,
		First:      page == 0,
		Last:       page >= totalPages-1,
		Empty:      len(items) == 0,
	})
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	p, found := s.products[id]
	s.mu.Unlock()
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) saveProduct(c *gin.Context) {
	var p domain.Product
	if !bindNamed(c, &p, func() string { return p.Name }) {
		return
	}
	if p.Price <= 0 || p.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Preço ou estoque inválido"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Category != nil {
		cat, found := s.categories[p.Category.ID]
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Categoria inexistente"})
			return
		}
		p.Category = &domain.Ref{ID: cat.ID, Name: cat.Name}
	}
	if p.Supplier != nil {
		sup, found := s.suppliers[p.Supplier.ID]
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Fornecedor inexistente"})
			return
		}
		p.Supplier = &domain.Ref{ID: sup.ID, Name: sup.Name}
	}
	status, ok := s.assignID(c, &p.ID, func(id int64) bool { _, f := s.products[id]; return f })
	if !ok {
		return
	}
	s.products[p.ID] = p
	c.JSON(status, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[id]; !found {
		notFound(c)
		return
	}
	delete(s.products, id)
	c.Status(http.StatusNoContent)
}

// assignID sets the id for a POST or checks existence for a PUT. Callers
// hold s.mu.
func (s *Server) assignID(c *gin.Context, id *int64, exists func(int64) bool) (int, bool) {
	if c.Request.Method == http.MethodPost {
		s.nextID++
		*id = s.nextID
		return http.StatusCreated, true
	}
	pathID, ok := parseID(c)
	if !ok {
		return 0, false
	}
	if !exists(pathID) {
		notFound(c)
		return 0, false
	}
	*id = pathID
	return http.StatusOK, true
}

func bindNamed(c *gin.Context, v any, name func() string) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Corpo inválido: " + err.Error()})
		return false
	}
	if name() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "O nome é obrigatório"})
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID inválido"})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Não encontrado"})
}

func sortedValues[T domain.Named](m map[int64]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out
}
