// Package apitest runs an in-process SPOS backend double for tests. It
// speaks the real wire contract (the response envelope, the trailing-slash
// endpoints, the validate-open projection and the create-sale code) over a
// gin engine behind httptest, so client packages are exercised end to end
// without a network.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/miromero13/spos-terminal/internal/model"
)

const tokenSecret = "apitest-secret"

// Server is the fake backend. State is seeded and inspected through the
// exported helpers; all access is mutex-guarded because the http server
// handles requests on its own goroutines.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	openCash  *model.CashRegister
	closed    []model.CashRegister
	products  []model.Product
	customers []model.Customer
	sales     []model.CreateSaleRequest
	seenKeys  map[string]string // idempotency key to assigned code
	nextCode  int

	// saleFailures queues error message lists returned by the next
	// create-sale calls instead of persisting anything.
	saleFailures [][]string
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		seenKeys: make(map[string]string),
		nextCode: 1,
	}

	r := gin.New()
	r.POST("/api/auth/login-admin/", s.login)
	r.GET("/api/auth/check-token/", s.checkToken)
	r.GET("/api/cashes/", s.listCashes)
	r.POST("/api/cashes/", s.openRegister)
	r.POST("/api/cashes/close/", s.closeRegister)
	// validate/ shares the :id position; gin cannot register both.
	r.GET("/api/cashes/:id/", s.getCash)
	r.GET("/api/products/", s.listProducts)
	r.GET("/api/customers/", s.listCustomers)
	r.POST("/api/customers/", s.createCustomer)
	r.GET("/api/categories/", s.listCategories)
	r.POST("/api/sales/", s.createSale)

	s.Server = httptest.NewServer(r)
	return s
}

// Seeding and inspection helpers.

func (s *Server) SeedProducts(products ...model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, products...)
}

func (s *Server) SeedCustomers(customers ...model.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, customers...)
}

// FailNextSale makes the next create-sale call return 400 with the given
// structured messages.
func (s *Server) FailNextSale(messages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saleFailures = append(s.saleFailures, messages)
}

// Sales returns the persisted create-sale requests.
func (s *Server) Sales() []model.CreateSaleRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CreateSaleRequest, len(s.sales))
	copy(out, s.sales)
	return out
}

// OpenCash returns the currently open register, nil when none.
func (s *Server) OpenCash() *model.CashRegister {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openCash == nil {
		return nil
	}
	cp := *s.openCash
	return &cp
}

// SetPurchasesTotal simulates server-side accounting of purchases against
// the open register.
func (s *Server) SetPurchasesTotal(d decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openCash != nil {
		s.openCash.PurchasesTotal = d
	}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"statusCode": http.StatusOK, "message": "ok", "data": data})
}

func okList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"statusCode": http.StatusOK, "message": "ok", "data": data, "countData": count})
}

func fail(c *gin.Context, status int, messages ...string) {
	c.JSON(status, gin.H{"statusCode": status, "message": messages, "error": http.StatusText(status)})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "credenciales inválidas")
		return
	}
	claims := jwt.MapClaims{
		"id":   uuid.NewString(),
		"name": "Cajero de Prueba",
		"role": "cashier",
		"exp":  time.Now().Add(8 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tokenSecret))
	if err != nil {
		fail(c, http.StatusInternalServerError, "no se pudo generar el token")
		return
	}
	ok(c, gin.H{"accessToken": token})
}

func (s *Server) checkToken(c *gin.Context) {
	if c.Query("token") == "" {
		fail(c, http.StatusUnauthorized, "Autenticación requerida")
		return
	}
	ok(c, gin.H{"valid": true})
}

func (s *Server) openRegister(c *gin.Context) {
	var req model.OpenCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "JSON inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openCash != nil {
		fail(c, http.StatusBadRequest, "Ya existe una caja abierta")
		return
	}
	now := time.Now()
	s.openCash = &model.CashRegister{
		ID:             uuid.NewString(),
		Opening:        now,
		InitialBalance: req.InitialBalance,
		SalesTotal:     decimal.Zero,
		PurchasesTotal: decimal.Zero,
		User:           &model.User{ID: uuid.NewString(), Name: "Cajero de Prueba", Role: "cashier"},
		CreatedAt:      now,
	}
	ok(c, s.openCash)
}

func (s *Server) closeRegister(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openCash == nil {
		fail(c, http.StatusBadRequest, "No hay una caja abierta")
		return
	}
	now := time.Now()
	s.openCash.Closing = &now
	s.closed = append(s.closed, *s.openCash)
	s.openCash = nil
	ok(c, gin.H{"closed": true})
}

func (s *Server) getCash(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()

	// The validate-open endpoint lives under the same path segment.
	if id == "validate" {
		if s.openCash == nil {
			ok(c, model.ValidateCash{Validate: false})
			return
		}
		ok(c, model.ValidateCash{ID: s.openCash.ID, Validate: true})
		return
	}

	if s.openCash != nil && s.openCash.ID == id {
		ok(c, s.openCash)
		return
	}
	for i := range s.closed {
		if s.closed[i].ID == id {
			ok(c, s.closed[i])
			return
		}
	}
	fail(c, http.StatusNotFound, "caja no encontrada")
}

func (s *Server) listCashes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.CashRegister, 0, len(s.closed)+1)
	all = append(all, s.closed...)
	if s.openCash != nil {
		all = append(all, *s.openCash)
	}
	okList(c, all, len(all))
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attr, value := c.Query("attr"), c.Query("value")
	if attr != "name" || value == "" {
		okList(c, s.products, len(s.products))
		return
	}
	filtered := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if containsFold(p.Name, value) {
			filtered = append(filtered, p)
		}
	}
	okList(c, filtered, len(filtered))
}

func (s *Server) listCustomers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	okList(c, s.customers, len(s.customers))
}

func (s *Server) createCustomer(c *gin.Context) {
	var req model.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "JSON inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cust := model.Customer{
		ID:    uuid.NewString(),
		Name:  req.Name,
		CI:    req.CI,
		Phone: req.Phone,
		Email: req.Email,
		Role:  req.Role,
	}
	s.customers = append(s.customers, cust)
	ok(c, cust)
}

func (s *Server) listCategories(c *gin.Context) {
	ok(c, []model.Category{})
}

func (s *Server) createSale(c *gin.Context) {
	var req model.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "JSON inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.saleFailures) > 0 {
		messages := s.saleFailures[0]
		s.saleFailures = s.saleFailures[1:]
		fail(c, http.StatusBadRequest, messages...)
		return
	}

	if s.openCash == nil || s.openCash.ID != req.CashRegister {
		fail(c, http.StatusBadRequest, "No hay sesión de caja abierta")
		return
	}
	if len(req.Details) == 0 {
		fail(c, http.StatusBadRequest, "la venta no tiene detalles")
		return
	}

	// Idempotent create: a retried key returns the original code without
	// recording a second sale.
	key := c.GetHeader("X-Idempotency-Key")
	if key != "" {
		if code, seen := s.seenKeys[key]; seen {
			ok(c, model.CreateSaleResult{ID: uuid.NewString(), Code: code})
			return
		}
	}

	total := decimal.Zero
	for _, d := range req.Details {
		total = total.Add(d.Price.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}
	s.openCash.SalesTotal = s.openCash.SalesTotal.Add(total)
	s.sales = append(s.sales, req)

	code := padCode(s.nextCode)
	s.nextCode++
	if key != "" {
		s.seenKeys[key] = code
	}
	ok(c, model.CreateSaleResult{ID: uuid.NewString(), Code: code})
}

func padCode(n int) string {
	const width = 6
	digits := []byte("000000")
	for i := width - 1; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	lower := func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + 32
		}
		return r
	}
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if lower(h[i+j]) != lower(n[j]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
