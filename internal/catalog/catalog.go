// Package catalog gives the sale screen read access to products, customers
// and categories, plus the quick-create customer action. Listings are
// read-mostly caches keyed by endpoint+query; any mutation that could
// affect them drops the relevant entries so the next read re-fetches.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/miromero13/spos-terminal/internal/api"
	"github.com/miromero13/spos-terminal/internal/model"
)

type Catalog struct {
	api *api.Client
	log zerolog.Logger

	mu    sync.Mutex
	cache map[string]interface{}
}

func New(client *api.Client, logger zerolog.Logger) *Catalog {
	return &Catalog{
		api:   client,
		log:   logger.With().Str("component", "catalog").Logger(),
		cache: make(map[string]interface{}),
	}
}

// Products lists the catalog, optionally filtered by name.
func (c *Catalog) Products(ctx context.Context, search string) ([]model.Product, error) {
	q := api.DefaultQuery()
	q.Limit = 50
	if search != "" {
		q = q.WithSearch("name", search)
	}
	key := api.EndpointProducts + "?" + q.Encode()

	if cached, ok := c.lookup(key); ok {
		return cached.([]model.Product), nil
	}
	var products []model.Product
	if _, err := c.api.List(ctx, api.EndpointProducts, q, &products); err != nil {
		return nil, err
	}
	c.store(key, products)
	return products, nil
}

// Customers lists every customer; the sale screen needs them unpaginated.
func (c *Catalog) Customers(ctx context.Context) ([]model.Customer, error) {
	key := api.EndpointCustomers
	if cached, ok := c.lookup(key); ok {
		return cached.([]model.Customer), nil
	}
	var customers []model.Customer
	if err := c.api.Get(ctx, api.EndpointCustomers, &customers); err != nil {
		return nil, err
	}
	c.store(key, customers)
	return customers, nil
}

// Categories lists the product categories.
func (c *Catalog) Categories(ctx context.Context) ([]model.Category, error) {
	key := api.EndpointCategories
	if cached, ok := c.lookup(key); ok {
		return cached.([]model.Category), nil
	}
	var categories []model.Category
	if err := c.api.Get(ctx, api.EndpointCategories, &categories); err != nil {
		return nil, err
	}
	c.store(key, categories)
	return categories, nil
}

// FindCustomer resolves a customer by id from the (possibly cached) listing.
func (c *Catalog) FindCustomer(ctx context.Context, id string) (*model.Customer, error) {
	customers, err := c.Customers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

// QuickCreateCustomer registers a customer from the sale screen. The
// password is a throwaway credential, as in the dashboard's dialog.
func (c *Catalog) QuickCreateCustomer(ctx context.Context, name string, ci, phone int64, email string) error {
	req := model.CreateCustomerRequest{
		CI:       ci,
		Name:     name,
		Phone:    phone,
		Email:    email,
		Password: uuid.NewString(),
		Role:     "customer",
	}
	if err := model.Validate(req); err != nil {
		return err
	}
	if err := c.api.Create(ctx, api.EndpointCustomers, req, nil, nil); err != nil {
		return err
	}
	c.Invalidate(api.EndpointCustomers)
	c.log.Info().Str("name", name).Msg("customer created")
	return nil
}

// Invalidate drops every cache entry under the given endpoint prefix.
func (c *Catalog) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		if strings.HasPrefix(key, prefix) {
			delete(c.cache, key)
		}
	}
}

func (c *Catalog) lookup(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache[key]
	return v, ok
}

func (c *Catalog) store(key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = v
}
