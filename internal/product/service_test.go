// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sentra/internal/product"
)

// memoryRepository is an in-memory Repository preserving insertion order.
type memoryRepository struct {
	mu       sync.Mutex
	products []*product.Product
}

func (r *memoryRepository) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *p
	r.products = append(r.products, &copied)
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*product.Product, 0, len(r.products))
	for _, p := range r.products {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, updated *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == updated.ID {
			copied := *updated
			r.products[i] = &copied
		}
	}
	// Unknown ids affect zero rows; not an error.
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.products[:0]
	for _, p := range r.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.products = kept
	return nil
}

func sampleInput() product.Input {
	return product.Input{
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless, brown switches",
		Price:       89.99,
		Quantity:    12,
	}
}

func TestService_CreateProduct(t *testing.T) {
	repo := &memoryRepository{}
	service := product.NewService(repo)

	created, err := service.CreateProduct(context.Background(), sampleInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Mechanical Keyboard", created.Name)

	// Each item gets its own identifier.
	second, err := service.CreateProduct(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
}

func TestService_ListProducts(t *testing.T) {
	repo := &memoryRepository{}
	service := product.NewService(repo)

	list, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	first, err := service.CreateProduct(context.Background(), sampleInput())
	require.NoError(t, err)

	input := sampleInput()
	input.Name = "Trackball"
	second, err := service.CreateProduct(context.Background(), input)
	require.NoError(t, err)

	list, err = service.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestService_UpdateProduct(t *testing.T) {
	repo := &memoryRepository{}
	service := product.NewService(repo)

	created, err := service.CreateProduct(context.Background(), sampleInput())
	require.NoError(t, err)

	input := sampleInput()
	input.Price = 69.99
	require.NoError(t, service.UpdateProduct(context.Background(), created.ID, input))

	list, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 69.99, list[0].Price)

	// Updating an unknown id is a no-op, not an error.
	assert.NoError(t, service.UpdateProduct(context.Background(), "missing-id", input))
}

func TestService_DeleteProduct(t *testing.T) {
	repo := &memoryRepository{}
	service := product.NewService(repo)

	created, err := service.CreateProduct(context.Background(), sampleInput())
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(context.Background(), created.ID))

	list, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	// Deleting an unknown id is a no-op, not an error.
	assert.NoError(t, service.DeleteProduct(context.Background(), created.ID))
}
