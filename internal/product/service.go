// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"

	"github.com/taibuivan/sentra/pkg/uuid"
)

// Input holds the writable fields of a catalogue item.
type Input struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// Service implements the catalogue use cases. Thin by design — the domain
// has no rules beyond persistence.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) CreateProduct(context context.Context, input Input) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}

	if err := service.repo.Create(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (service *Service) ListProducts(context context.Context) ([]*Product, error) {
	return service.repo.List(context)
}

func (service *Service) UpdateProduct(context context.Context, id string, input Input) error {
	product := &Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}
	return service.repo.Update(context, product)
}

func (service *Service) DeleteProduct(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
