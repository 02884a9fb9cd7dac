// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	requestutil "github.com/taibuivan/sentra/internal/platform/request"
	"github.com/taibuivan/sentra/internal/platform/respond"
	"github.com/taibuivan/sentra/internal/platform/validate"
)

// Handler implements the catalogue HTTP endpoints. Every route is mounted
// behind the session-token guard; handlers assume an authorized caller.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the guarded catalogue routes on the given router.
//
// # Endpoints
//   - POST   /product        : Creates a catalogue item.
//   - GET    /products       : Lists all items.
//   - PUT    /products/{id}  : Replaces an item's writable fields.
//   - DELETE /products/{id}  : Removes an item.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/product", handler.createProduct)
	router.Get("/products", handler.listProducts)
	router.Put("/products/{id}", handler.updateProduct)
	router.Delete("/products/{id}", handler.deleteProduct)
}

// productRequest uses pointer fields so that ABSENT keys are distinguishable
// from zero values — the contract rejects missing fields, not zero prices.
type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

// validateComplete returns a 400 error listing every absent field, or nil.
func (input *productRequest) validateComplete() error {
	var details []apperr.FieldError

	for field, missing := range map[string]bool{
		"name":        input.Name == nil,
		"description": input.Description == nil,
		"price":       input.Price == nil,
		"quantity":    input.Quantity == nil,
	} {
		if missing {
			details = append(details, apperr.FieldError{Field: field, Message: "This field is required"})
		}
	}

	if len(details) > 0 {
		return apperr.ValidationError("Missing required fields", details...)
	}
	return nil
}

func (input *productRequest) toInput() Input {
	return Input{
		Name:        *input.Name,
		Description: *input.Description,
		Price:       *input.Price,
		Quantity:    *input.Quantity,
	}
}

func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var input productRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := input.validateComplete(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.CreateProduct(request.Context(), input.toInput()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"message": "Product created successfully"})
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.ListProducts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := input.validateComplete(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateProduct(request.Context(), id, input.toInput()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Product updated"})
}

func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.service.DeleteProduct(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Product deleted"})
}
