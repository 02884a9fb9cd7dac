// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import "context"

// Repository defines the data access contract for catalogue items.
type Repository interface {
	Create(context context.Context, product *Product) error
	List(context context.Context) ([]*Product, error)

	// Update and Delete are idempotent: an unknown id affects zero rows and
	// is not an error, matching the public contract.
	Update(context context.Context, product *Product) error
	Delete(context context.Context, id string) error
}
