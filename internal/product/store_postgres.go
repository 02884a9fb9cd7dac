// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sentra/internal/platform/database/schema"
	"github.com/taibuivan/sentra/internal/platform/dberr"
)

// PostgresRepository implements Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.CoreProduct.Table,
		schema.CoreProduct.ID, schema.CoreProduct.Name, schema.CoreProduct.Description,
		schema.CoreProduct.Price, schema.CoreProduct.Quantity,
		schema.CoreProduct.CreatedAt, schema.CoreProduct.UpdatedAt,
	)

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "product_create")
	}

	return nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC`,
		schema.CoreProduct.ID, schema.CoreProduct.Name, schema.CoreProduct.Description,
		schema.CoreProduct.Price, schema.CoreProduct.Quantity,
		schema.CoreProduct.Table,
		schema.CoreProduct.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "product_list")
	}
	defer rows.Close()

	// Non-nil so an empty catalogue serializes as [].
	products := make([]*Product, 0)
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity); err != nil {
			return nil, dberr.Wrap(err, "product_scan")
		}
		products = append(products, p)
	}

	return products, nil
}

func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.CoreProduct.Table,
		schema.CoreProduct.Name, schema.CoreProduct.Description, schema.CoreProduct.Price,
		schema.CoreProduct.Quantity, schema.CoreProduct.UpdatedAt,
		schema.CoreProduct.ID,
	)

	product.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "product_update")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreProduct.Table, schema.CoreProduct.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "product_delete")
	}

	return nil
}
