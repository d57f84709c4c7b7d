package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (name, price, description, user_uid, created_at)
        VALUES (:name, :price, :description, :user_uid, :created_at)
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, &p.ID, p)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	products := []model.Product{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY created_at DESC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	return products, err
}

func (r *PGRepository) Update(ctx context.Context, in *dto.UpdateProductInput) (*model.Product, error) {
	sets := []string{"user_uid = :user_uid"}
	args := map[string]interface{}{
		"id":       in.ID,
		"user_uid": in.UserID,
	}

	if in.Name != nil {
		sets = append(sets, "name = :name")
		args["name"] = *in.Name
	}
	if in.Price != nil {
		sets = append(sets, "price = :price")
		args["price"] = *in.Price
	}
	if in.Description != nil {
		sets = append(sets, "description = :description")
		args["description"] = *in.Description
	}

	query := "UPDATE products SET " + strings.Join(sets, ", ") + " WHERE id = :id RETURNING *"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var p model.Product
	if err := nstmt.GetContext(ctx, &p, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
