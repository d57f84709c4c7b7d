package repository

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `
        INSERT INTO customers (name, phone, user_uid, created_at)
        VALUES (:name, :phone, :user_uid, :created_at)
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, &c.ID, c)
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := r.DB.SelectContext(ctx, &customers, `SELECT * FROM customers ORDER BY name`)
	return customers, err
}
