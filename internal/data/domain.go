package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"user-backend/internal/biz"
)

// sqliteDomainRepo is the SQLite implementation of the domain repository.
type sqliteDomainRepo struct {
	db *sql.DB
}

// NewSQLiteDomainRepo creates a SQLite domain repository.
func NewSQLiteDomainRepo(db *sql.DB) biz.DomainRepo {
	return &sqliteDomainRepo{db: db}
}

func (r *sqliteDomainRepo) Save(ctx context.Context, d *biz.Domain) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO domains (id, name, description) VALUES (?, ?, ?)",
		d.ID, d.Name, d.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to save domain: %w", err)
	}
	return nil
}

func (r *sqliteDomainRepo) GetByID(ctx context.Context, id string) (*biz.Domain, error) {
	var d biz.Domain
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM domains WHERE id = ?", id,
	).Scan(&d.ID, &d.Name, &d.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no domain found with id %s: %w", id, biz.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *sqliteDomainRepo) List(ctx context.Context, name string, pageNumber, pageSize int) (*biz.Page[biz.Domain], error) {
	filter := "%" + name + "%"

	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM domains WHERE name LIKE ? COLLATE NOCASE", filter,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count domains: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description FROM domains
		WHERE name LIKE ? COLLATE NOCASE
		ORDER BY name
		LIMIT ? OFFSET ?`,
		filter, pageSize, pageNumber*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	content := make([]biz.Domain, 0, pageSize)
	for rows.Next() {
		var d biz.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, err
		}
		content = append(content, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &biz.Page[biz.Domain]{
		TotalPages:       totalPages,
		TotalElements:    total,
		Number:           pageNumber,
		Size:             pageSize,
		NumberOfElements: len(content),
		First:            pageNumber == 0,
		Last:             pageNumber+1 >= totalPages,
		Content:          content,
	}, nil
}

func (r *sqliteDomainRepo) Update(ctx context.Context, d *biz.Domain) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE domains SET name = ?, description = ? WHERE id = ?",
		d.Name, d.Description, d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update domain: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no domain found with id %s: %w", d.ID, biz.ErrNotFound)
	}
	return nil
}

// Delete removes a domain; deleting an absent domain is a no-op.
func (r *sqliteDomainRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM domains WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete domain: %w", err)
	}
	return nil
}
