package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-backend/internal/biz"
)

const birthDateLayout = "2006-01-02"

// sqliteUserRepo is the SQLite implementation of the user repository.
type sqliteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo creates a SQLite user repository.
func NewSQLiteUserRepo(db *sql.DB) biz.UserRepo {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) Save(ctx context.Context, u *biz.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, is_expert, first_name, last_name, gender, birth_date, email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.IsExpert, u.FirstName, u.LastName, string(u.Gender), encodeBirthDate(u.BirthDate), u.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*biz.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, is_expert, first_name, last_name, gender, birth_date, email
		FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no user found with id %s: %w", id, biz.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadDomainIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*biz.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, is_expert, first_name, last_name, gender, birth_date, email
		FROM users WHERE email = ? COLLATE NOCASE`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no user found with email %s: %w", email, biz.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadDomainIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *sqliteUserRepo) Update(ctx context.Context, u *biz.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_expert = ?, first_name = ?, last_name = ?, gender = ?, birth_date = ?
		WHERE id = ?`,
		u.IsExpert, u.FirstName, u.LastName, string(u.Gender), encodeBirthDate(u.BirthDate), u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no user found with id %s: %w", u.ID, biz.ErrNotFound)
	}
	return nil
}

func (r *sqliteUserRepo) AddDomains(ctx context.Context, userID string, domainIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, domainID := range domainIDs {
		// Existing associations are kept as-is.
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO user_domain (user_id, domain_id) VALUES (?, ?)",
			userID, domainID,
		); err != nil {
			return fmt.Errorf("failed to add domain %s: %w", domainID, err)
		}
	}
	return tx.Commit()
}

func (r *sqliteUserRepo) RemoveDomains(ctx context.Context, userID string, domainIDs []string) error {
	if len(domainIDs) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(domainIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(domainIDs)+1)
	args = append(args, userID)
	for _, id := range domainIDs {
		args = append(args, id)
	}

	_, err := r.db.ExecContext(ctx,
		"DELETE FROM user_domain WHERE user_id = ? AND domain_id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("failed to remove domains: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) ListExpertsByDomain(ctx context.Context, domainID string) ([]*biz.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.is_expert, u.first_name, u.last_name, u.gender, u.birth_date, u.email
		FROM users u
		JOIN user_domain ud ON ud.user_id = u.id
		WHERE ud.domain_id = ? AND u.is_expert = 1
		ORDER BY u.last_name, u.first_name`, domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to list experts: %w", err)
	}
	defer rows.Close()

	var users []*biz.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, user := range users {
		if err := r.loadDomainIDs(ctx, user); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Delete removes the user row inside a transaction and invokes confirm
// before committing, so a confirm failure restores the row.
func (r *sqliteUserRepo) Delete(ctx context.Context, id string, confirm func(context.Context) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no user found with id %s: %w", id, biz.ErrNotFound)
	}

	if confirm != nil {
		if err := confirm(ctx); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *sqliteUserRepo) loadDomainIDs(ctx context.Context, u *biz.User) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT domain_id FROM user_domain WHERE user_id = ? ORDER BY domain_id", u.ID)
	if err != nil {
		return fmt.Errorf("failed to load domain ids: %w", err)
	}
	defer rows.Close()

	u.DomainIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		u.DomainIDs = append(u.DomainIDs, id)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*biz.User, error) {
	var (
		u         biz.User
		gender    string
		birthDate sql.NullString
	)
	if err := row.Scan(&u.ID, &u.IsExpert, &u.FirstName, &u.LastName, &gender, &birthDate, &u.Email); err != nil {
		return nil, err
	}
	u.Gender = biz.Gender(gender)
	if birthDate.Valid && birthDate.String != "" {
		t, err := time.Parse(birthDateLayout, birthDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse birth date: %w", err)
		}
		u.BirthDate = t
	}
	return &u, nil
}

func encodeBirthDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(birthDateLayout)
}
