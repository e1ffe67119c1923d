package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"unispattes/internal/domains/account/model"
	"unispattes/internal/infrastructure/database"
)

const accountColumns = `id, email, password_hash, first_name, last_name, telephone, adresse,
	is_staff, is_superuser, is_active, tentatives_connexion, compte_verrouille, last_login, date_inscription`

type postgresAccountRepository struct {
	pool database.PgxPool
}

func NewPostgresAccountRepository(pool database.PgxPool) AccountRepository {
	return &postgresAccountRepository{pool: pool}
}

func scanAccount(row pgx.Row, extra ...any) (*model.Account, error) {
	a := &model.Account{}
	dest := []any{
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&a.Phone,
		&a.Address,
		&a.IsStaff,
		&a.IsSuperuser,
		&a.IsActive,
		&a.FailedAttempts,
		&a.Locked,
		&a.LastLogin,
		&a.RegisteredAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresAccountRepository) Create(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO utilisateurs (
			email, password_hash, first_name, last_name, telephone, adresse,
			is_staff, is_superuser, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, date_inscription
	`

	err := r.pool.QueryRow(ctx, query,
		a.Email,
		a.PasswordHash,
		a.FirstName,
		a.LastName,
		a.Phone,
		a.Address,
		a.IsStaff,
		a.IsSuperuser,
		a.IsActive,
	).Scan(&a.ID, &a.RegisteredAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.NewEmailExistsError()
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *postgresAccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM utilisateurs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewAccountNotFoundError()
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

func (r *postgresAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM utilisateurs WHERE LOWER(email) = LOWER($1)`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewAccountNotFoundError()
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return a, nil
}

func (r *postgresAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM utilisateurs WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *postgresAccountRepository) RecordLoginSuccess(ctx context.Context, id int64) error {
	query := `
		UPDATE utilisateurs
		SET last_login = NOW(), tentatives_connexion = 0, compte_verrouille = FALSE
		WHERE id = $1
	`
	return r.execOne(ctx, "record login", query, id)
}

func (r *postgresAccountRepository) SetFailedAttempts(ctx context.Context, id int64, attempts int, locked bool) error {
	query := `UPDATE utilisateurs SET tentatives_connexion = $2, compte_verrouille = $3 WHERE id = $1`
	return r.execOne(ctx, "set failed attempts", query, id, attempts, locked)
}

func (r *postgresAccountRepository) Unlock(ctx context.Context, id int64) error {
	query := `UPDATE utilisateurs SET tentatives_connexion = 0, compte_verrouille = FALSE WHERE id = $1`
	return r.execOne(ctx, "unlock account", query, id)
}

func (r *postgresAccountRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAccountNotFoundError()
	}
	return nil
}

func (r *postgresAccountRepository) ListWithRequestCount(ctx context.Context, filter model.ListFilter) ([]*model.AccountSummary, int, error) {
	filter.Normalize()

	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (u.email ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", argCount, argCount, argCount)
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}
	if filter.Locked != nil {
		where += fmt.Sprintf(" AND u.compte_verrouille = $%d", argCount)
		args = append(args, *filter.Locked)
		argCount++
	}
	if filter.Staff != nil {
		where += fmt.Sprintf(" AND u.is_staff = $%d", argCount)
		args = append(args, *filter.Staff)
		argCount++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM utilisateurs u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.telephone, u.adresse,
			u.is_staff, u.is_superuser, u.is_active, u.tentatives_connexion, u.compte_verrouille,
			u.last_login, u.date_inscription,
			(SELECT COUNT(*) FROM demandes_adoption d WHERE d.utilisateur_id = u.id) AS nombre_demandes
		FROM utilisateurs u` + where +
		fmt.Sprintf(" ORDER BY u.date_inscription DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	summaries := make([]*model.AccountSummary, 0)
	for rows.Next() {
		var count int
		a, err := scanAccount(rows, &count)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		summaries = append(summaries, &model.AccountSummary{Account: *a, RequestCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}
	return summaries, total, nil
}
