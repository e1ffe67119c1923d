package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"unispattes/internal/domains/adoption/model"
	animalModel "unispattes/internal/domains/animal/model"
	"unispattes/internal/infrastructure/database"
	pkgdb "unispattes/pkg/database"
)

const requestColumns = `d.id, d.animal_id, d.utilisateur_id, d.nom_complet, d.email, d.telephone, d.adresse,
	d.type_logement, d.statut_logement, d.superficie, d.a_jardin, d.superficie_jardin,
	d.a_experience, d.description_experience, d.a_autres_animaux, d.details_autres_animaux,
	d.motivation, d.disponibilite, d.precisions_disponibilite,
	d.date_demande, d.statut, d.traitee, d.notes_admin, a.nom`

const requestFrom = ` FROM demandes_adoption d JOIN animaux a ON a.id = d.animal_id`

type postgresAdoptionRepository struct {
	pool database.PgxPool
}

func NewPostgresAdoptionRepository(pool database.PgxPool) AdoptionRepository {
	return &postgresAdoptionRepository{pool: pool}
}

func scanRequest(row pgx.Row) (*model.AdoptionRequest, error) {
	r := &model.AdoptionRequest{}
	err := row.Scan(
		&r.ID,
		&r.AnimalID,
		&r.AccountID,
		&r.FullName,
		&r.Email,
		&r.Phone,
		&r.Address,
		&r.HousingType,
		&r.HousingStatus,
		&r.Surface,
		&r.HasGarden,
		&r.GardenSurface,
		&r.HasExperience,
		&r.ExperienceDescription,
		&r.HasOtherPets,
		&r.OtherPetsDetails,
		&r.Motivation,
		&r.Availability,
		&r.AvailabilityDetails,
		&r.RequestedAt,
		&r.Status,
		&r.Processed,
		&r.AdminNotes,
		&r.AnimalName,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *postgresAdoptionRepository) Create(ctx context.Context, req *model.AdoptionRequest) error {
	query := `
		INSERT INTO demandes_adoption (
			animal_id, utilisateur_id, nom_complet, email, telephone, adresse,
			type_logement, statut_logement, superficie, a_jardin, superficie_jardin,
			a_experience, description_experience, a_autres_animaux, details_autres_animaux,
			motivation, disponibilite, precisions_disponibilite, statut, traitee
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, date_demande
	`

	err := r.pool.QueryRow(ctx, query,
		req.AnimalID,
		req.AccountID,
		req.FullName,
		req.Email,
		req.Phone,
		req.Address,
		req.HousingType,
		req.HousingStatus,
		req.Surface,
		req.HasGarden,
		req.GardenSurface,
		req.HasExperience,
		req.ExperienceDescription,
		req.HasOtherPets,
		req.OtherPetsDetails,
		req.Motivation,
		req.Availability,
		req.AvailabilityDetails,
		model.StatusPending,
		false,
	).Scan(&req.ID, &req.RequestedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.NewAlreadyRequestedError()
		}
		if isForeignKeyViolation(err, "animal_id") {
			return animalModel.NewAnimalNotFoundError()
		}
		return fmt.Errorf("failed to create adoption request: %w", err)
	}

	req.Status = model.StatusPending
	req.Processed = false
	return nil
}

// The animal can be deleted between the existence check and the insert.
func isForeignKeyViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503" && strings.Contains(pgErr.ConstraintName, column)
}

func (r *postgresAdoptionRepository) GetByID(ctx context.Context, id int64) (*model.AdoptionRequest, error) {
	req, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+requestFrom+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRequestNotFoundError()
		}
		return nil, fmt.Errorf("failed to get adoption request: %w", err)
	}
	return req, nil
}

func (r *postgresAdoptionRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.AdoptionRequest, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND d.statut = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}
	if filter.AnimalID > 0 {
		where += fmt.Sprintf(" AND d.animal_id = $%d", argCount)
		args = append(args, filter.AnimalID)
		argCount++
	}
	if filter.Processed != nil {
		where += fmt.Sprintf(" AND d.traitee = $%d", argCount)
		args = append(args, *filter.Processed)
		argCount++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (d.nom_complet ILIKE $%d OR d.email ILIKE $%d OR a.nom ILIKE $%d)", argCount, argCount, argCount)
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+requestFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count adoption requests: %w", err)
	}

	query := `SELECT ` + requestColumns + requestFrom + where + ` ORDER BY d.date_demande DESC, d.id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filter.Limit, filter.Offset())
	}

	requests, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *postgresAdoptionRepository) ListByAccount(ctx context.Context, accountID int64) ([]*model.AdoptionRequest, error) {
	query := `SELECT ` + requestColumns + requestFrom + ` WHERE d.utilisateur_id = $1 ORDER BY d.date_demande DESC, d.id DESC`
	return r.query(ctx, query, accountID)
}

func (r *postgresAdoptionRepository) query(ctx context.Context, query string, args ...any) ([]*model.AdoptionRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoption requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*model.AdoptionRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adoption request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adoption requests: %w", err)
	}
	return requests, nil
}

func (r *postgresAdoptionRepository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE demandes_adoption SET notes_admin = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewRequestNotFoundError()
	}
	return nil
}

func (r *postgresAdoptionRepository) RunInTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (t *txRepository) LockForDisposition(ctx context.Context, id int64) (*model.DispositionTarget, error) {
	query := `
		SELECT d.id, d.animal_id, d.statut, a.disponible
		FROM demandes_adoption d
		JOIN animaux a ON a.id = d.animal_id
		WHERE d.id = $1
		FOR UPDATE OF d, a
	`

	target := &model.DispositionTarget{}
	err := t.tx.QueryRow(ctx, query, id).Scan(
		&target.RequestID,
		&target.AnimalID,
		&target.Status,
		&target.AnimalAvailable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRequestNotFoundError()
		}
		return nil, fmt.Errorf("failed to lock adoption request: %w", err)
	}
	return target, nil
}

// UpdateStatus writes statut and the derived traitee flag together.
func (t *txRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE demandes_adoption SET statut = $2, traitee = $3 WHERE id = $1`,
		id, status, status != model.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewRequestNotFoundError()
	}
	return nil
}

func (t *txRepository) SetAnimalAvailable(ctx context.Context, animalID int64, available bool) error {
	tag, err := t.tx.Exec(ctx, `UPDATE animaux SET disponible = $2 WHERE id = $1`, animalID, available)
	if err != nil {
		return fmt.Errorf("failed to update animal availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return animalModel.NewAnimalNotFoundError()
	}
	return nil
}
