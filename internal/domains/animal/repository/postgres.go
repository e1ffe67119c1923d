package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"unispattes/internal/domains/animal/model"
	"unispattes/internal/infrastructure/database"
)

const animalColumns = `id, nom, espece, race, age_annees, age_mois, categorie_age, sexe,
	description, photo, date_arrivee, disponible`

type postgresAnimalRepository struct {
	pool database.PgxPool
}

func NewPostgresAnimalRepository(pool database.PgxPool) AnimalRepository {
	return &postgresAnimalRepository{pool: pool}
}

func scanAnimal(row pgx.Row) (*model.Animal, error) {
	a := &model.Animal{}
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&a.AgeYears,
		&a.AgeMonths,
		&a.AgeCategory,
		&a.Sex,
		&a.Description,
		&a.Photo,
		&a.ArrivedAt,
		&a.Available,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func collectAnimals(rows pgx.Rows) ([]*model.Animal, error) {
	defer rows.Close()

	animals := make([]*model.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate animals: %w", err)
	}
	return animals, nil
}

func (r *postgresAnimalRepository) Create(ctx context.Context, a *model.Animal) error {
	query := `
		INSERT INTO animaux (
			nom, espece, race, age_annees, age_mois, categorie_age, sexe,
			description, photo, disponible
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, date_arrivee
	`

	err := r.pool.QueryRow(ctx, query,
		a.Name,
		a.Species,
		a.Breed,
		a.AgeYears,
		a.AgeMonths,
		a.AgeCategory,
		a.Sex,
		a.Description,
		a.Photo,
		a.Available,
	).Scan(&a.ID, &a.ArrivedAt)
	if err != nil {
		return fmt.Errorf("failed to create animal: %w", err)
	}
	return nil
}

func (r *postgresAnimalRepository) GetByID(ctx context.Context, id int64) (*model.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animaux WHERE id = $1`

	a, err := scanAnimal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewAnimalNotFoundError()
		}
		return nil, fmt.Errorf("failed to get animal: %w", err)
	}
	return a, nil
}

func (r *postgresAnimalRepository) Update(ctx context.Context, a *model.Animal) error {
	query := `
		UPDATE animaux SET
			nom = $2, espece = $3, race = $4, age_annees = $5, age_mois = $6,
			categorie_age = $7, sexe = $8, description = $9, disponible = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		a.AgeYears,
		a.AgeMonths,
		a.AgeCategory,
		a.Sex,
		a.Description,
		a.Available,
	)
	if err != nil {
		return fmt.Errorf("failed to update animal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAnimalNotFoundError()
	}
	return nil
}

func (r *postgresAnimalRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE animaux SET disponible = $2 WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAnimalNotFoundError()
	}
	return nil
}

func (r *postgresAnimalRepository) SetPhoto(ctx context.Context, id int64, photo string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE animaux SET photo = $2 WHERE id = $1`, id, photo)
	if err != nil {
		return fmt.Errorf("failed to set photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAnimalNotFoundError()
	}
	return nil
}

// Delete removes the animal; its adoption requests go with it (ON DELETE CASCADE).
func (r *postgresAnimalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM animaux WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete animal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAnimalNotFoundError()
	}
	return nil
}

func (r *postgresAnimalRepository) ListRecent(ctx context.Context, n int) ([]*model.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animaux ORDER BY id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent animals: %w", err)
	}
	return collectAnimals(rows)
}

func (r *postgresAnimalRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Animal, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (nom ILIKE $%d OR race ILIKE $%d OR description ILIKE $%d)", argCount, argCount, argCount)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argCount++
	}
	if filter.Species != "" {
		where += fmt.Sprintf(" AND espece = $%d", argCount)
		args = append(args, filter.Species)
		argCount++
	}
	if filter.Sex != "" {
		where += fmt.Sprintf(" AND sexe = $%d", argCount)
		args = append(args, filter.Sex)
		argCount++
	}
	if filter.AgeCategory != "" {
		where += fmt.Sprintf(" AND categorie_age = $%d", argCount)
		args = append(args, filter.AgeCategory)
		argCount++
	}
	if filter.Available != nil {
		where += fmt.Sprintf(" AND disponible = $%d", argCount)
		args = append(args, *filter.Available)
		argCount++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM animaux`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count animals: %w", err)
	}

	query := `SELECT ` + animalColumns + ` FROM animaux` + where + ` ORDER BY date_arrivee DESC, id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filter.Limit, filter.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list animals: %w", err)
	}
	animals, err := collectAnimals(rows)
	if err != nil {
		return nil, 0, err
	}
	return animals, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
