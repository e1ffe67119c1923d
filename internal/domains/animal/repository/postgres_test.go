package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"unispattes/internal/domains/animal/model"
)

var animalRowColumns = []string{
	"id", "nom", "espece", "race", "age_annees", "age_mois", "categorie_age", "sexe",
	"description", "photo", "date_arrivee", "disponible",
}

func newRepo(t *testing.T) (AnimalRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresAnimalRepository(mock), mock
}

func rexRow(rows *pgxmock.Rows, id int64, available bool) *pgxmock.Rows {
	return rows.AddRow(id, "Rex", model.SpeciesDog, "Berger", 2, 3, model.AgeAdult, model.SexMale,
		"Gentil", "", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), available)
}

func TestAnimalRepo_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM animaux WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(rexRow(pgxmock.NewRows(animalRowColumns), 7, true))

	a, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "Rex", a.Name)
	require.Equal(t, model.SpeciesDog, a.Species)
	require.True(t, a.Available)

	mock.ExpectQuery(`SELECT (.+) FROM animaux WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnRows(pgxmock.NewRows(animalRowColumns))

	_, err = repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, model.ErrAnimalNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalRepo_Create(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	arrived := time.Now()
	a := &model.Animal{Name: "Mimi", Species: model.SpeciesCat, AgeCategory: model.AgeJunior, Sex: model.SexFemale, Available: true}

	mock.ExpectQuery(`INSERT INTO animaux`).
		WithArgs("Mimi", model.SpeciesCat, "", 0, 0, model.AgeJunior, model.SexFemale, "", "", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date_arrivee"}).AddRow(int64(12), arrived))

	require.NoError(t, repo.Create(context.Background(), a))
	require.Equal(t, int64(12), a.ID)
	require.Equal(t, arrived, a.ArrivedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalRepo_ListRecent_OrdersByIDDesc(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	rows := pgxmock.NewRows(animalRowColumns)
	rexRow(rows, 9, false)
	rexRow(rows, 8, true)
	rexRow(rows, 7, true)

	mock.ExpectQuery(`SELECT (.+) FROM animaux ORDER BY id DESC LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(rows)

	animals, err := repo.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, animals, 3)
	require.Equal(t, int64(9), animals[0].ID)
	require.False(t, animals[0].Available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalRepo_List_WithFilters(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	filter := model.ListFilter{Search: "re", Species: model.SpeciesDog, Sex: model.SexMale, Page: 1}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM animaux WHERE 1=1 AND \(nom ILIKE \$1 OR race ILIKE \$1 OR description ILIKE \$1\) AND espece = \$2 AND sexe = \$3`).
		WithArgs("%re%", model.SpeciesDog, model.SexMale).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM animaux WHERE 1=1 (.+) ORDER BY date_arrivee DESC, id DESC$`).
		WithArgs("%re%", model.SpeciesDog, model.SexMale).
		WillReturnRows(rexRow(pgxmock.NewRows(animalRowColumns), 7, true))

	animals, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, animals, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalRepo_List_Paginated(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	filter := model.ListFilter{Page: 2, Limit: 10}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM animaux WHERE 1=1$`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`ORDER BY date_arrivee DESC, id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(rexRow(pgxmock.NewRows(animalRowColumns), 1, true))

	animals, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 11, total)
	require.Len(t, animals, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalRepo_SetAvailability_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE animaux SET disponible = \$2 WHERE id = \$1`).
		WithArgs(int64(5), false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetAvailability(context.Background(), 5, false)
	require.ErrorIs(t, err, model.ErrAnimalNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalRepo_Delete(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM animaux WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), 5))

	mock.ExpectExec(`DELETE FROM animaux WHERE id = \$1`).
		WithArgs(int64(6)).
		WillReturnError(errors.New("boom"))
	require.Error(t, repo.Delete(context.Background(), 6))

	require.NoError(t, mock.ExpectationsWereMet())
}
