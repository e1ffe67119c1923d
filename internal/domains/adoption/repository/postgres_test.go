package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unispattes/internal/domains/adoption/model"
	animalModel "unispattes/internal/domains/animal/model"
)

var requestRowColumns = []string{
	"id", "animal_id", "utilisateur_id", "nom_complet", "email", "telephone", "adresse",
	"type_logement", "statut_logement", "superficie", "a_jardin", "superficie_jardin",
	"a_experience", "description_experience", "a_autres_animaux", "details_autres_animaux",
	"motivation", "disponibilite", "precisions_disponibilite",
	"date_demande", "statut", "traitee", "notes_admin", "nom",
}

func newRepo(t *testing.T) (AdoptionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresAdoptionRepository(mock), mock
}

func requestValues(id int64, email string, status model.Status) []any {
	accountID := int64(4)
	return []any{
		id, int64(7), &accountID, "Alice Martin", email, "0601020304", "",
		model.HousingHouseGarden, model.HousingOwner, decimal.NewNullDecimal(decimal.NewFromInt(120)), true,
		decimal.NewNullDecimal(decimal.NewFromInt(300)),
		false, "", false, "",
		"J'adore les chiens", model.AvailableFlexible, "",
		time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC), status, status != model.StatusPending, "", "Rex",
	}
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestAdoptionRepo_Create(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	submitted := time.Now()
	req := &model.AdoptionRequest{
		AnimalID:      7,
		FullName:      "Alice Martin",
		Email:         "a@x.com",
		Phone:         "06",
		HousingType:   model.HousingFlatBalcony,
		HousingStatus: model.HousingTenant,
		Motivation:    "Compagnie",
		Availability:  model.AvailableFlexible,
	}

	mock.ExpectQuery(`INSERT INTO demandes_adoption`).
		WithArgs(int64(7), (*int64)(nil), "Alice Martin", "a@x.com", "06", "",
			model.HousingFlatBalcony, model.HousingTenant, decimal.NullDecimal{}, false, decimal.NullDecimal{},
			false, "", false, "", "Compagnie", model.AvailableFlexible, "", model.StatusPending, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "date_demande"}).AddRow(int64(31), submitted))

	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, int64(31), req.ID)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.False(t, req.Processed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_Create_ConstraintViolations(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO demandes_adoption`).
		WithArgs(anyArgs(20)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "demandes_adoption_animal_email_key"})
	err := repo.Create(ctx, &model.AdoptionRequest{AnimalID: 7})
	require.ErrorIs(t, err, model.ErrAlreadyRequested)

	var adoptionErr *model.AdoptionError
	require.ErrorAs(t, err, &adoptionErr)
	assert.Equal(t, model.MsgAlreadyRequested, adoptionErr.Message)

	mock.ExpectQuery(`INSERT INTO demandes_adoption`).
		WithArgs(anyArgs(20)...).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "demandes_adoption_animal_id_fkey"})
	err = repo.Create(ctx, &model.AdoptionRequest{AnimalID: 999})
	require.ErrorIs(t, err, animalModel.ErrAnimalNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`FROM demandes_adoption d JOIN animaux a ON a.id = d.animal_id WHERE d.id = \$1`).
		WithArgs(int64(31)).
		WillReturnRows(pgxmock.NewRows(requestRowColumns).AddRow(requestValues(31, "a@x.com", model.StatusPending)...))

	req, err := repo.GetByID(ctx, 31)
	require.NoError(t, err)
	assert.Equal(t, "Rex", req.AnimalName)
	require.NotNil(t, req.AccountID)
	assert.Equal(t, int64(4), *req.AccountID)
	assert.True(t, req.Surface.Decimal.Equal(decimal.NewFromInt(120)))
	assert.True(t, req.IsPending())

	mock.ExpectQuery(`WHERE d.id = \$1`).
		WithArgs(int64(999)).
		WillReturnRows(pgxmock.NewRows(requestRowColumns))
	_, err = repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, model.ErrRequestNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_List(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	processed := false
	filter := model.ListFilter{Status: model.StatusPending, AnimalID: 7, Processed: &processed, Search: "alice", Page: 2, Limit: 10}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM demandes_adoption d JOIN animaux a ON a.id = d.animal_id WHERE 1=1 AND d.statut = \$1 AND d.animal_id = \$2 AND d.traitee = \$3 AND \(d.nom_complet ILIKE \$4 OR d.email ILIKE \$4 OR a.nom ILIKE \$4\)`).
		WithArgs(model.StatusPending, int64(7), false, "%alice%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`ORDER BY d.date_demande DESC, d.id DESC LIMIT \$5 OFFSET \$6`).
		WithArgs(model.StatusPending, int64(7), false, "%alice%", 10, 10).
		WillReturnRows(pgxmock.NewRows(requestRowColumns).AddRow(requestValues(40, "a@x.com", model.StatusPending)...))

	requests, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, requests, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_UpdateNotes_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE demandes_adoption SET notes_admin = \$2 WHERE id = \$1`).
		WithArgs(int64(999), "rappeler").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.ErrorIs(t, repo.UpdateNotes(context.Background(), 999, "rappeler"), model.ErrRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_RunInTx_AcceptCommits(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF d, a`).
		WithArgs(int64(31)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "animal_id", "statut", "disponible"}).
			AddRow(int64(31), int64(7), model.StatusPending, true))
	mock.ExpectExec(`UPDATE demandes_adoption SET statut = \$2, traitee = \$3 WHERE id = \$1`).
		WithArgs(int64(31), model.StatusAccepted, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE animaux SET disponible = \$2 WHERE id = \$1`).
		WithArgs(int64(7), false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(tx TxRepository) error {
		target, err := tx.LockForDisposition(context.Background(), 31)
		if err != nil {
			return err
		}
		if err := tx.UpdateStatus(context.Background(), target.RequestID, model.StatusAccepted); err != nil {
			return err
		}
		return tx.SetAnimalAvailable(context.Background(), target.AnimalID, false)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_RunInTx_RollsBackOnError(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE demandes_adoption SET statut`).
		WithArgs(int64(31), model.StatusAccepted, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE animaux SET disponible`).
		WithArgs(int64(7), false).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(tx TxRepository) error {
		if err := tx.UpdateStatus(context.Background(), 31, model.StatusAccepted); err != nil {
			return err
		}
		return tx.SetAnimalAvailable(context.Background(), 7, false)
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionRepo_LockForDisposition_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF d, a`).
		WithArgs(int64(999)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "animal_id", "statut", "disponible"}))
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(tx TxRepository) error {
		_, err := tx.LockForDisposition(context.Background(), 999)
		return err
	})
	require.ErrorIs(t, err, model.ErrRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
