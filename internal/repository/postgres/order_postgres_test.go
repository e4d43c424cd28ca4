package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"orderapi/internal/model"
	"orderapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "document_id", "shipment_id", "payload", "created_at"}

func testOrder() model.Order {
	return model.Order{
		Header: model.Header{
			CompanyName:      "SEMAT",
			ShipmentID:       "EXP-001",
			AvailableAt:      "01/02/2025",
			NumberOfStops:    2,
			NumberOfVehicles: 1,
		},
		Stops: []model.Stop{
			{
				StopNumber: 1,
				Address:    model.Address{Street: "Calle Mayor 1", Province: "Madrid", PostalCode: "28001"},
				Vehicles:   []model.Vehicle{{LicensePlate: "1234ABC", Make: "SEAT", Activity: model.ActivityCollection}},
			},
		},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestOrderPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.OrderRecord{
		ID:         "order-uuid",
		DocumentID: "doc-uuid",
		ShipmentID: "EXP-001",
		Order:      testOrder(),
		CreatedAt:  now,
	}
	payload := mustJSON(t, rec.Order)

	rows := sqlmock.NewRows(orderCols).
		AddRow(rec.ID, rec.DocumentID, rec.ShipmentID, payload, rec.CreatedAt)

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(rec.ID, rec.DocumentID, rec.ShipmentID, payload, rec.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, rec)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, rec.ID, result.ID)
	assert.Equal(t, "EXP-001", result.Order.Header.ShipmentID)
	assert.Len(t, result.Order.Stops, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(orderCols).
			AddRow("order-id", "doc-id", "EXP-001", mustJSON(t, testOrder()), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = ?").
			WithArgs("order-id").
			WillReturnRows(rows)

		rec, err := repo.FindByID(ctx, "order-id")

		assert.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "order-id", rec.ID)
		assert.Equal(t, "SEMAT", rec.Order.Header.CompanyName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		rows := sqlmock.NewRows(orderCols).
			AddRow("order-id", "doc-id", "EXP-001", []byte("{not json"), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = ?").
			WithArgs("order-id").
			WillReturnRows(rows)

		rec, err := repo.FindByID(ctx, "order-id")

		assert.Error(t, err)
		assert.Nil(t, rec)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_FindByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(orderCols).
		AddRow("order-id", "doc-id", "EXP-001", mustJSON(t, testOrder()), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE document_id = ?").
		WithArgs("doc-id").
		WillReturnRows(rows)

	rec, err := repo.FindByDocument(ctx, "doc-id")

	assert.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "doc-id", rec.DocumentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(orderCols).
		AddRow("order-id", "doc-id", "EXP-001", mustJSON(t, testOrder()), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM orders WHERE id = ?").
		WithArgs("order-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "order-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
