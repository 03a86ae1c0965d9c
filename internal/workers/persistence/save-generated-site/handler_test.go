// internal/workers/persistence/save-generated-site/handler_test.go
package savegeneratedsite

import (
	"context"
	"errors"
	"testing"
	"time"

	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}

func createTestInput() *Input {
	return &Input{
		BusinessID: "biz-001",
		RequestID:  "req-001",
		Industry:   "landscaping",
		Selection: models.TemplateSelection{
			TemplateID: "classic-local",
			Strategy: models.CompetitiveStrategy{
				Positioning: models.PositioningBalanced,
			},
			SectionVariants: map[string]string{
				models.SectionHero: "hero-standard",
			},
		},
		Sections: map[string]models.PopulatedSection{
			models.SectionHero: {
				Variant: "hero-standard",
				Content: map[string]interface{}{"headline": "Greenline Landscaping"},
			},
		},
	}
}

func newMockHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	return handler, mock, func() { db.Close() }
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_Success(t *testing.T) {
	handler, mock, cleanup := newMockHandler(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("biz-001", "req-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO generated_sites`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.SiteID)
	assert.Equal(t, "generated", output.Status)
	assert.NotEmpty(t, output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateSite(t *testing.T) {
	handler, mock, cleanup := newMockHandler(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("biz-001", "req-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateCheckFails(t *testing.T) {
	handler, mock, cleanup := newMockHandler(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnError(errors.New("connection refused"))

	_, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSiteSaveFailed)
}

func TestExecute_InsertFails(t *testing.T) {
	handler, mock, cleanup := newMockHandler(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO generated_sites`).
		WillReturnError(errors.New("disk full"))

	_, err := handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSiteSaveFailed)
}

func TestExecute_PersistsTemplateAndPositioning(t *testing.T) {
	handler, mock, cleanup := newMockHandler(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO generated_sites`).
		WithArgs(
			sqlmock.AnyArg(), // site id
			"biz-001",
			"req-001",
			"landscaping",
			"classic-local",
			models.PositioningBalanced,
			sqlmock.AnyArg(), // selection json
			sqlmock.AnyArg(), // sections json
			"generated",
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
