package crafts

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newStoreWithMock(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormStore(db), mock
}

func TestPatchAIWritesOnlySelectedColumns(t *testing.T) {
	store, mock := newStoreWithMock(t)

	text := "mitti ke bartan"
	// Exactly the patched column plus the timestamp touch, nothing else.
	mock.ExpectExec(`^UPDATE "crafts" SET "(transcribed_text|updated_at)"=\$1,"(transcribed_text|updated_at)"=\$2 WHERE id = \$3$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.PatchAI(context.Background(), "c-1", AIPatch{TranscribedText: &text})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchAIMissingCraft(t *testing.T) {
	store, mock := newStoreWithMock(t)

	text := "x"
	mock.ExpectExec(`^UPDATE "crafts" SET `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.PatchAI(context.Background(), "missing", AIPatch{TranscribedText: &text})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchAIEmptyPatchTouchesNothing(t *testing.T) {
	store, mock := newStoreWithMock(t)

	err := store.PatchAI(context.Background(), "c-1", AIPatch{})
	require.NoError(t, err)
	// No SQL expected, none executed.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginProcessingTakesLease(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(`^UPDATE "crafts" SET "status"=\$1,"version"=version \+ 1 WHERE id = \$2 AND status = \$3$`).
		WithArgs(string(StatusProcessing), "c-1", string(StatusUploading)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.BeginProcessing(context.Background(), "c-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginProcessingLeaseAlreadyTaken(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(`^UPDATE "crafts" SET "status"=\$1,"version"=version \+ 1 WHERE id = \$2 AND status = \$3$`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`^SELECT count\(\*\) FROM "crafts" WHERE id = \$1$`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := store.BeginProcessing(context.Background(), "c-1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginProcessingMissingCraft(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(`^UPDATE "crafts" SET "status"=\$1,"version"=version \+ 1 WHERE id = \$2 AND status = \$3$`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`^SELECT count\(\*\) FROM "crafts" WHERE id = \$1$`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := store.BeginProcessing(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
