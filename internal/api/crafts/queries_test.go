package crafts

import (
	"testing"
	"time"

	"kalaconnect-backend/internal/domain/crafts"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newQueryDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func craftRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "artisan_name", "status", "created_at"})
	now := time.Now()
	for i, id := range ids {
		rows.AddRow(id, "Artisan "+id, string(crafts.StatusCompleted), now.Add(-time.Duration(i)*time.Minute))
	}
	return rows
}

func TestFeaturedQueryCompletedOnlyCappedAtLimit(t *testing.T) {
	db, mock := newQueryDB(t)

	// With 15 completed crafts in the table, the query must ask for completed
	// rows only and bind the limit, so at most 12 come back, most recent first.
	ids := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10", "c11", "c12"}
	mock.ExpectQuery(`^SELECT \* FROM "crafts" WHERE status = \$1 ORDER BY created_at DESC LIMIT \$2$`).
		WithArgs(string(crafts.StatusCompleted), FeaturedLimit).
		WillReturnRows(craftRows(ids...))

	var rows []crafts.Craft
	require.NoError(t, featuredQuery(db, FeaturedLimit).Find(&rows).Error)
	require.Len(t, rows, FeaturedLimit)
	assert.Equal(t, "c1", rows[0].ID)
	assert.Equal(t, "c12", rows[len(rows)-1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegionStatusQueryFiltersOnBothPredicates(t *testing.T) {
	db, mock := newQueryDB(t)

	mock.ExpectQuery(`^SELECT \* FROM "crafts" WHERE region = \$1 AND status = \$2 ORDER BY created_at DESC$`).
		WithArgs("jaipur", string(crafts.StatusCompleted)).
		WillReturnRows(craftRows("c1", "c2"))

	var rows []crafts.Craft
	require.NoError(t, regionStatusQuery(db, "jaipur", crafts.StatusCompleted).Find(&rows).Error)
	assert.Len(t, rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerCraftsQueryScopedToUser(t *testing.T) {
	db, mock := newQueryDB(t)

	mock.ExpectQuery(`^SELECT \* FROM "crafts" WHERE user_id = \$1 ORDER BY created_at DESC$`).
		WithArgs(uint(7)).
		WillReturnRows(craftRows("c1"))

	var rows []crafts.Craft
	require.NoError(t, ownerCraftsQuery(db, 7).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "c1", rows[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
