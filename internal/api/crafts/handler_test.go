package crafts

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kalaconnect-backend/database"
	"kalaconnect-backend/internal/domain/crafts"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setHandlerDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	orig := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = orig
		sqlDB.Close()
	})
	return mock
}

// asUser wires a handler behind a stub auth context.
func asUser(userID uint, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

func expectCraftLookup(mock sqlmock.Sqlmock, id string, ownerID uint, status crafts.Status) {
	mock.ExpectQuery(`^SELECT \* FROM "crafts" WHERE id = \$1 ORDER BY "crafts"\."id" LIMIT \$2$`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "artisan_name", "status", "version"}).
			AddRow(id, ownerID, "Ramesh", string(status), 1))
}

func TestAttachmentEndpointsRejectNonOwnerWithoutWriting(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		path    string
		body    string
		handler gin.HandlerFunc
	}{
		{"region", "/crafts/c-1/region", `{"region":"jaipur"}`, SetRegion},
		{"audio", "/crafts/c-1/audio", `{"audio_file_id":"a-9"}`, AttachAudio},
		{"image", "/crafts/c-1/image", `{"image_file_id":"i-9"}`, AttachImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setHandlerDB(t)

			// Craft belongs to user 1; caller is user 2. The lookup is the
			// only statement allowed to run.
			expectCraftLookup(mock, "c-1", 1, crafts.StatusUploading)

			r := gin.New()
			r.POST("/crafts/:id/"+tt.name, asUser(2, tt.handler))

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet(), "no write may reach the database")
		})
	}
}

func TestAttachAudioOwnerWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := setHandlerDB(t)

	expectCraftLookup(mock, "c-1", 2, crafts.StatusUploading)
	mock.ExpectExec(`^UPDATE "crafts" SET "audio_file_id"=\$1,"updated_at"=\$2 WHERE "id" = \$3$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := gin.New()
	r.POST("/crafts/:id/audio", asUser(2, AttachAudio))

	req := httptest.NewRequest(http.MethodPost, "/crafts/c-1/audio", strings.NewReader(`{"audio_file_id":"a-9"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusConcurrentTransitionConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := setHandlerDB(t)

	// The read sees processing, but the guarded write hits zero rows because
	// another writer finished the craft in between.
	expectCraftLookup(mock, "c-1", 1, crafts.StatusProcessing)
	mock.ExpectExec(`^UPDATE "crafts" SET "status"=\$1,"version"=version \+ 1 WHERE id = \$2 AND status = \$3$`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := gin.New()
	r.POST("/crafts/:id/status", SetStatus)

	req := httptest.NewRequest(http.MethodPost, "/crafts/c-1/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusIllegalTransitionConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := setHandlerDB(t)

	// completed is terminal; no write may follow the lookup.
	expectCraftLookup(mock, "c-1", 1, crafts.StatusCompleted)

	r := gin.New()
	r.POST("/crafts/:id/status", SetStatus)

	req := httptest.NewRequest(http.MethodPost, "/crafts/c-1/status", strings.NewReader(`{"status":"processing"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeaturedLimitFrom(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", FeaturedLimit},
		{"5", 5},
		{"1", 1},
		{"12", FeaturedLimit},
		{"50", FeaturedLimit},
		{"0", FeaturedLimit},
		{"-3", FeaturedLimit},
		{"abc", FeaturedLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, featuredLimitFrom(tt.raw), "raw=%q", tt.raw)
	}
}
