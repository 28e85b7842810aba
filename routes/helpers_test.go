package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/auth"
	"github.com/Lanterman/online-store/models"
	"github.com/Lanterman/online-store/ws"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	justUser  models.User
	superUser models.User

	justToken  string
	superToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Comment{},
		&models.Basket{},
	))

	env := &testEnv{db: db}

	env.justUser = models.User{ID: "u-just", Username: "just_user", Email: "just@example.com"}
	env.superUser = models.User{ID: "u-super", Username: "super_user", Email: "super@example.com", IsStaff: true}
	require.NoError(t, db.Create(&env.justUser).Error)
	require.NoError(t, db.Create(&env.superUser).Error)

	env.justToken, err = auth.IssueJWT(&env.justUser)
	require.NoError(t, err)
	env.superToken, err = auth.IssueJWT(&env.superUser)
	require.NoError(t, err)

	env.router = gin.New()
	env.router.LoadHTMLGlob("../templates/*")
	SetupRoutes(env.router, db, nil, ws.NewHub())

	return env
}

// do performs a request against the wired router. An empty token means an
// anonymous request.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Host = "example.com"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func uintStr(v uint) string {
	return fmt.Sprintf("%d", v)
}

func commentPath(id uint) string {
	return fmt.Sprintf("/shop/comment/%d/", id)
}

func jsonUnmarshal(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: name}
	require.NoError(t, e.db.Create(&category).Error)
	return category
}

func (e *testEnv) createProduct(t *testing.T, name string, price uint, categoryID *uint, stockIn bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Slug:        name,
		CategoryID:  categoryID,
		Price:       price,
		StockIn:     stockIn,
		Description: models.DefaultDescription,
	}
	require.NoError(t, e.db.Create(&product).Error)
	return product
}

func (e *testEnv) createComment(t *testing.T, userID string, productID uint, parentID *uint, description string, date time.Time) models.Comment {
	t.Helper()
	comment := models.Comment{
		UserID:      &userID,
		ProductID:   productID,
		ParentID:    parentID,
		Description: description,
		Date:        date,
	}
	require.NoError(t, e.db.Create(&comment).Error)
	return comment
}
