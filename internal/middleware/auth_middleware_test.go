package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var secret = []byte("test-secret")

type gateFixture struct {
	app      *fiber.App
	userRepo repository.UserRepository
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	userRepo := repository.NewUserRepo(db)

	app := fiber.New()
	admin := app.Group("/admin", RequireAuth(secret, userRepo), RequireRole(model.RoleAdmin))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals("username")})
	})

	return &gateFixture{app: app, userRepo: userRepo}
}

func (f *gateFixture) seed(t *testing.T, username, role string, active bool) *model.User {
	t.Helper()
	user := &model.User{Name: username, Username: username, Role: role, IsActive: active, TokenVersion: "v1"}
	require.NoError(t, user.SetPassword("secret1"))
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func (f *gateFixture) get(t *testing.T, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGateRejectsMissingToken(t *testing.T) {
	f := newGateFixture(t)
	resp := f.get(t, "")
	assert.Equal(t, 401, resp.StatusCode)
}

func TestGateRejectsGarbageToken(t *testing.T) {
	f := newGateFixture(t)
	resp := f.get(t, "not-a-token")
	assert.Equal(t, 401, resp.StatusCode)
}

func TestGateRejectsWrongRole(t *testing.T) {
	f := newGateFixture(t)
	cashier := f.seed(t, "jane", model.RoleCashier, true)

	token, err := jwt.GenerateToken(secret, cashier.ID, cashier.Username, cashier.Name, cashier.Role, cashier.TokenVersion)
	require.NoError(t, err)

	// Valid identity, wrong role: forbidden rather than unauthorized.
	resp := f.get(t, token)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestGateRejectsInactiveAccount(t *testing.T) {
	f := newGateFixture(t)
	admin := f.seed(t, "root", model.RoleAdmin, false)

	token, err := jwt.GenerateToken(secret, admin.ID, admin.Username, admin.Name, admin.Role, admin.TokenVersion)
	require.NoError(t, err)

	resp := f.get(t, token)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestGateRejectsRotatedTokenVersion(t *testing.T) {
	f := newGateFixture(t)
	admin := f.seed(t, "root", model.RoleAdmin, true)

	token, err := jwt.GenerateToken(secret, admin.ID, admin.Username, admin.Name, admin.Role, admin.TokenVersion)
	require.NoError(t, err)

	require.NoError(t, f.userRepo.UpdateTokenVersion(admin.ID, "v2"))

	resp := f.get(t, token)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestGateAdmitsAdmin(t *testing.T) {
	f := newGateFixture(t)
	admin := f.seed(t, "root", model.RoleAdmin, true)

	token, err := jwt.GenerateToken(secret, admin.ID, admin.Username, admin.Name, admin.Role, admin.TokenVersion)
	require.NoError(t, err)

	resp := f.get(t, token)
	assert.Equal(t, 200, resp.StatusCode)
}
