package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"edintake/internal/auth"
	"edintake/internal/config"
	"edintake/internal/entity"
	"edintake/internal/mirror"
	"edintake/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory model.Repository for handler tests.
type fakeRepo struct {
	mu           sync.Mutex
	users        []entity.DbUser
	applications []entity.DbApplication
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{}
}

func (f *fakeRepo) CreateUser(ctx context.Context, user *entity.DbUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uint(len(f.users) + 1)
	user.CreatedAt = time.Now().UTC()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.users {
		if strings.EqualFold(f.users[idx].Email, email) {
			user := f.users[idx]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.users {
		if f.users[idx].ID == id {
			user := f.users[idx]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.DbUser, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeRepo) ApproveUser(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.users {
		if f.users[idx].ID == id {
			f.users[idx].IsApproved = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountUsers(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeRepo) CreateApplication(ctx context.Context, application *entity.DbApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applications = append(f.applications, *application)
	return nil
}

func (f *fakeRepo) GetApplication(ctx context.Context, id string) (*entity.DbApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.applications {
		if f.applications[idx].ID == id {
			application := f.applications[idx]
			return &application, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListApplications(ctx context.Context, params *entity.ApplicationQuery) ([]entity.DbApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.DbApplication, 0)
	for _, application := range f.applications {
		if params != nil && params.CollectorEmail != "" && !strings.EqualFold(application.CollectorEmail, params.CollectorEmail) {
			continue
		}
		if params != nil && params.Status != "" && application.Status != params.Status {
			continue
		}
		out = append(out, application)
	}
	return out, nil
}

func (f *fakeRepo) UpdateApplication(ctx context.Context, id string, updates entity.ApplicationUpdates) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.applications {
		if f.applications[idx].ID != id {
			continue
		}
		if updates.Status != nil {
			f.applications[idx].Status = *updates.Status
		}
		if updates.FirstName != nil {
			f.applications[idx].FirstName = *updates.FirstName
		}
		if updates.Capital != nil {
			f.applications[idx].Capital = *updates.Capital
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountApplications(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.applications)), nil
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:            "test-secret",
		JWTIssuer:            "edintake",
		JWTExpirationMinutes: 60,
	}
}

// newTestServer builds a handler set over a fake repository and a router
// with the same route layout as the real server.
func newTestServer(t *testing.T) (*gin.Engine, *HTTPHandler, *fakeRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeRepo()
	cfg := testConfig()

	forwarder := mirror.NewForwarder(nil, time.Second)
	submissions := service.NewSubmissionService(repo, forwarder)
	exports := service.NewExportService(repo, nil)

	handler, err := NewHTTPHandler(cfg, repo, submissions, exports)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}

	r := gin.New()
	authGroup := r.Group("/api/auth")
	authGroup.POST("/signup", handler.Signup)
	authGroup.POST("/login", handler.Login)
	authGroup.POST("/logout", handler.Logout)
	authGroup.GET("/me", handler.AuthMiddleware(), handler.Me)

	protected := r.Group("/api")
	protected.Use(handler.AuthMiddleware())
	protected.GET("/applications/options", handler.FormOptions)
	protected.POST("/applications", handler.SubmitApplication)
	protected.GET("/applications", handler.ListMyApplications)

	admin := protected.Group("/admin")
	admin.Use(handler.RequireAdmin())
	admin.GET("/applications", handler.AdminListApplications)
	admin.GET("/applications/export", handler.AdminExportCSV)
	admin.GET("/applications/:id", handler.AdminGetApplication)
	admin.PATCH("/applications/:id", handler.AdminUpdateApplication)
	admin.GET("/stats", handler.AdminStats)
	admin.GET("/users", handler.ListUsers)
	admin.POST("/users/:id/approve", handler.ApproveUser)
	admin.POST("/users", handler.RequireSuperAdmin(), handler.CreateAdmin)

	return r, handler, repo
}

// addUser seeds an account directly into the fake repository and returns it.
func addUser(t *testing.T, repo *fakeRepo, email, password, role string, approved bool) *entity.DbUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsApproved:   approved,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// tokenFor issues a session token for a seeded account.
func tokenFor(t *testing.T, handler *HTTPHandler, user *entity.DbUser) string {
	t.Helper()
	token, _, err := handler.authManager.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
