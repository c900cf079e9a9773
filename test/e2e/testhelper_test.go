package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
)

type TestApp struct {
	Server     *httptest.Server
	Storage    *storage.Storage
	Container  testcontainers.Container
	BaseURL    string
	httpClient *http.Client
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// forEachDriver runs fn against a fresh app on every supported database.
// Postgres needs docker and is skipped in short mode.
func forEachDriver(t *testing.T, fn func(t *testing.T, app *TestApp)) {
	t.Run(config.DriverSQLite, func(t *testing.T) {
		app := setupTestApp(t, sqliteConfig(t), nil)
		defer app.cleanup(t)
		fn(t, app)
	})

	t.Run(config.DriverPostgres, func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping postgres e2e test in short mode")
		}
		cfg, container := postgresConfig(t)
		app := setupTestApp(t, cfg, nil)
		app.Container = container
		defer app.cleanup(t)
		fn(t, app)
	})
}

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "users.db"),
	}
}

func postgresConfig(t *testing.T) (config.DatabaseConfig, testcontainers.Container) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            testDBUser,
		Password:        testDBPassword,
		Name:            testDBName,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}, pgContainer
}

// setupTestApp wires the whole service the way cmd/api does. A nil
// rateLimits disables rate limiting.
func setupTestApp(t *testing.T, dbCfg config.DatabaseConfig, rateLimits *config.RateLimitConfig) *TestApp {
	t.Helper()

	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := zap.NewNop()

	store, err := storage.Open(ctx, dbCfg, logger)
	require.NoError(t, err)

	userSvc := user.NewService(store.Users, auth.NewBcryptHasher(4)) // Lower cost for faster tests

	var rateLimiter *middleware.RateLimiter
	if rateLimits != nil {
		limiterStore, err := middleware.NewLimiterStore(*rateLimits, nil)
		require.NoError(t, err)
		rateLimiter, err = middleware.NewRateLimiter(limiterStore, *rateLimits, logger)
		require.NoError(t, err)
	}

	router, err := server.NewRouter(server.RouterConfig{
		UserHandler: handler.NewUserHandler(userSvc, logger),
		RateLimiter: rateLimiter,
		Logger:      logger,
		Environment: "test",
	})
	require.NoError(t, err)

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:  ts,
		Storage: store,
		BaseURL: ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Storage.Close()

	if app.Container != nil {
		if err := app.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

func (app *TestApp) request(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil)
}

func (app *TestApp) post(path string, body any) (*http.Response, error) {
	return app.request(http.MethodPost, path, body)
}

func (app *TestApp) put(path string, body any) (*http.Response, error) {
	return app.request(http.MethodPut, path, body)
}

func (app *TestApp) delete(path string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil)
}

func parseResponse(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "response body: %s", string(body))
	return env
}

func decodeData(t *testing.T, env envelope, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest), "data: %s", string(env.Data))
}

// createUser posts a valid user and returns its id.
func (app *TestApp) createUser(t *testing.T, name, email, password string) int64 {
	t.Helper()

	resp, err := app.post("/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, parseResponse(t, resp), &created)
	require.Positive(t, created.ID)
	return created.ID
}
