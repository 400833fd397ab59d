//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres"
	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres/person"
	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/heartmarshall/extrato-backend/internal/auth"
	"github.com/heartmarshall/extrato-backend/internal/config"
	authsvc "github.com/heartmarshall/extrato-backend/internal/service/auth"
	"github.com/heartmarshall/extrato-backend/internal/service/importer"
	"github.com/heartmarshall/extrato-backend/internal/service/people"
	"github.com/heartmarshall/extrato-backend/internal/service/statement"
	"github.com/heartmarshall/extrato-backend/internal/slug"
	"github.com/heartmarshall/extrato-backend/internal/transport/middleware"
	"github.com/heartmarshall/extrato-backend/internal/transport/rest"
)

const (
	adminUser     = "admin"
	adminPassword = "e2e-password"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). The ledger is global, so
// tables are emptied first.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	_, err := pool.Exec(context.Background(), `TRUNCATE ledger_entries, people RESTART IDENTITY`)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	personRepo := person.New(pool)
	ledgerRepo := ledger.New(pool)

	authCfg := config.AuthConfig{
		AdminUsername:    adminUser,
		AdminPassword:    adminPassword,
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		PasswordHashCost: 4,
	}
	jwtMgr := authpkg.NewJWTManager([]byte(authCfg.JWTSecret), authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	authService, err := authsvc.NewService(logger, jwtMgr, authCfg)
	require.NoError(t, err)

	importService := importer.NewService(logger, personRepo, ledgerRepo, txm, slug.NewGenerator(nil), nil,
		config.ImportConfig{MaxUploadBytes: 1 << 20, MaxTokenAttempts: 5})

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, ledgerRepo, "e2e"),
		Auth:      rest.NewAuthHandler(authService, logger),
		Statement: rest.NewStatementHandler(statement.NewService(logger, personRepo, ledgerRepo), logger),
		Admin:     rest.NewAdminHandler(people.NewService(logger, personRepo, txm), logger),
		Import:    rest.NewImportHandler(importService, 1<<20, logger),
	}, rest.RouterConfig{
		Logger: logger,
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
		Tokens:             authService,
		RateLimiter:        limiter,
		StatementPerSecond: 1000,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

func (ts *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (ts *testServer) doJSON(t *testing.T, method, path, token string, payload any, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	status, raw := ts.do(t, method, path, token, body, "application/json")
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return status
}

// login returns an admin access token.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	status := ts.doJSON(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": adminUser, "password": adminPassword}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// upload posts csv as a multipart file to the import route.
func (ts *testServer) upload(t *testing.T, token, query, csv string, out any) int {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "extrato.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, csv)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	status, raw := ts.do(t, http.MethodPost, "/api/admin/importacao-csv"+query, token, &buf, mw.FormDataContentType())
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return status
}

// ---------------------------------------------------------------------------
// CSV fixtures
// ---------------------------------------------------------------------------

const csvHeader = "Tipo,Status,Data prevista,Data efetiva,Valor previsto,Valor efetivo,Descrição,Conta,Contato,Forma,Projeto,ID Único,Repetição,Data de criação\n"

type row struct {
	contact   string
	planned   string
	actual    string
	amount    string
	paid      string
	desc      string
	uniqueID  string
	createdOn string
}

func buildCSV(rows ...row) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, r := range rows {
		createdOn := r.createdOn
		if createdOn == "" {
			createdOn = "01/03/2024"
		}
		fmt.Fprintf(&b, "Receita,Pago,%s,%s,%q,%q,%s,Banco,%s,Pix,Escola,%s,Única,%s\n",
			r.planned, r.actual, r.amount, r.paid, r.desc, r.contact, r.uniqueID, createdOn)
	}
	return b.String()
}

// personByContact reads the stored person through the admin API.
func (ts *testServer) personByContact(t *testing.T, token, contact string) map[string]any {
	t.Helper()

	var list []map[string]any
	status := ts.doJSON(t, http.MethodGet, "/api/admin/pessoas?all=true", token, nil, &list)
	require.Equal(t, http.StatusOK, status)

	for _, p := range list {
		if p["contato"] == contact {
			return p
		}
	}
	t.Fatalf("person %q not found", contact)
	return nil
}
