package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/bithub/internal/auth"
	"github.com/mmynk/bithub/internal/feed"
	"github.com/mmynk/bithub/internal/metrics"
	"github.com/mmynk/bithub/internal/middleware"
	"github.com/mmynk/bithub/internal/rpc"
	"github.com/mmynk/bithub/internal/storage/sqlite"
	"github.com/prometheus/client_golang/prometheus"
)

const adminEmail = "root@example.com"

type testEnv struct {
	auth    *rpc.AuthServiceClient
	bits    *rpc.BitServiceClient
	store   *sqlite.SQLiteStore
	metrics *metrics.Metrics
}

// setupTestServer creates a test server backed by a temp SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "bithub-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	broker := feed.NewBroker()
	m := metrics.New(prometheus.NewRegistry())

	authSvc := NewAuthService(
		auth.NewPasswordAuthenticator(store),
		store,
		jwtManager,
		auth.NewAdminList([]string{adminEmail}),
		logger,
	)
	bitSvc := NewBitService(store, broker, m)

	authPath, authHandler := rpc.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager), middleware.LoggingInterceptor(logger)))
	bitPath, bitHandler := rpc.NewBitServiceHandler(bitSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor(logger)))

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(bitPath, bitHandler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		broker.Close()
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testEnv{
		auth:    rpc.NewAuthServiceClient(http.DefaultClient, server.URL),
		bits:    rpc.NewBitServiceClient(http.DefaultClient, server.URL),
		store:   store,
		metrics: m,
	}
}

// session is a signed-in test user.
type session struct {
	userID string
	token  string
}

func (env *testEnv) register(t *testing.T, email, displayName string) session {
	t.Helper()
	_, err := env.auth.Register(context.Background(), connect.NewRequest(&rpc.RegisterRequest{
		Email:       email,
		Password:    "correct horse",
		DisplayName: displayName,
	}))
	if err != nil {
		t.Fatalf("Register %s failed: %v", email, err)
	}
	resp, err := env.auth.Login(context.Background(), connect.NewRequest(&rpc.LoginRequest{
		Email:    email,
		Password: "correct horse",
	}))
	if err != nil {
		t.Fatalf("Login %s failed: %v", email, err)
	}
	return session{userID: resp.Msg.User.Id, token: resp.Msg.Token}
}

// as attaches the session's bearer token to a request.
func as[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

func (env *testEnv) createBit(t *testing.T, s session, name string) string {
	t.Helper()
	resp, err := env.bits.CreateBit(context.Background(), as(s, &rpc.CreateBitRequest{
		Name:        name,
		Description: name + " description",
	}))
	if err != nil {
		t.Fatalf("CreateBit %s failed: %v", name, err)
	}
	return resp.Msg.Bit.Id
}

func (env *testEnv) rate(t *testing.T, s session, bitID string, score int32) *rpc.RateBitResponse {
	t.Helper()
	resp, err := env.bits.RateBit(context.Background(), as(s, &rpc.RateBitRequest{BitId: bitID, Score: score}))
	if err != nil {
		t.Fatalf("RateBit failed: %v", err)
	}
	return resp.Msg
}

func (env *testEnv) getBoard(t *testing.T, s session, mode string) *rpc.Board {
	t.Helper()
	resp, err := env.bits.GetBoard(context.Background(), as(s, &rpc.GetBoardRequest{SortMode: mode}))
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	return resp.Msg.Board
}
