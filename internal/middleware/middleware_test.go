package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/bithub/internal/auth"
	"github.com/mmynk/bithub/internal/models"
	"github.com/mmynk/bithub/internal/rpc"
)

// whoAmI echoes the identity the interceptors put in the context.
type whoAmI struct {
	rpc.UnimplementedAuthServiceHandler
}

func (whoAmI) Me(ctx context.Context, req *connect.Request[rpc.MeRequest]) (*connect.Response[rpc.MeResponse], error) {
	return connect.NewResponse(&rpc.MeResponse{
		User:    &rpc.User{Id: GetUserID(ctx), Email: GetEmail(ctx)},
		IsAdmin: IsAdmin(ctx),
	}), nil
}

func (whoAmI) Logout(ctx context.Context, req *connect.Request[rpc.LogoutRequest]) (*connect.Response[rpc.LogoutResponse], error) {
	return connect.NewResponse(&rpc.LogoutResponse{}), nil
}

func setupServer(t *testing.T, interceptors ...connect.Interceptor) *rpc.AuthServiceClient {
	t.Helper()

	path, handler := rpc.NewAuthServiceHandler(whoAmI{}, connect.WithInterceptors(interceptors...))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return rpc.NewAuthServiceClient(http.DefaultClient, server.URL)
}

func bearer(req connect.AnyRequest, token string) {
	req.Header().Set("Authorization", "Bearer "+token)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := setupServer(t, RequireAuth(jwtManager))
	ctx := context.Background()

	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "amy@example.com"}, true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("valid token populates context", func(t *testing.T) {
		req := connect.NewRequest(&rpc.MeRequest{})
		bearer(req, token)
		resp, err := client.Me(ctx, req)
		if err != nil {
			t.Fatalf("Me failed: %v", err)
		}
		if resp.Msg.User.Id != "u1" || resp.Msg.User.Email != "amy@example.com" || !resp.Msg.IsAdmin {
			t.Errorf("unexpected identity: %+v admin=%v", resp.Msg.User, resp.Msg.IsAdmin)
		}
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"bad token", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&rpc.MeRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := client.Me(ctx, req)
			if connect.CodeOf(err) != connect.CodeUnauthenticated {
				t.Errorf("expected Unauthenticated, got %v", err)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := setupServer(t, OptionalAuth(jwtManager))
	ctx := context.Background()

	resp, err := client.Me(ctx, connect.NewRequest(&rpc.MeRequest{}))
	if err != nil {
		t.Fatalf("Me without token failed: %v", err)
	}
	if resp.Msg.User.Id != "" {
		t.Errorf("expected anonymous call, got user %q", resp.Msg.User.Id)
	}

	req := connect.NewRequest(&rpc.MeRequest{})
	bearer(req, "garbage")
	resp, err = client.Me(ctx, req)
	if err != nil {
		t.Fatalf("Me with bad token failed: %v", err)
	}
	if resp.Msg.User.Id != "" || resp.Msg.IsAdmin {
		t.Errorf("expected bad token to be ignored, got %+v", resp.Msg)
	}
}

func TestRateLimit(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	limiter := NewRateLimiter(1, 2)
	client := setupServer(t,
		RequireAuth(jwtManager),
		RateLimit(limiter, rpc.AuthServiceMeProcedure),
	)
	ctx := context.Background()

	amy, _ := jwtManager.Generate(&models.User{ID: "amy"}, false)
	bo, _ := jwtManager.Generate(&models.User{ID: "bo"}, false)

	call := func(token string) error {
		req := connect.NewRequest(&rpc.MeRequest{})
		bearer(req, token)
		_, err := client.Me(ctx, req)
		return err
	}

	for i := 0; i < 2; i++ {
		if err := call(amy); err != nil {
			t.Fatalf("call %d within burst failed: %v", i, err)
		}
	}
	err := call(amy)
	if connect.CodeOf(err) != connect.CodeResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Message() != ErrRateLimited.Error() {
		t.Errorf("expected rate limit message, got %v", err)
	}

	if err := call(bo); err != nil {
		t.Errorf("other user should have their own bucket: %v", err)
	}

	// Procedures not listed are never limited.
	for i := 0; i < 5; i++ {
		req := connect.NewRequest(&rpc.LogoutRequest{})
		bearer(req, amy)
		if _, err := client.Logout(ctx, req); err != nil {
			t.Fatalf("unlimited procedure failed: %v", err)
		}
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	client := setupServer(t, LoggingInterceptor(nil))

	if _, err := client.Me(context.Background(), connect.NewRequest(&rpc.MeRequest{})); err != nil {
		t.Errorf("Me failed: %v", err)
	}
	_, err := client.Register(context.Background(), connect.NewRequest(&rpc.RegisterRequest{}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Errorf("expected Unimplemented to pass through, got %v", err)
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(HTTPLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("preflight: expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS origin header")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected request to reach handler, got %d", rec.Code)
	}
}
