package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakePinger struct{ err error }

func (f *fakePinger) PingContext(context.Context) error { return f.err }

func check(t *testing.T, s *HealthServer, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	return resp.GetStatus()
}

func TestProbe_FollowsDatabase(t *testing.T) {
	db := &fakePinger{}
	s := NewHealthServer("127.0.0.1:0", nopLogger{}, db, time.Second)

	if got := s.probe(context.Background()); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("probe = %v, want SERVING", got)
	}
	if got := check(t, s, ServiceName); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("Check(%q) = %v", ServiceName, got)
	}

	db.err = errors.New("connection refused")
	s.probe(context.Background())
	if got := check(t, s, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("Check(\"\") = %v, want NOT_SERVING", got)
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := NewHealthServer("127.0.0.1:0", nopLogger{}, &fakePinger{}, time.Second)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Fatalf("unexpected result: %v, %v", resp, err)
	}

	_, err = s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unavailable, "down")
	})
	if status.Code(err) != codes.Unavailable {
		t.Fatalf("want Unavailable, got %v", err)
	}
}

func TestRun_ServesHealthAndStopsOnContextCancel(t *testing.T) {
	s := NewHealthServer("127.0.0.1:0", nopLogger{}, &fakePinger{}, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_HealthOverNetwork(t *testing.T) {
	s := NewHealthServer("127.0.0.1:50999", nopLogger{}, &fakePinger{}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	conn, err := grpc.NewClient("127.0.0.1:50999", grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		if err == nil {
			if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
				t.Fatalf("status = %v", resp.GetStatus())
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("health check never succeeded: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	s := NewHealthServer("127.0.0.1:99999", nopLogger{}, &fakePinger{}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}
