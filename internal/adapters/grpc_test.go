package adapters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/tbourn/go-mock-server/internal/domain"
	"github.com/tbourn/go-mock-server/internal/registry"
)

func newGrpcAdapter(t *testing.T) (Grpc, *registry.GrpcMocks) {
	t.Helper()
	mocks := registry.NewGrpcMocks()
	return Grpc{Mocks: mocks}, mocks
}

func TestGrpcRespondHappyPath(t *testing.T) {
	g, mocks := newGrpcAdapter(t)
	mocks.Register("UserService", "GetUser", &domain.GrpcMockResponse{
		Output: json.RawMessage(`{"id":"123","name":"John"}`),
	})

	res, err := g.Respond(context.Background(), []byte(`{"service":"UserService","method":"GetUser","input":{"id":"123"}}`))
	if err != nil || res == nil {
		t.Fatalf("expected handled, got res=%v err=%v", res, err)
	}
	if res.Status != 200 {
		t.Fatalf("default status is 200, got %d", res.Status)
	}
	if string(res.Body) != `{"id":"123","name":"John"}` {
		t.Fatalf("unexpected body %s", res.Body)
	}
}

func TestGrpcRespondAlternateRPCField(t *testing.T) {
	g, mocks := newGrpcAdapter(t)
	mocks.Register("S", "M", &domain.GrpcMockResponse{Output: json.RawMessage(`{}`)})

	res, err := g.Respond(context.Background(), []byte(`{"service":"S","rpc":"M"}`))
	if err != nil || res == nil {
		t.Fatalf("rpc field should be accepted, got res=%v err=%v", res, err)
	}
}

func TestGrpcRespondCustomStatus(t *testing.T) {
	g, mocks := newGrpcAdapter(t)
	status := 503
	mocks.Register("S", "Down", &domain.GrpcMockResponse{
		Output: json.RawMessage(`{"error":"unavailable"}`),
		Status: &status,
	})

	res, err := g.Respond(context.Background(), []byte(`{"service":"S","method":"Down"}`))
	if err != nil || res == nil {
		t.Fatalf("expected handled, got %v", err)
	}
	if res.Status != 503 {
		t.Fatalf("mock status must be used, got %d", res.Status)
	}
}

func TestGrpcRespondDelay(t *testing.T) {
	g, mocks := newGrpcAdapter(t)
	delay := int64(200)
	mocks.Register("UserService", "DelayedResponse", &domain.GrpcMockResponse{
		Output:  json.RawMessage(`{"status":"ok"}`),
		DelayMS: &delay,
	})

	start := time.Now()
	res, err := g.Respond(context.Background(), []byte(`{"service":"UserService","method":"DelayedResponse"}`))
	elapsed := time.Since(start)

	if err != nil || res == nil {
		t.Fatalf("expected handled, got %v", err)
	}
	if elapsed < 200*time.Millisecond {
		t.Fatalf("delay not applied, elapsed %v", elapsed)
	}
}

func TestGrpcRespondDelayCancelled(t *testing.T) {
	g, mocks := newGrpcAdapter(t)
	delay := int64(60_000)
	mocks.Register("S", "Slow", &domain.GrpcMockResponse{
		Output:  json.RawMessage(`{}`),
		DelayMS: &delay,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Respond(ctx, []byte(`{"service":"S","method":"Slow"}`))
	if err == nil {
		t.Fatalf("cancelled context should abort the delay")
	}
}

func TestGrpcRespondFallsThrough(t *testing.T) {
	g, _ := newGrpcAdapter(t)

	// Not a gRPC envelope at all.
	if res, err := g.Respond(context.Background(), []byte(`{"name":"John"}`)); res != nil || err != nil {
		t.Fatalf("plain JSON is not ours, got res=%v err=%v", res, err)
	}
	// Not JSON.
	if res, err := g.Respond(context.Background(), []byte(`plain text`)); res != nil || err != nil {
		t.Fatalf("non-JSON is not ours, got res=%v err=%v", res, err)
	}
	// Envelope shape but no registered mock.
	if res, err := g.Respond(context.Background(), []byte(`{"service":"S","method":"M"}`)); res != nil || err != nil {
		t.Fatalf("unregistered mock falls through, got res=%v err=%v", res, err)
	}
}
