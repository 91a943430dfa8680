package registry

import (
	"encoding/json"
	"testing"

	"github.com/tbourn/go-mock-server/internal/domain"
)

func TestGrpcMocksRegisterAndGet(t *testing.T) {
	r := NewGrpcMocks()

	if r.Get("UserService", "GetUser") != nil {
		t.Fatalf("empty table should miss")
	}

	r.Register("UserService", "GetUser", &domain.GrpcMockResponse{
		Output: json.RawMessage(`{"id":"123"}`),
	})

	got := r.Get("UserService", "GetUser")
	if got == nil || string(got.Output) != `{"id":"123"}` {
		t.Fatalf("lookup returned %+v", got)
	}

	// Method miss within a known service is still a plain miss for callers.
	if r.Get("UserService", "DeleteUser") != nil {
		t.Fatalf("unknown method should miss")
	}
	// Unknown service likewise.
	if r.Get("OrderService", "GetUser") != nil {
		t.Fatalf("unknown service should miss")
	}
}

func TestGrpcMocksRegisterOverwrites(t *testing.T) {
	r := NewGrpcMocks()
	r.Register("S", "M", &domain.GrpcMockResponse{Output: json.RawMessage(`1`)})
	r.Register("S", "M", &domain.GrpcMockResponse{Output: json.RawMessage(`2`)})

	if got := r.Get("S", "M"); string(got.Output) != `2` {
		t.Fatalf("second register should overwrite, got %s", got.Output)
	}
}
