// Package registry – gRPC mock table.
package registry

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-mock-server/internal/domain"
)

// GrpcMocks maps "<service>.<method>" to a stored mock response. Lookups
// are exact; a miss distinguishes a missing service from a missing method
// only in the logs, never for the caller.
type GrpcMocks struct {
	mu    sync.RWMutex
	mocks map[string]*domain.GrpcMockResponse
}

// NewGrpcMocks returns an empty gRPC mock table.
func NewGrpcMocks() *GrpcMocks {
	return &GrpcMocks{mocks: make(map[string]*domain.GrpcMockResponse)}
}

// Register installs a mock under "<service>.<method>", overwriting any
// previous entry.
func (r *GrpcMocks) Register(service, method string, mock *domain.GrpcMockResponse) {
	key := service + "." + method
	r.mu.Lock()
	r.mocks[key] = mock
	r.mu.Unlock()
}

// Get returns the mock stored for service and method, or nil when absent.
func (r *GrpcMocks) Get(service, method string) *domain.GrpcMockResponse {
	key := service + "." + method
	prefix := service + "."

	r.mu.RLock()
	defer r.mu.RUnlock()

	if mock, ok := r.mocks[key]; ok {
		cp := *mock
		return &cp
	}

	serviceExists := false
	for k := range r.mocks {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			serviceExists = true
			break
		}
	}
	if !serviceExists {
		log.Warn().Str("service", service).Msg("grpc service not found")
	} else {
		log.Warn().Str("service", service).Str("method", method).Msg("grpc method not found in service")
	}
	return nil
}
