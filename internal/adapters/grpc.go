// Package adapters – gRPC-over-HTTP mock adapter.
package adapters

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tbourn/go-mock-server/internal/domain"
	"github.com/tbourn/go-mock-server/internal/registry"
)

// Grpc serves JSON envelopes of the form {service, method|rpc, input?}
// from the gRPC mock table. There is no gRPC wire protocol here; the
// envelope is plain JSON over HTTP, which is what integration suites need
// from a mock.
type Grpc struct {
	Mocks *registry.GrpcMocks
}

// Respond decodes reqBody as a gRPC mock envelope and looks it up in the
// mock table. A body that is not such an envelope, or an envelope with no
// registered mock, yields (nil, nil) so the pipeline can fall through;
// the dedicated admin route turns that into its own 404.
//
// When the mock carries a delay the call sleeps before answering, honoring
// ctx cancellation.
func (g Grpc) Respond(ctx context.Context, reqBody []byte) (*Result, error) {
	var req domain.GrpcMockRequest
	if err := json.Unmarshal(reqBody, &req); err != nil {
		return nil, nil
	}
	method := req.MethodName()
	if req.Service == "" || method == "" {
		return nil, nil
	}

	mock := g.Mocks.Get(req.Service, method)
	if mock == nil {
		return nil, nil
	}

	if mock.DelayMS != nil && *mock.DelayMS > 0 {
		select {
		case <-time.After(time.Duration(*mock.DelayMS) * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	status := 200
	if mock.Status != nil {
		status = *mock.Status
	}
	body, err := json.Marshal(mock.Output)
	if err != nil {
		return nil, nil
	}
	return &Result{Status: status, Body: body}, nil
}
