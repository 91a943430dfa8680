package domain

import "encoding/json"

// GraphQLRequest is the JSON envelope the GraphQL adapter accepts:
// a query document plus an optional operation name.
type GraphQLRequest struct {
	Query         string  `json:"query"`
	OperationName *string `json:"operation_name,omitempty"`
}

// GrpcMockRequest is the JSON envelope for gRPC-over-HTTP mock calls.
// The method may arrive under either "method" or "rpc"; Input is carried
// opaquely and is not interpreted by the server.
type GrpcMockRequest struct {
	Service string          `json:"service"`
	Method  string          `json:"method"`
	RPC     string          `json:"rpc,omitempty"`
	Input   json.RawMessage `json:"input,omitempty"`
}

// MethodName returns the RPC method, honoring the alternate "rpc" field
// name when "method" is absent.
func (r *GrpcMockRequest) MethodName() string {
	if r.Method != "" {
		return r.Method
	}
	return r.RPC
}

// GrpcMockResponse is the stored mock for one "service.method" key.
type GrpcMockResponse struct {
	Output  json.RawMessage `json:"output"`
	DelayMS *int64          `json:"delay_ms,omitempty"`
	Status  *int            `json:"status,omitempty"`
}
