// Package adapters contains the content adapters the dispatch pipeline
// selects from after the policy gates have passed: GraphQL projection and
// gRPC mock lookup. The plain-JSON path (with optional variable
// substitution) is handled by the pipeline itself.
//
// Adapters report a three-way outcome: a non-nil Result means the adapter
// handled the payload; (nil, nil) means the payload is not the adapter's to
// handle and the pipeline falls through; a non-nil error is terminal and
// short-circuits the request. Only "tried and failed" produces an error;
// "not mine" never does.
package adapters

// Result is a fully-formed adapter response. The built-in adapters always
// produce application/json bodies; the HTTP layer sets the header.
type Result struct {
	Status int
	Body   []byte
}
