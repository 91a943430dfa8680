package dispatch

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-mock-server/internal/adapters"
	"github.com/tbourn/go-mock-server/internal/auth"
	"github.com/tbourn/go-mock-server/internal/domain"
	"github.com/tbourn/go-mock-server/internal/registry"
	"github.com/tbourn/go-mock-server/internal/store"
	"github.com/tbourn/go-mock-server/internal/vars"
)

// Request carries the pieces of an inbound dynamic request the pipeline
// consumes. Body is nil when the request carried none.
type Request struct {
	Method     string
	URL        *url.URL
	AuthHeader string
	Body       []byte
}

// Pipeline is the orchestrator for dynamic traffic. For every request it
// runs the strict gate sequence (fingerprint, lookup, method, auth, rate,
// delay), then loads the stored body and selects a content adapter.
//
// Registries are consulted under their own guards; the pipeline itself
// holds no locks across its suspension points (the delay sleep, the body
// read, and the gRPC adapter's delay).
type Pipeline struct {
	Endpoints *registry.Endpoints
	Ledger    *registry.RateLedger
	Store     *store.Store
	GraphQL   adapters.GraphQL
	Grpc      adapters.Grpc
}

// New wires a Pipeline from its collaborators.
func New(endpoints *registry.Endpoints, ledger *registry.RateLedger, st *store.Store, mocks *registry.GrpcMocks) *Pipeline {
	return &Pipeline{
		Endpoints: endpoints,
		Ledger:    ledger,
		Store:     st,
		Grpc:      adapters.Grpc{Mocks: mocks},
	}
}

// Serve runs one request through the pipeline and returns the response to
// write. Terminal failures surface as the domain sentinels (ErrNotFound,
// ErrMethodNotAllowed, ErrUnauthorized, ErrRateLimited, ErrInvalidGraphQL)
// and map to single status codes at the HTTP layer.
func (p *Pipeline) Serve(ctx context.Context, req Request) (*adapters.Result, error) {
	key := Fingerprint(req.URL)

	desc := p.Endpoints.Get(key)
	if desc == nil {
		return nil, domain.ErrNotFound
	}

	if !desc.AllowsMethod(req.Method) {
		log.Warn().Str("key", key).Str("method", req.Method).Msg("method not allowed for endpoint")
		return nil, domain.ErrMethodNotAllowed
	}

	if desc.Authentication != nil {
		if !auth.Validate(*desc.Authentication, req.AuthHeader) {
			return nil, domain.ErrUnauthorized
		}
	}

	// The rate key is the bare path: query variants share one budget,
	// methods do not.
	if err := p.Ledger.Check(req.URL.Path, req.Method, desc.RateLimit); err != nil {
		return nil, err
	}

	if desc.DelayMS != nil && *desc.DelayMS > 0 {
		log.Info().Int64("delay_ms", *desc.DelayMS).Str("key", key).Msg("applying artificial delay")
		select {
		case <-time.After(time.Duration(*desc.DelayMS) * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	stored, err := p.Store.Read(desc.File)
	if err != nil {
		return nil, err
	}

	if len(req.Body) > 0 {
		if bytes.Contains(req.Body, []byte(`"query"`)) {
			res, err := p.GraphQL.Respond(req.Body, stored, desc.EffectiveStatus())
			if err != nil {
				return nil, err
			}
			if res != nil {
				return res, nil
			}
			// No mock node for the operation: fall through to the plain
			// body below.
		} else {
			res, err := p.Grpc.Respond(ctx, req.Body)
			if err != nil {
				return nil, err
			}
			if res != nil {
				return res, nil
			}
		}
	}

	body := stored
	if desc.DynamicVars {
		params := p.params(req)
		body = []byte(vars.Replace(string(stored), params))
	}
	return &adapters.Result{Status: desc.EffectiveStatus(), Body: body}, nil
}

// params builds the substitution map for the plain-JSON path. A request
// body that is a non-empty JSON object wins outright; any other request
// (no body, a non-object body, or an empty object) falls back to query
// parameters and path-segment pairs.
func (p *Pipeline) params(req Request) map[string]string {
	if len(req.Body) > 0 {
		if m := vars.ParamsFromBody(req.Body); len(m) > 0 {
			return m
		}
	}
	return vars.ParamsFromURL(req.URL)
}
