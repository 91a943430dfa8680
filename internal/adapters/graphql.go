// Package adapters – GraphQL projection adapter.
package adapters

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/tbourn/go-mock-server/internal/domain"
)

// GraphQL resolves GraphQL envelopes against a stored mock tree of the
// shape {"query": {<op>: {"data": …}}, "mutation": {…}}. The operation
// name selects the mock node; the operation's selection set projects the
// node's data object down to the requested top-level fields.
type GraphQL struct{}

// Respond interprets reqBody as a {query, operation_name?} envelope and
// serves it from the mock tree in stored.
//
// Returns (nil, nil) when the mock tree has no node for the operation, so
// the pipeline can fall through to the plain-JSON path. Returns
// ErrInvalidGraphQL when the envelope is not JSON, the mock tree is not
// JSON, or the query text cannot be understood at all.
func (GraphQL) Respond(reqBody, stored []byte, status int) (*Result, error) {
	var req domain.GraphQLRequest
	if err := json.Unmarshal(reqBody, &req); err != nil {
		return nil, domain.ErrInvalidGraphQL
	}

	var mock map[string]json.RawMessage
	if err := json.Unmarshal(stored, &mock); err != nil {
		return nil, domain.ErrInvalidGraphQL
	}

	opName, fields, err := parseQuery(req.Query)
	if err != nil {
		return nil, err
	}

	// Operation kind by prefix; anything else is not ours to answer.
	var kindKey string
	switch trimmed := strings.TrimSpace(req.Query); {
	case strings.HasPrefix(trimmed, "query"):
		kindKey = "query"
	case strings.HasPrefix(trimmed, "mutation"):
		kindKey = "mutation"
	default:
		return nil, nil
	}

	var ops map[string]json.RawMessage
	if raw, ok := mock[kindKey]; ok {
		if err := json.Unmarshal(raw, &ops); err != nil {
			return nil, domain.ErrInvalidGraphQL
		}
	}
	target, ok := ops[opName]
	if !ok {
		return nil, nil
	}

	// Project data down to the requested field set. A missing or non-object
	// data node projects to an empty object.
	projected := map[string]json.RawMessage{}
	var node struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(target, &node); err == nil && node.Data != nil {
		for name := range fields {
			if v, ok := node.Data[name]; ok {
				projected[name] = v
			}
		}
	}

	body, err := json.Marshal(map[string]any{"data": projected})
	if err != nil {
		return nil, domain.ErrInvalidGraphQL
	}
	return &Result{Status: status, Body: body}, nil
}

// parseQuery extracts the operation name and the flat set of field names
// from a GraphQL document. Field names are collected from top-level and
// nested selections alike; projection later only applies them at the top
// level, which matters solely when a nested field shares a top-level
// sibling's name.
//
// When the document does not parse, the fallback splits the query on
// whitespace and takes the token after a leading "query"/"mutation" as the
// operation name; if even that fails the query is rejected.
func parseQuery(query string) (string, map[string]struct{}, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		log.Debug().Err(err).Msg("graphql parse failed, falling back to token split")
		tokens := strings.Fields(query)
		if len(tokens) >= 2 && (tokens[0] == "query" || tokens[0] == "mutation") {
			return tokens[1], map[string]struct{}{}, nil
		}
		return "", nil, domain.ErrInvalidGraphQL
	}

	if len(doc.Operations) == 0 {
		return "", nil, domain.ErrInvalidGraphQL
	}

	opName := doc.Operations[0].Name
	fields := make(map[string]struct{})
	for _, op := range doc.Operations {
		collectFieldNames(op.SelectionSet, fields)
	}
	return opName, fields, nil
}

// collectFieldNames walks a selection set and records every field name it
// meets into the flat set.
func collectFieldNames(set ast.SelectionSet, fields map[string]struct{}) {
	for _, sel := range set {
		if f, ok := sel.(*ast.Field); ok {
			fields[f.Name] = struct{}{}
			if len(f.SelectionSet) > 0 {
				collectFieldNames(f.SelectionSet, fields)
			}
		}
	}
}
