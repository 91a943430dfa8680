// Package handlers – admin surface: register, list, delete.
package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-mock-server/internal/dispatch"
	"github.com/tbourn/go-mock-server/internal/domain"
	"github.com/tbourn/go-mock-server/internal/http/middleware"
	"github.com/tbourn/go-mock-server/internal/registry"
	"github.com/tbourn/go-mock-server/internal/store"
)

// Admin implements the endpoint-management surface over the registries and
// the uploads store.
type Admin struct {
	Endpoints *registry.Endpoints
	Mocks     *registry.GrpcMocks
	Store     *store.Store
}

// registration is the decoded multipart /register form.
type registration struct {
	path           string
	methods        []string
	statusCode     *int
	fileData       []byte
	hasFile        bool
	authentication *string
	delayMS        *int64
	rateLimit      *domain.RateLimit
	dynamicVars    bool
	grpcService    string
	grpcMethod     string
}

// Register handles POST /register. The multipart form carries the endpoint
// path, its policy envelope, and the response body file; optional
// grpcService/grpcRPC fields additionally install the body as a gRPC mock.
//
// On success the stored body gets a fresh UUID name in the uploads area and
// the descriptor is installed under the path's canonical key. A failed body
// write leaves no registry entry behind.
func (a *Admin) Register(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidMultipart, "malformed multipart form")
		return
	}

	reg, err := decodeRegistration(form)
	if err != nil {
		switch err {
		case domain.ErrUtf8:
			fail(c, http.StatusBadRequest, ErrCodeInvalidUtf8, "form field is not valid utf-8")
		default:
			fail(c, http.StatusBadRequest, ErrCodeInvalidMultipart, err.Error())
		}
		return
	}

	ref, err := a.Store.Save(reg.fileData)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeFileError, "could not persist response body")
		return
	}

	if reg.grpcService != "" {
		var output json.RawMessage
		if err := json.Unmarshal(reg.fileData, &output); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "grpc mock body is not valid JSON")
			return
		}
		a.Mocks.Register(reg.grpcService, reg.grpcMethod, &domain.GrpcMockResponse{
			Output:  output,
			DelayMS: reg.delayMS,
			Status:  reg.statusCode,
		})
	}

	key := dispatch.CanonicalKey(reg.path)
	a.Endpoints.Insert(key, &domain.Endpoint{
		Methods:        reg.methods,
		File:           ref,
		StatusCode:     reg.statusCode,
		Authentication: reg.authentication,
		DelayMS:        reg.delayMS,
		RateLimit:      reg.rateLimit,
		DynamicVars:    reg.dynamicVars,
	})

	lg := middleware.LoggerFrom(c)
	lg.Info().Str("key", key).Str("file", ref).Msg("endpoint registered")

	ok(c, http.StatusOK, "Registered successfully")
}

// List handles GET /list and returns the whole registry as a JSON object
// keyed by canonical request key.
func (a *Admin) List(c *gin.Context) {
	ok(c, http.StatusOK, a.Endpoints.Snapshot())
}

// Delete handles DELETE /delete/*path. The path segment is percent-encoded
// by the caller; the stored body file is removed best effort.
func (a *Admin) Delete(c *gin.Context) {
	raw := strings.TrimPrefix(c.Param("path"), "/")
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}

	key := dispatch.CanonicalKey(decoded)
	desc := a.Endpoints.Remove(key)
	if desc == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "no endpoint registered under this path")
		return
	}
	a.Store.Remove(desc.File)

	ok(c, http.StatusOK, "Deleted successfully")
}

// decodeRegistration pulls the known fields out of the multipart form.
// Unknown fields are ignored; path and file are required.
func decodeRegistration(form *multipart.Form) (*registration, error) {
	reg := &registration{}

	for _, vals := range form.Value {
		for _, v := range vals {
			if !utf8.ValidString(v) {
				return nil, domain.ErrUtf8
			}
		}
	}

	if v, ok := formValue(form, "path"); ok {
		reg.path = v
	}
	if v, ok := formValue(form, "methods"); ok {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				reg.methods = append(reg.methods, m)
			}
		}
	}
	if v, ok := formValue(form, "status_code"); ok {
		code := 200
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			code = n
		}
		reg.statusCode = &code
	}
	if v, ok := formValue(form, "authentication"); ok && v != "null" {
		reg.authentication = &v
	}
	if v, ok := formValue(form, "delay"); ok {
		// A non-numeric delay is treated as absent, not as an error.
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && n >= 0 {
			reg.delayMS = &n
		}
	}
	if v, ok := formValue(form, "rate_limit"); ok && strings.Contains(v, "/") {
		requests, window, _ := strings.Cut(v, "/")
		rl := &domain.RateLimit{}
		if n, err := strconv.Atoi(strings.TrimSpace(requests)); err == nil {
			rl.Requests = n
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(window), 10, 64); err == nil {
			rl.WindowMS = n
		}
		reg.rateLimit = rl
	}
	if v, ok := formValue(form, "with_dynamic_vars"); ok {
		reg.dynamicVars, _ = strconv.ParseBool(strings.TrimSpace(v))
	}
	if v, ok := formValue(form, "grpcService"); ok {
		reg.grpcService = v
	}
	if v, ok := formValue(form, "grpcRPC"); ok {
		reg.grpcMethod = v
	}

	if files := form.File["file"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return nil, domain.ErrInvalidMultipart
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, domain.ErrInvalidMultipart
		}
		reg.fileData = data
		reg.hasFile = true
	}

	if reg.path == "" {
		return nil, domain.ErrInvalidMultipart
	}
	if !reg.hasFile {
		return nil, domain.ErrInvalidMultipart
	}
	if reg.grpcService != "" && reg.grpcMethod == "" {
		return nil, domain.ErrInvalidMultipart
	}
	return reg, nil
}

// formValue returns the first value for a text field.
func formValue(form *multipart.Form, name string) (string, bool) {
	vals := form.Value[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
