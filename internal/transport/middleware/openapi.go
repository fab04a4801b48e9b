package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

// OpenAPIValidator checks requests against the API contract before they
// reach a handler. Requests for paths the contract does not describe are
// passed through untouched.
type OpenAPIValidator struct {
	router   routers.Router
	basePath string
	logger   *slog.Logger
}

// NewOpenAPIValidator loads the document at specPath. basePath is the prefix
// the API is mounted under and is stripped before route lookup.
func NewOpenAPIValidator(specPath, basePath string, logger *slog.Logger) (*OpenAPIValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	return newOpenAPIValidator(loader.Context, doc, basePath, logger)
}

// NewOpenAPIValidatorFromData is NewOpenAPIValidator for an in-memory document.
func NewOpenAPIValidatorFromData(data []byte, basePath string, logger *slog.Logger) (*OpenAPIValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	return newOpenAPIValidator(loader.Context, doc, basePath, logger)
}

func newOpenAPIValidator(ctx context.Context, doc *openapi3.T, basePath string, logger *slog.Logger) (*OpenAPIValidator, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	// routes are matched on the path below basePath
	doc.Servers = nil

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return &OpenAPIValidator{
		router:   router,
		basePath: strings.TrimSuffix(basePath, "/"),
		logger:   logger,
	}, nil
}

func (v *OpenAPIValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routed := r.Clone(r.Context())
		routed.URL.Path = strings.TrimPrefix(r.URL.Path, v.basePath)
		routed.URL.RawPath = ""

		route, pathParams, err := v.router.FindRoute(routed)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    routed,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			v.logger.Warn("request rejected by openapi validation",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeValidationError(w, err)
			return
		}

		// validation buffers the body and leaves a fresh reader on the clone
		r.Body = routed.Body
		next.ServeHTTP(w, r)
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	appErr := internal.NewValidationError(err.Error(), internal.ErrCodeInvalidRequest)
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
