package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed api.yaml
var bundled []byte

// ErrNoRoute is returned by ValidateRequest for requests the contract does not
// describe.
var ErrNoRoute = errors.New("openapi: no route")

// Operation is one method and path pair of the contract.
type Operation struct {
	ID     string
	Method string
	Path   string
}

// Contract is a loaded and validated OpenAPI document together with the
// router used to match requests against it.
type Contract struct {
	raw        []byte
	doc        *openapi3.T
	router     routers.Router
	operations []Operation
}

// Load parses and validates data.
func Load(ctx context.Context, data []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: build router: %w", err)
	}

	return &Contract{
		raw:        append([]byte(nil), data...),
		doc:        doc,
		router:     router,
		operations: collectOperations(doc),
	}, nil
}

// Default loads the bundled site contract.
func Default(ctx context.Context) (*Contract, error) {
	return Load(ctx, bundled)
}

// Raw returns the document as it was loaded.
func (c *Contract) Raw() []byte {
	return c.raw
}

// Title is the document title.
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Operations lists the operations sorted by path, then method.
func (c *Contract) Operations() []Operation {
	out := make([]Operation, len(c.operations))
	copy(out, c.operations)
	return out
}

// Describes reports whether the contract has a route for r.
func (c *Contract) Describes(r *http.Request) bool {
	_, _, err := c.router.FindRoute(r)
	return err == nil
}

// ValidateRequest checks parameters and body of r against its operation. The
// body is restored so handlers can decode it afterwards.
func (c *Contract) ValidateRequest(ctx context.Context, r *http.Request) error {
	route, params, err := c.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrNoRoute, r.Method, r.URL.Path)
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			MultiError:         false,
		},
	}
	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		return fmt.Errorf("openapi: %s %s: %w", r.Method, r.URL.Path, err)
	}
	return nil
}

// Reason condenses a validation error into a message fit for a client.
func Reason(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			return fmt.Sprintf("parameter %s: %s", reqErr.Parameter.Name, reqErr.Reason)
		case reqErr.RequestBody != nil:
			var schemaErr *openapi3.SchemaError
			if errors.As(reqErr.Err, &schemaErr) {
				if field := strings.Join(schemaErr.JSONPointer(), "."); field != "" {
					return fmt.Sprintf("body %s: %s", field, schemaErr.Reason)
				}
				return "body: " + schemaErr.Reason
			}
			if reqErr.Reason != "" {
				return "body: " + reqErr.Reason
			}
		}
		return reqErr.Error()
	}
	if errors.Is(err, ErrNoRoute) {
		return "unknown endpoint"
	}
	return err.Error()
}

func collectOperations(doc *openapi3.T) []Operation {
	var out []Operation
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: strings.ToUpper(method), Path: path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
