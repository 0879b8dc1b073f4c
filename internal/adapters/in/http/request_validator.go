package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// CodeInvalidRequest is returned when a request does not match the API document.
const CodeInvalidRequest = "INVALID_REQUEST"

// RequestValidator checks requests against the OpenAPI document before they
// are bound. Paths the document does not describe pass through untouched.
type RequestValidator struct {
	router routers.Router
}

// NewRequestValidator builds the route table of the document.
func NewRequestValidator(doc *openapi3.T) (*RequestValidator, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}
	return &RequestValidator{router: router}, nil
}

// Middleware returns the echo middleware.
func (v *RequestValidator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := v.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					MultiError:         true,
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, invalidRequest(err))
			}

			return next(c)
		}
	}
}

func invalidRequest(err error) ErrorResponse {
	var problems []error
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		problems = multi
	} else {
		problems = []error{err}
	}

	resp := ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: "request does not match the API schema",
	}
	for _, problem := range problems {
		resp.Errors = append(resp.Errors, describeProblem(problem))
	}
	if len(resp.Errors) > 0 {
		resp.Field = resp.Errors[0].Field
	}
	return resp
}

func describeProblem(err error) FieldErrorResponse {
	fe := FieldErrorResponse{Code: CodeInvalidRequest, Message: err.Error()}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			fe.Field = reqErr.Parameter.Name
		} else if reqErr.RequestBody != nil {
			fe.Field = "body"
		}
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			fe.Field = strings.Join(pointer, ".")
		}
		fe.Message = schemaErr.Reason
	}
	return fe
}
