// Package apiclient provides the typed HTTP clients used between the
// chronogate services: a token-service client (issue + introspection) and a
// resource-service client.
//
// Both share one request/response pipeline composed with a per-endpoint
// error-code lookup table. A recognized error envelope in the body takes
// precedence over the HTTP status, so domain errors stay distinguishable
// from generic HTTP failures even when both manifest as 4xx. Only when no
// recognized code is present does the pipeline fall back to the transport
// error classified from the status.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/httpclient"
	"github.com/chronogate/chronogate/logger"
	"github.com/chronogate/chronogate/validation"
)

// codeSet is a per-endpoint lookup table of recognized wire error codes.
type codeSet map[errors.Code]struct{}

func newCodeSet(codes ...errors.Code) codeSet {
	s := make(codeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// ResponseError is raised when a response body cannot be trusted: absent or
// unparseable JSON where a body is required, or a missing/mistyped field.
type ResponseError struct {
	// Field is the offending field name, "" when the whole body is bad.
	Field string
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("incorrect response: field %q %s", e.Field, e.Message)
	}
	return "incorrect response: " + e.Message
}

// IsIncorrectResponse checks if an error is a ResponseError.
func IsIncorrectResponse(err error) bool {
	var re *ResponseError
	return stderrors.As(err, &re)
}

// pipeline executes requests and applies the shared response-processing
// contract.
type pipeline struct {
	http *httpclient.Client
	log  *logger.Logger
}

func newPipeline(cfg httpclient.Config, component string) (pipeline, error) {
	c, err := httpclient.New(cfg)
	if err != nil {
		return pipeline{}, err
	}
	return pipeline{
		http: c,
		log:  logger.WithComponent(component),
	}, nil
}

// doJSON executes req and processes the response:
//  1. a body carrying a recognized error code becomes the matching typed
//     domain error, before any status inspection;
//  2. otherwise a failing status becomes a generic transport error;
//  3. otherwise the body is decoded into out and field-validated;
//     a missing or mistyped field raises a ResponseError naming it.
//
// out may be nil when no body is expected.
func (p *pipeline) doJSON(ctx context.Context, req httpclient.Request, recognized codeSet, out any) error {
	resp, httpErr := p.http.Do(ctx, req)
	if resp == nil {
		// Connection-level failure; nothing to inspect.
		return httpErr
	}

	if env, ok := errors.DecodeEnvelope(resp.Body); ok {
		if _, known := recognized[env.Error]; known {
			if appErr := errors.FromEnvelope(env); appErr != nil {
				return appErr
			}
		}
		p.log.Warn("Response carries unrecognized error code", logger.Fields(
			"code", string(env.Error),
			logger.FieldStatus, resp.StatusCode,
		))
	}

	if httpErr != nil {
		return httpErr
	}
	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return &ResponseError{Message: "empty json body"}
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			return &ResponseError{Field: typeErr.Field, Message: "has wrong type"}
		}
		return &ResponseError{Message: "body is not valid json"}
	}

	// The response was not produced by this process; validate server output
	// before trusting it. Non-struct targets (free-form maps) are checked by
	// the caller instead.
	if isStruct(out) {
		if err := validation.Validate(out); err != nil {
			var verr *validation.Error
			if stderrors.As(err, &verr) {
				p.log.Warn("Response failed field validation", logger.ErrorFields(err))
				return &ResponseError{Field: verr.First(), Message: "is missing or wrong type"}
			}
			return &ResponseError{Message: err.Error()}
		}
	}
	return nil
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
