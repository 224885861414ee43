// Package jsonrpc serves the gateway's Ethereum methods over JSON-RPC 2.0
// (https://www.jsonrpc.org/specification).
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
)

const (
	InvalidJSON    = -32700 // Invalid JSON was received by the server.
	InvalidRequest = -32600 // The JSON sent is not a valid Request object.
	MethodNotFound = -32601 // The method does not exist / is not available.
	InvalidParams  = -32602 // Invalid method parameter(s).
	InternalError  = -32603 // Internal JSON-RPC error.
)

var (
	ErrInvalidID = errors.New("id should be a string or an integer")

	errVersion      = errors.New("unsupported RPC request version")
	errNoMethod     = errors.New("no method specified")
	errParamsShape  = errors.New("params should be an array or an object")
	errParamsList   = errors.New("missing/unexpected params in list")
	errParamMissing = errors.New("missing non-optional param")

	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf(&Error{})

	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rpc",
		Subsystem: "server",
		Name:      "requests",
	}, []string{"method"})
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Err returns the standard error of code carrying data.
func Err(code int, data any) *Error {
	switch code {
	case InvalidJSON:
		return &Error{Code: InvalidJSON, Message: "Parse error", Data: data}
	case InvalidRequest:
		return &Error{Code: InvalidRequest, Message: "Invalid Request", Data: data}
	case MethodNotFound:
		return &Error{Code: MethodNotFound, Message: "Method Not Found", Data: data}
	case InvalidParams:
		return &Error{Code: InvalidParams, Message: "Invalid Params", Data: data}
	default:
		return &Error{Code: InternalError, Message: "Internal Error", Data: data}
	}
}

type Parameter struct {
	Name string
	// Optional parameters get their zero value when left out. Positionally, only
	// trailing ones may be left out.
	Optional bool
}

// Method binds a name to a handler. The handler may take a context.Context first,
// then one argument per entry of Params, and returns (result, *Error).
type Method struct {
	Name    string
	Params  []Parameter
	Handler any
}

type Validator interface {
	Struct(any) error
}

// endpoint is a registered method with its reflected handler.
type endpoint struct {
	Method
	fn          reflect.Value
	args        []reflect.Type
	withContext bool
}

type request struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

func errorResponse(id json.RawMessage, err *Error) *response {
	return &response{Version: "2.0", Error: err, ID: id}
}

// notification reports whether no response is expected for r.
func (r *request) notification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

func (r *request) check() error {
	if !r.notification() {
		switch c := r.ID[0]; {
		case c == '"':
		case c == '-' || (c >= '0' && c <= '9'):
			if bytes.ContainsAny(r.ID, ".eE") {
				return ErrInvalidID
			}
		default:
			return ErrInvalidID
		}
	}
	if r.Version != "2.0" {
		return errVersion
	}
	if r.Method == "" {
		return errNoMethod
	}
	if len(r.Params) > 0 {
		switch r.Params[0] {
		case '[', '{', 'n':
		default:
			return errParamsShape
		}
	}
	return nil
}

type Server struct {
	endpoints map[string]*endpoint
	validator Validator
	log       utils.SimpleLogger
	pool      *pool.Pool
}

// NewServer returns a server that runs at most maxGoroutines batch requests at once.
func NewServer(maxGoroutines int, log utils.SimpleLogger) *Server {
	metrics.MustRegister(requests)
	return &Server{
		endpoints: make(map[string]*endpoint),
		log:       log,
		pool:      pool.New().WithMaxGoroutines(maxGoroutines),
	}
}

// WithValidator validates struct arguments, including those inside slices, before
// they reach a handler.
func (s *Server) WithValidator(validator Validator) *Server {
	s.validator = validator
	return s
}

func (s *Server) RegisterMethods(methods ...Method) error {
	for _, method := range methods {
		if err := s.RegisterMethod(method); err != nil {
			return err
		}
	}
	return nil
}

// RegisterMethod checks the handler signature against the declared params and
// registers it under method.Name.
func (s *Server) RegisterMethod(method Method) error {
	fnType := reflect.TypeOf(method.Handler)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return errors.New("handler must be a function")
	}

	e := &endpoint{Method: method, fn: reflect.ValueOf(method.Handler)}
	for i := range fnType.NumIn() {
		if i == 0 && fnType.In(0).Implements(contextType) {
			e.withContext = true
			continue
		}
		e.args = append(e.args, fnType.In(i))
	}
	if len(e.args) != len(method.Params) {
		return errors.New("number of non-context function params and param names must match")
	}
	if fnType.NumOut() != 2 {
		return errors.New("handler must return 2 values")
	}
	if fnType.Out(1) != errorType {
		return errors.New("second return value must be a *jsonrpc.Error")
	}

	s.endpoints[method.Name] = e
	return nil
}

// Handle serves a single request or a batch held in data. It returns nil when no
// response is due, which is the case for notifications.
func (s *Server) Handle(ctx context.Context, data []byte) ([]byte, error) {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) > 0 && data[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(data, &batch); err != nil {
			return json.Marshal(errorResponse(nil, Err(InvalidJSON, err.Error())))
		}
		if len(batch) == 0 {
			return json.Marshal(errorResponse(nil, Err(InvalidRequest, "empty batch")))
		}
		return s.handleBatch(ctx, batch)
	}

	req := new(request)
	if err := json.Unmarshal(data, req); err != nil {
		return json.Marshal(errorResponse(nil, Err(InvalidJSON, err.Error())))
	}
	if res := s.handleRequest(ctx, req); res != nil {
		return json.Marshal(res)
	}
	return nil, nil
}

// handleBatch runs the requests of a batch on the pool. Responses keep the order
// of their requests.
func (s *Server) handleBatch(ctx context.Context, batch []json.RawMessage) ([]byte, error) {
	responses := make([]*response, len(batch))

	var wg sync.WaitGroup
	for i, raw := range batch {
		req := new(request)
		if err := json.Unmarshal(raw, req); err != nil {
			responses[i] = errorResponse(nil, Err(InvalidRequest, err.Error()))
			continue
		}
		wg.Add(1)
		s.pool.Go(func() {
			defer wg.Done()
			responses[i] = s.handleRequest(ctx, req)
		})
	}
	wg.Wait()

	results := make([]*response, 0, len(responses))
	for _, res := range responses {
		if res != nil {
			results = append(results, res)
		}
	}
	// a batch of notifications gets no response at all
	if len(results) == 0 {
		return nil, nil
	}
	return json.Marshal(results)
}

func (s *Server) handleRequest(ctx context.Context, req *request) *response {
	start := time.Now()
	s.log.Debugw("Serving RPC request", "method", req.Method, "id", string(req.ID), "params", string(req.Params))
	defer func() {
		s.log.Debugw("Responding to RPC request", "method", req.Method, "id", string(req.ID), "took", time.Since(start))
	}()

	if err := req.check(); err != nil {
		var id json.RawMessage
		if !errors.Is(err, ErrInvalidID) {
			id = req.ID
		}
		return errorResponse(id, Err(InvalidRequest, err.Error()))
	}

	e, ok := s.endpoints[req.Method]
	if !ok {
		return errorResponse(req.ID, Err(MethodNotFound, nil))
	}
	requests.WithLabelValues(req.Method).Inc()

	args, err := s.arguments(ctx, e, req.Params)
	if err != nil {
		return errorResponse(req.ID, Err(InvalidParams, err.Error()))
	}

	out := e.fn.Call(args)
	if req.notification() {
		return nil
	}
	if rpcErr, _ := out[1].Interface().(*Error); rpcErr != nil {
		return errorResponse(req.ID, rpcErr)
	}
	return &response{Version: "2.0", Result: out[0].Interface(), ID: req.ID}
}

// arguments decodes params, given by position or by name, into the handler's
// argument list.
func (s *Server) arguments(ctx context.Context, e *endpoint, params json.RawMessage) ([]reflect.Value, error) {
	values := make([]json.RawMessage, len(e.Params))

	if len(params) > 0 && params[0] == '{' {
		var named map[string]json.RawMessage
		if err := json.Unmarshal(params, &named); err != nil {
			return nil, err
		}
		for i, p := range e.Params {
			v, ok := named[p.Name]
			if !ok && !p.Optional {
				return nil, errParamMissing
			}
			values[i] = v
		}
	} else {
		var positional []json.RawMessage
		if len(params) > 0 {
			if err := json.Unmarshal(params, &positional); err != nil {
				return nil, err
			}
		}
		if len(positional) > len(e.Params) {
			return nil, errParamsList
		}
		for _, p := range e.Params[len(positional):] {
			if !p.Optional {
				return nil, errParamsList
			}
		}
		copy(values, positional)
	}

	args := make([]reflect.Value, 0, len(e.args)+1)
	if e.withContext {
		args = append(args, reflect.ValueOf(ctx))
	}
	for i, t := range e.args {
		arg := reflect.New(t)
		if values[i] != nil {
			if err := json.Unmarshal(values[i], arg.Interface()); err != nil {
				return nil, err
			}
			if s.validator != nil {
				if err := s.validate(arg.Elem()); err != nil {
					return nil, err
				}
			}
		}
		args = append(args, arg.Elem())
	}
	return args, nil
}

func (s *Server) validate(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return s.validate(v.Elem())
	case reflect.Struct:
		return s.validator.Struct(v.Interface())
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := s.validate(v.Index(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
