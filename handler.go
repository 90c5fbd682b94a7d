package swashbuckle

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/ozziepeeps/Swashbuckle/internal/meta"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// handlerConfig contains configuration passed from the App to handlers.
type handlerConfig struct {
	errorTransformer   ErrorTransformer
	maskInternalErrors bool
	logger             *slog.Logger
	maxRequestBodySize int64
}

// Endpoint is the interface for registered handlers. It is exported so users
// can pass it to Register, but sealed so they cannot implement it: Metadata
// returns an internal type.
type Endpoint interface {
	Metadata() *meta.EndpointMetadata
	serveHTTP(w http.ResponseWriter, r *http.Request, cfg handlerConfig)
}

// Handler implements Endpoint for a specific Request/Response pair.
// Its metadata is the endpoint description consumed by spec generation.
type Handler[Req any, Res any] struct {
	fn      func(context.Context, Req) (Res, error)
	method  string
	route   string
	summary string
	remarks string
}

// Query creates a GET handler. Request fields are decoded from the query
// string and documented as non-body parameters.
func Query[Req any, Res any](fn func(context.Context, Req) (Res, error)) *Handler[Req, Res] {
	return &Handler[Req, Res]{fn: fn, method: http.MethodGet}
}

// Exec creates a POST handler. The request is decoded from the JSON body
// and documented as a single body parameter.
func Exec[Req any, Res any](fn func(context.Context, Req) (Res, error)) *Handler[Req, Res] {
	return &Handler[Req, Res]{fn: fn, method: http.MethodPost}
}

// Method overrides the HTTP method (e.g. "PUT", "DELETE").
func (h *Handler[Req, Res]) Method(m string) *Handler[Req, Res] {
	h.method = m
	return h
}

// Route sets the documented route template. It may carry a query-string
// suffix (e.g. "orders/{id}?expand={expand}"); the suffix is stripped when
// the operation path is built. When unset, the registration path
// "{service}/{method}" is used.
func (h *Handler[Req, Res]) Route(template string) *Handler[Req, Res] {
	h.route = template
	return h
}

// Summary sets the one-line endpoint summary.
func (h *Handler[Req, Res]) Summary(s string) *Handler[Req, Res] {
	h.summary = s
	return h
}

// Remarks sets the extended endpoint description.
func (h *Handler[Req, Res]) Remarks(s string) *Handler[Req, Res] {
	h.remarks = s
	return h
}

var emptyType = reflect.TypeOf((*Empty)(nil)).Elem()

// Metadata returns the runtime endpoint description.
func (h *Handler[Req, Res]) Metadata() *meta.EndpointMetadata {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	resType := reflect.TypeOf((*Res)(nil)).Elem()

	m := &meta.EndpointMetadata{
		HTTPMethod: h.method,
		Route:      h.route,
		Summary:    h.summary,
		Remarks:    h.remarks,
	}
	if resType != emptyType {
		m.Response = resType
	}

	if h.method == http.MethodGet || h.method == http.MethodDelete {
		m.Params = requestParams(reqType)
	} else {
		m.Params = []meta.ParamMetadata{{
			Name:     "body",
			Source:   meta.SourceBody,
			Type:     reqType,
			Required: true,
		}}
	}
	return m
}

// requestParams derives one non-body parameter per exported request field.
// Names follow the gorilla/schema tag so the documented name matches what
// the decoder accepts; a field is required when its validate tag says so.
func requestParams(reqType reflect.Type) []meta.ParamMetadata {
	for reqType.Kind() == reflect.Pointer {
		reqType = reqType.Elem()
	}
	if reqType.Kind() != reflect.Struct {
		return nil
	}
	var params []meta.ParamMetadata
	for i := 0; i < reqType.NumField(); i++ {
		f := reqType.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("schema")
		if name == "-" {
			continue
		}
		if idx := strings.IndexByte(name, ','); idx >= 0 {
			name = name[:idx]
		}
		if name == "" {
			name = f.Name
		}
		params = append(params, meta.ParamMetadata{
			Name:     name,
			Source:   meta.SourceRequest,
			Type:     f.Type,
			Required: hasRequiredTag(f),
		})
	}
	return params
}

func hasRequiredTag(f reflect.StructField) bool {
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

// serveHTTP implements the generic glue code.
func (h *Handler[Req, Res]) serveHTTP(w http.ResponseWriter, r *http.Request, cfg handlerConfig) {
	var req Req

	decodeErr := func() error {
		if h.method == http.MethodGet || h.method == http.MethodDelete {
			reqType := reflect.TypeOf((*Req)(nil)).Elem()
			if reqType.Kind() == reflect.Pointer {
				// schemaDecoder wants a pointer to a struct. If Req is
				// already a pointer type, allocate the element and decode
				// into that.
				val := reflect.New(reqType.Elem())
				if err := schemaDecoder.Decode(val.Interface(), r.URL.Query()); err != nil {
					return Errorf(CodeInvalidArgument, "failed to decode query: %v", err)
				}
				req = val.Interface().(Req)
			} else {
				if err := schemaDecoder.Decode(&req, r.URL.Query()); err != nil {
					return Errorf(CodeInvalidArgument, "failed to decode query: %v", err)
				}
			}
		} else if r.Body != nil {
			body := r.Body
			if cfg.maxRequestBodySize > 0 {
				body = http.MaxBytesReader(w, body, cfg.maxRequestBodySize)
			}
			if err := json.NewDecoder(body).Decode(&req); err != nil {
				return Errorf(CodeInvalidArgument, "failed to decode body: %v", err)
			}
		}
		rv := reflect.ValueOf(req)
		for rv.Kind() == reflect.Pointer && !rv.IsNil() {
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Struct {
			if err := validate.Struct(rv.Interface()); err != nil {
				return err
			}
		}
		return nil
	}()

	if decodeErr != nil {
		handleError(w, decodeErr, cfg)
		return
	}

	res, err := h.fn(r.Context(), req)
	if err != nil {
		handleError(w, err, cfg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := encodeResponse(w, res); err != nil {
		logger := cfg.logger
		if logger == nil {
			logger = slog.Default()
		}
		// Response may be partially written, nothing we can do.
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func handleError(w http.ResponseWriter, err error, cfg handlerConfig) {
	var svcErr *Error
	if cfg.errorTransformer != nil {
		svcErr = cfg.errorTransformer(err)
	}
	if svcErr == nil {
		svcErr = DefaultErrorTransformer(err)
	}
	if cfg.maskInternalErrors && svcErr.Code == CodeInternal {
		svcErr = NewError(CodeInternal, "internal server error")
	}
	writeError(w, svcErr, cfg.logger)
}
