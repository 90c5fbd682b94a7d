package swashbuckle

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type echoRequest struct {
	Message string `json:"message" schema:"message"`
}

type echoResponse struct {
	Message string `json:"message"`
}

func echo(ctx context.Context, req echoRequest) (echoResponse, error) {
	return echoResponse{Message: req.Message}, nil
}

func TestNewApp(t *testing.T) {
	app := NewApp()
	if app == nil {
		t.Fatal("expected non-nil app")
	}
	if app.routes == nil {
		t.Error("expected routes map to be initialized")
	}
	if app.maxRequestBodySize != 1<<20 {
		t.Errorf("default max body size = %d, want 1MB", app.maxRequestBodySize)
	}
}

func TestApp_ServeHTTP_Success(t *testing.T) {
	app := NewApp()
	app.Service("Echo").Register("Say", Exec(echo))

	body := strings.NewReader(`{"message":"hello"}`)
	req := httptest.NewRequest("POST", "/Echo/Say", body)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Result echoResponse `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if envelope.Result.Message != "hello" {
		t.Errorf("result = %+v", envelope.Result)
	}
}

func TestApp_ServeHTTP_NotFound(t *testing.T) {
	app := NewApp()

	for _, path := range []string{"/Echo/Missing", "/justone", "/"} {
		req := httptest.NewRequest("POST", path, nil)
		w := httptest.NewRecorder()
		app.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, w.Code)
		}
	}
}

func TestApp_ServeHTTP_MethodMismatch(t *testing.T) {
	app := NewApp()
	app.Service("Echo").Register("Say", Exec(echo))

	req := httptest.NewRequest("GET", "/Echo/Say", nil)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestApp_ServeHTTP_PanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	app := NewApp().WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	app.Service("Echo").Register("Boom", Exec(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		panic("kaboom")
	}))

	req := httptest.NewRequest("POST", "/Echo/Boom", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(buf.String(), "PANIC recovered") {
		t.Error("expected panic to be logged")
	}
}

func TestApp_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	app := NewApp().WithMiddleware(mw("outer")).WithMiddleware(mw("inner"))
	app.Service("Echo").Register("Say", Exec(echo))

	req := httptest.NewRequest("POST", "/Echo/Say", strings.NewReader("{}"))
	app.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}

func TestApp_ErrorTransformer(t *testing.T) {
	app := NewApp().WithErrorTransformer(func(err error) *Error {
		return NewError(CodeNotFound, "transformed: "+err.Error())
	})
	app.Service("Echo").Register("Fail", Exec(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		return echoResponse{}, context.Canceled
	}))

	req := httptest.NewRequest("POST", "/Echo/Fail", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 from transformer", w.Code)
	}
	if !strings.Contains(w.Body.String(), "transformed") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestApp_MaskInternalErrors(t *testing.T) {
	app := NewApp().WithMaskInternalErrors()
	app.Service("Echo").Register("Fail", Exec(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		return echoResponse{}, NewError(CodeInternal, "database password is hunter2")
	}))

	req := httptest.NewRequest("POST", "/Echo/Fail", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)

	if strings.Contains(w.Body.String(), "hunter2") {
		t.Error("internal error detail leaked through masking")
	}
	if !strings.Contains(w.Body.String(), "internal server error") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestApp_DuplicateRegistrationReplaces(t *testing.T) {
	var buf bytes.Buffer
	app := NewApp().WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	svc := app.Service("Echo")
	svc.Register("Say", Exec(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		return echoResponse{Message: "first"}, nil
	}))
	svc.Register("Say", Exec(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		return echoResponse{Message: "second"}, nil
	}))

	if !strings.Contains(buf.String(), "duplicate route registration") {
		t.Error("expected duplicate registration warning")
	}

	req := httptest.NewRequest("POST", "/Echo/Say", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "second") {
		t.Errorf("body = %s, want replacement handler result", w.Body.String())
	}

	if got := len(app.ExportEndpoints()); got != 1 {
		t.Errorf("ExportEndpoints() has %d entries, want 1", got)
	}
}

func TestApp_ExportEndpoints(t *testing.T) {
	app := NewApp()
	orders := app.Service("Orders")
	orders.Register("List", Query(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		return echoResponse{}, nil
	}))
	orders.Register("Get", Query(func(ctx context.Context, req echoRequest) (echoResponse, error) {
		return echoResponse{}, nil
	}).Route("orders/{id}"))

	eps := app.ExportEndpoints()
	if len(eps) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(eps))
	}
	if eps[0].Service != "Orders" || eps[0].Name != "List" {
		t.Errorf("eps[0] = %s.%s", eps[0].Service, eps[0].Name)
	}
	if eps[0].Meta.Route != "Orders/List" {
		t.Errorf("default route = %q, want Orders/List", eps[0].Meta.Route)
	}
	if eps[1].Meta.Route != "orders/{id}" {
		t.Errorf("explicit route = %q", eps[1].Meta.Route)
	}
}

func TestApp_MultipleServices(t *testing.T) {
	app := NewApp()
	app.Service("Orders").Register("List", Exec(echo))
	app.Service("Customers").Register("List", Exec(echo))

	for _, path := range []string{"/Orders/List", "/Customers/List"} {
		req := httptest.NewRequest("POST", path, strings.NewReader("{}"))
		w := httptest.NewRecorder()
		app.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
}
