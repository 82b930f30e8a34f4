package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	r := tools.NewRegistry()
	r.Register(&tools.Tool{
		Name:        "echo",
		Description: "Echoes the message back.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
			},
			"required": []string{"message"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			msg, _ := args["message"].(string)
			return msg, nil
		},
	})
	r.Register(&tools.Tool{
		Name:        "whoami",
		Description: "Reports the caller id from the request context.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			caller := tools.CallerFromContext(ctx)
			if caller == nil {
				return "anonymous", nil
			}
			id, _ := caller["id"].(string)
			return id, nil
		},
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewServer("", 0, r, logger)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	_, srv := testServer(t)

	var got map[string]string
	resp := getJSON(t, srv.URL+"/health", &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got["status"] != "healthy" {
		t.Errorf("status field = %q", got["status"])
	}
}

func TestRoot(t *testing.T) {
	_, srv := testServer(t)

	var got map[string]string
	getJSON(t, srv.URL+"/", &got)
	if got["name"] != "owui-tools" {
		t.Errorf("name = %q", got["name"])
	}
	if got["status"] != "ok" {
		t.Errorf("status = %q", got["status"])
	}
}

func TestVersion(t *testing.T) {
	_, srv := testServer(t)

	var got map[string]string
	getJSON(t, srv.URL+"/v1/version", &got)
	for _, key := range []string{"version", "go_version", "os", "arch"} {
		if got[key] == "" {
			t.Errorf("version info missing %s", key)
		}
	}
}

func TestToolList(t *testing.T) {
	_, srv := testServer(t)

	var got struct {
		Object string           `json:"object"`
		Data   []map[string]any `json:"data"`
	}
	getJSON(t, srv.URL+"/v1/tools", &got)

	if got.Object != "list" {
		t.Errorf("object = %q", got.Object)
	}
	if len(got.Data) != 2 {
		t.Fatalf("listed %d tools, want 2", len(got.Data))
	}
	// Names sorts the registry, so echo comes first.
	if got.Data[0]["name"] != "echo" || got.Data[1]["name"] != "whoami" {
		t.Errorf("tool order = %v, %v", got.Data[0]["name"], got.Data[1]["name"])
	}
	if _, ok := got.Data[0]["parameters"]; !ok {
		t.Error("tool entry missing parameters schema")
	}
}

func TestToolCall(t *testing.T) {
	_, srv := testServer(t)

	resp, body := postJSON(t, srv.URL+"/v1/tools/echo",
		`{"arguments":{"message":"hello"}}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var got ToolCallResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Tool != "echo" || got.Result != "hello" {
		t.Errorf("response = %+v", got)
	}
}

func TestToolCall_CallerContext(t *testing.T) {
	_, srv := testServer(t)

	_, body := postJSON(t, srv.URL+"/v1/tools/whoami",
		`{"arguments":{},"user":{"id":"u-42"}}`)

	var got ToolCallResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Result != "u-42" {
		t.Errorf("result = %q, want u-42", got.Result)
	}
}

func TestToolCall_NoUser(t *testing.T) {
	_, srv := testServer(t)

	_, body := postJSON(t, srv.URL+"/v1/tools/whoami", `{"arguments":{}}`)

	var got ToolCallResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Result != "anonymous" {
		t.Errorf("result = %q, want anonymous", got.Result)
	}
}

func TestToolCall_UnknownTool(t *testing.T) {
	_, srv := testServer(t)

	resp, body := postJSON(t, srv.URL+"/v1/tools/nonexistent", `{"arguments":{}}`)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var got struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(got.Error.Message, "nonexistent") {
		t.Errorf("error message = %q", got.Error.Message)
	}
	if got.Error.Code != http.StatusNotFound {
		t.Errorf("error code = %d", got.Error.Code)
	}
}

func TestToolCall_ValidationFailure(t *testing.T) {
	_, srv := testServer(t)

	// echo requires message; an empty argument object must fail the
	// schema check with a 400, not reach the handler.
	resp, body := postJSON(t, srv.URL+"/v1/tools/echo", `{"arguments":{}}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "invalid_request_error") {
		t.Errorf("body = %s", body)
	}
}

func TestToolCall_MalformedBody(t *testing.T) {
	_, srv := testServer(t)

	resp, _ := postJSON(t, srv.URL+"/v1/tools/echo", `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestToolCall_OmittedArguments(t *testing.T) {
	_, srv := testServer(t)

	// whoami has no required parameters, so a body without arguments
	// still executes.
	resp, body := postJSON(t, srv.URL+"/v1/tools/whoami", `{}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, srv := testServer(t)

	resp := getJSON(t, srv.URL+"/health", nil)
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("response missing X-Request-Id")
	}
}

func TestShutdown_BeforeStart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewServer("", 0, tools.NewRegistry(), logger)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown before Start: %v", err)
	}
}
