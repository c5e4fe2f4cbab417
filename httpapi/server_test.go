package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RyomenPanda/PandaCode/core"
	"github.com/RyomenPanda/PandaCode/schema"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc, err := core.NewService(core.Config{WorkspaceRoot: t.TempDir()}, core.Deps{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ts := httptest.NewServer(NewServer(svc).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestFileWriteReadOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(schema.WriteFileRequest{Path: "main.py", Content: "print(1)\n"})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/file", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	getResp, err := http.Get(ts.URL + "/api/file?path=main.py")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var read schema.ReadFileResponse
	decode(t, getResp, &read)
	if read.Content != "print(1)\n" || read.Language != "python" {
		t.Fatalf("read = %+v", read)
	}
}

func TestReadMissingFileIs404(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/file?path=absent.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPathEscapeIs403(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/file?path=../secrets")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestCreateConflictIs409(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/file/create", schema.CreateFileRequest{Path: "dup.txt"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first create status = %d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/api/file/create", schema.CreateFileRequest{Path: "dup.txt"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second create status = %d", resp.StatusCode)
	}
}

func TestExecuteReturnsResultNotError(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/terminal/execute", schema.ExecuteCommandRequest{
		SessionID: "default",
		Command:   "rm -rf /",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var result schema.CommandResult
	decode(t, resp, &result)
	if result.ExitCode != 1 || !strings.Contains(result.Stderr, "not allowed") {
		t.Fatalf("result = %+v", result)
	}
}

func TestTerminalSessionMintsID(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/terminal/session", struct{}{})
	var payload map[string]string
	decode(t, resp, &payload)
	if payload["session_id"] == "" {
		t.Fatalf("payload = %v", payload)
	}

	exec := postJSON(t, ts.URL+"/api/terminal/execute", schema.ExecuteCommandRequest{
		SessionID: schema.SessionID(payload["session_id"]),
		Command:   "pwd",
	})
	var result schema.CommandResult
	decode(t, exec, &result)
	if result.ExitCode != 0 || result.Stdout == "" {
		t.Fatalf("result = %+v", result)
	}
}

func TestInvalidJSONIs400(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/terminal/execute", "application/json", strings.NewReader("{broken"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestChatUnavailableIs200(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/ai/chat", schema.ChatRequest{Message: "hello"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var ai schema.AIResponse
	decode(t, resp, &ai)
	if ai.Success || ai.Error == "" {
		t.Fatalf("ai = %+v", ai)
	}
}
