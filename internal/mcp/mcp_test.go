package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cbx/internal/analyze"
	"cbx/internal/config"
	"cbx/internal/envelope"
	"cbx/internal/export"
	"cbx/internal/loader"
	"cbx/internal/logging"
	"cbx/internal/session"
	"cbx/internal/token"
	"cbx/internal/version"
)

// fakeModel returns a canned answer without touching the network.
type fakeModel struct {
	answer string
}

func (f *fakeModel) Complete(_ context.Context, _ string, _ float32) (string, error) {
	return f.answer, nil
}

// newTestServer creates an isolated server with a fake model backend.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logging.NewDiscardLogger()
	loaderCfg := config.DefaultConfig().Loader
	loaderCfg.ReserveTokens = 64

	cache := session.New(30 * time.Minute)
	ld := loader.New(loaderCfg, token.NewHeuristicEstimator(), logger)
	dispatcher := analyze.New(cache, &fakeModel{answer: "model says hi"}, logger)
	exporter := export.New(cache, logger)

	return NewServer(version.Version, Deps{
		Loader:           ld,
		Cache:            cache,
		Dispatcher:       dispatcher,
		Exporter:         exporter,
		DefaultMaxTokens: 900000,
	}, logger)
}

// newTestProject writes a small project tree and returns its path.
func newTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"main.py":   strings.Repeat("x = ", 500),
		"utils.py":  strings.Repeat("y = ", 300),
		"README.md": strings.Repeat("doc ", 200),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// sendRequest routes one request through the server and returns the response.
func sendRequest(t *testing.T, s *Server, method string, id int, params interface{}) *Message {
	t.Helper()
	return s.handleMessage(&Message{
		Jsonrpc: "2.0",
		Id:      id,
		Method:  method,
		Params:  params,
	})
}

// callTool invokes a tool and decodes the envelope from the response content.
func callTool(t *testing.T, s *Server, tool string, args map[string]interface{}) *envelope.Response {
	t.Helper()

	resp := sendRequest(t, s, "tools/call", 1, map[string]interface{}{
		"name":      tool,
		"arguments": args,
	})
	if resp.Error != nil {
		t.Fatalf("tools/call %s returned RPC error: %v", tool, resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result shape: %T", resp.Result)
	}
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)

	var env envelope.Response
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		t.Fatalf("content is not an envelope: %v", err)
	}
	return &env
}

func TestInitialize(t *testing.T) {
	s := newTestServer(t)
	resp := sendRequest(t, s, "initialize", 1, map[string]interface{}{})

	if resp.Error != nil {
		t.Fatalf("initialize error: %v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "cbx" {
		t.Errorf("server name = %v", info["name"])
	}
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := sendRequest(t, s, "tools/list", 2, map[string]interface{}{})

	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]Tool)
	if len(tools) != 9 {
		t.Errorf("tool count = %d, want 9", len(tools))
	}

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"loadCodebase", "semanticSearch", "exportSession", "getStats"} {
		if !names[want] {
			t.Errorf("missing tool %q", want)
		}
	}
}

func TestMethodNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := sendRequest(t, s, "bogus/method", 3, nil)

	if resp.Error == nil || resp.Error.Code != MethodNotFound {
		t.Errorf("expected MethodNotFound, got %v", resp.Error)
	}
}

func TestUnknownTool(t *testing.T) {
	s := newTestServer(t)
	resp := sendRequest(t, s, "tools/call", 4, map[string]interface{}{
		"name":      "noSuchTool",
		"arguments": map[string]interface{}{},
	})

	if resp.Error == nil {
		t.Fatal("expected RPC error for unknown tool")
	}
}

func TestLoadCodebaseTool(t *testing.T) {
	s := newTestServer(t)
	dir := newTestProject(t)

	env := callTool(t, s, "loadCodebase", map[string]interface{}{
		"project_path": dir,
	})
	if env.IsError() {
		t.Fatalf("loadCodebase failed: %v", env.Error)
	}

	data := env.Data.(map[string]interface{})
	if data["filesLoaded"] != float64(3) {
		t.Errorf("filesLoaded = %v, want 3", data["filesLoaded"])
	}
	if data["approximate"] != true {
		t.Error("heuristic estimator should mark the load approximate")
	}
}

func TestLoadCodebaseWarnsOnUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions do not block reads for root")
	}
	s := newTestServer(t)
	dir := newTestProject(t)
	locked := filepath.Join(dir, "locked.py")
	if err := os.WriteFile(locked, []byte(strings.Repeat("z = ", 100)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}

	env := callTool(t, s, "loadCodebase", map[string]interface{}{
		"project_path": dir,
	})
	if env.IsError() {
		t.Fatalf("unreadable file must not fail the load: %v", env.Error)
	}

	data := env.Data.(map[string]interface{})
	if data["filesLoaded"] != float64(3) {
		t.Errorf("filesLoaded = %v, want 3 (locked file excluded)", data["filesLoaded"])
	}
	if len(env.Warnings) != 1 {
		t.Fatalf("warnings = %+v, want exactly one", env.Warnings)
	}
	if env.Warnings[0].Code != "FILE_SKIPPED" {
		t.Errorf("warning code = %q, want FILE_SKIPPED", env.Warnings[0].Code)
	}
	if !strings.Contains(env.Warnings[0].Message, "locked.py") {
		t.Errorf("warning %q should name the skipped file", env.Warnings[0].Message)
	}
}

func TestLoadCodebaseMissingPath(t *testing.T) {
	s := newTestServer(t)

	env := callTool(t, s, "loadCodebase", map[string]interface{}{
		"project_path": filepath.Join(t.TempDir(), "nope"),
	})
	if !env.IsError() || env.Error.Code != "PATH_NOT_FOUND" {
		t.Errorf("expected PATH_NOT_FOUND envelope, got %+v", env.Error)
	}
}

func TestAnalysisBeforeLoad(t *testing.T) {
	s := newTestServer(t)

	for _, tool := range []string{"codebaseSummary", "analyzeArchitecture"} {
		env := callTool(t, s, tool, map[string]interface{}{})
		if !env.IsError() || env.Error.Code != "NO_CONTEXT" {
			t.Errorf("%s before load: error = %+v, want NO_CONTEXT", tool, env.Error)
		}
	}
}

func TestAskAfterLoad(t *testing.T) {
	s := newTestServer(t)
	dir := newTestProject(t)

	callTool(t, s, "loadCodebase", map[string]interface{}{"project_path": dir})
	env := callTool(t, s, "askWithContext", map[string]interface{}{
		"question": "what does this project do?",
	})
	if env.IsError() {
		t.Fatalf("askWithContext failed: %v", env.Error)
	}

	data := env.Data.(map[string]interface{})
	if data["response"] != "model says hi" {
		t.Errorf("response = %v", data["response"])
	}
}

func TestExportSessionTool(t *testing.T) {
	s := newTestServer(t)
	dir := newTestProject(t)
	dest := filepath.Join(t.TempDir(), "session.md")

	callTool(t, s, "loadCodebase", map[string]interface{}{"project_path": dir})

	// Export with no analyses run yet still succeeds.
	env := callTool(t, s, "exportSession", map[string]interface{}{"destination": dest})
	if env.IsError() {
		t.Fatalf("exportSession failed: %v", env.Error)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestGetStatsTool(t *testing.T) {
	s := newTestServer(t)
	dir := newTestProject(t)

	env := callTool(t, s, "getStats", map[string]interface{}{})
	data := env.Data.(map[string]interface{})
	if data["entryCount"] != float64(0) {
		t.Errorf("empty cache entryCount = %v", data["entryCount"])
	}

	callTool(t, s, "loadCodebase", map[string]interface{}{"project_path": dir})
	env = callTool(t, s, "getStats", map[string]interface{}{})
	data = env.Data.(map[string]interface{})
	if data["entryCount"] != float64(1) {
		t.Errorf("entryCount after load = %v", data["entryCount"])
	}
	if data["fileCount"] != float64(3) {
		t.Errorf("fileCount = %v", data["fileCount"])
	}
}

func TestLoadEvictsPreviousProject(t *testing.T) {
	s := newTestServer(t)
	dirA := newTestProject(t)
	dirB := newTestProject(t)

	callTool(t, s, "loadCodebase", map[string]interface{}{"project_path": dirA})
	callTool(t, s, "loadCodebase", map[string]interface{}{"project_path": dirB})

	env := callTool(t, s, "getStats", map[string]interface{}{})
	data := env.Data.(map[string]interface{})
	if data["entryCount"] != float64(1) {
		t.Errorf("entryCount = %v, want 1", data["entryCount"])
	}
	got, _ := filepath.EvalSymlinks(data["projectPath"].(string))
	want, _ := filepath.EvalSymlinks(dirB)
	if got != want {
		t.Errorf("cached project = %q, want %q", got, want)
	}
}
