package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/geosp/mcp-bridge/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(args []string, stdin string) *runResult {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := RunWithIO(context.Background(), args, strings.NewReader(stdin), stdout, stderr)
	return &runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// newMCPServer serves /mcp, issuing a session on initialize and echoing tools/call arguments over SSE.
func newMCPServer(t *testing.T) *httptest.Server {
	router := mux.NewRouter()
	router.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
			Params struct {
				Arguments json.RawMessage `json:"arguments"`
			} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		switch request.Method {
		case "initialize":
			w.Header().Set("Mcp-Session-Id", "s-42")
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"protocolVersion":"2025-06-18"}}`, request.ID)
		case "notifications/initialized":
			w.WriteHeader(http.StatusAccepted)
		case "tools/call":
			if r.Header.Get("Mcp-Session-Id") != "s-42" {
				http.Error(w, "missing session", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = fmt.Fprintf(w, "event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":%s,\"result\":{\"arguments\":%s}}\n\n", request.ID, request.Params.Arguments)
		default:
			http.Error(w, "unknown method", http.StatusNotFound)
		}
	}).Methods(http.MethodPost)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestRun_Version(t *testing.T) {
	result := run([]string{"--version"}, "")
	require.NoError(t, result.err)
	assert.Equal(t, "mcp-bridge version "+Version+"\n", result.stdout)
}

func TestRun_Help(t *testing.T) {
	result := run([]string{"--help"}, "")
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "list-configs")
}

func TestRun_Bridge(t *testing.T) {
	server := newMCPServer(t)
	dir := t.TempDir()
	location := filepath.Join(dir, "work.json")
	content := fmt.Sprintf(`{"url":%q,"headers":{"X-Api-Key":"secret"},"timeout":"5s"}`, server.URL+"/mcp")
	require.NoError(t, os.WriteFile(location, []byte(content), 0o600))

	stdin := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search","arguments":{"filter":"{\"status\": \"open\"}"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
	}, "\n") + "\n"

	result := run([]string{"--config-dir", dir, "--config", "work", "--log-level", "debug"}, stdin)
	require.NoError(t, result.err, result.stderr)

	lines := strings.Split(strings.TrimSpace(result.stdout), "\n")
	require.Len(t, lines, 3, result.stdout)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2025-06-18"}}`, lines[0])
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":2,"result":{"arguments":{"filter":{"status":"open"}}}}`, lines[1])

	var reply struct {
		ID    int `json:"id"`
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &reply))
	assert.Equal(t, 3, reply.ID)
	assert.Equal(t, -32603, reply.Error.Code)

	assert.Contains(t, result.stderr, "[Bridge] Loaded config from "+location)
	assert.Contains(t, result.stderr, "[Bridge] Session ID: s-42")
	assert.Contains(t, result.stderr, "[Bridge] Fixed stringified params: filter:object")
	assert.Contains(t, result.stderr, "stdin closed")
}

func TestRun_BridgeWithCommandLineOnly(t *testing.T) {
	server := newMCPServer(t)
	stdin := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n"
	result := run([]string{"--config-dir", t.TempDir(), "-u", server.URL + "/mcp", "-H", "X-Api-Key: secret", "--timeout", "5s"}, stdin)
	require.NoError(t, result.err, result.stderr)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2025-06-18"}}`, strings.TrimSpace(result.stdout))
}

func TestRun_ConfigNotFound(t *testing.T) {
	result := run([]string{"--config-dir", t.TempDir(), "--config", "missing"}, "")
	require.Error(t, result.err)
	assert.ErrorIs(t, result.err, config.ErrNotFound)
}

func TestRun_InitAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mcp-bridge")

	result := run([]string{"--config-dir", dir, "list-configs"}, "")
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "No config files found")

	result = run([]string{"--config-dir", dir, "init"}, "")
	require.NoError(t, result.err, result.stderr)
	assert.Contains(t, result.stdout, "Created config file: "+filepath.Join(dir, "config.json"))

	result = run([]string{"--config-dir", dir, "init"}, "")
	assert.ErrorIs(t, result.err, config.ErrExists)
	assert.Contains(t, result.stdout, "Config already exists")

	result = run([]string{"--config-dir", dir, "init", "-n", "work", "-s", "https://mcp.example.com/mcp"}, "")
	require.NoError(t, result.err, result.stderr)
	assert.Contains(t, result.stdout, "mcp-bridge --config work")
	cfg, err := config.Load(context.Background(), filepath.Join(dir, "work.json"))
	require.NoError(t, err)
	assert.Equal(t, "https://mcp.example.com/mcp", cfg.URL)

	result = run([]string{"--config-dir", dir, "list-configs"}, "")
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "  - config.json  (default)\n")
	assert.Contains(t, result.stdout, "  - work.json\n")
}

func TestRun_Check(t *testing.T) {
	server := newMCPServer(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)

	result := run([]string{"--config-dir", t.TempDir(), "-u", server.URL + "/mcp", "-H", "X-Api-Key: secret", "-H", "Authorization: Bearer " + token, "check"}, "")
	require.NoError(t, result.err, result.stderr)
	assert.Contains(t, result.stdout, "Status:       200 OK")
	assert.Contains(t, result.stdout, "Session ID:   s-42")
	assert.Contains(t, result.stdout, "Token:        EXPIRED")

	result = run([]string{"--config-dir", t.TempDir(), "-u", server.URL + "/mcp", "check"}, "")
	require.Error(t, result.err)
	assert.Contains(t, result.err.Error(), "403")
}

func TestOptions_HeaderMap(t *testing.T) {
	options := NewOptions(context.Background(), nil, io.Discard, io.Discard)
	options.Headers = []string{"x-api-key: k1", "Authorization:Bearer abc", "X-Empty:"}
	headers, err := options.headerMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-Api-Key": "k1", "Authorization": "Bearer abc", "X-Empty": ""}, headers)

	options.Headers = []string{"no-colon"}
	_, err = options.headerMap()
	assert.Error(t, err)
}

func TestOptions_ApplyOverridesHeaders(t *testing.T) {
	options := NewOptions(context.Background(), nil, io.Discard, io.Discard)
	options.Headers = []string{"Authorization: Bearer new"}
	options.Timeout = 3 * time.Second
	cfg := &config.Config{URL: "http://localhost/mcp", Headers: map[string]string{"authorization": "Bearer old", "x-api-key": "k"}}
	require.NoError(t, options.apply(cfg))
	assert.Equal(t, map[string]string{"Authorization": "Bearer new", "x-api-key": "k"}, cfg.Headers)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}
