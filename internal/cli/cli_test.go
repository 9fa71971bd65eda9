package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizyair/bizyair-go"
)

const testKey = "sk-cli-0123456789"

// run executes the command tree with args and a fake environment.
func run(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	return runWithClient(t, nil, env, args...)
}

// runWithClient is run with the SDK's HTTP client replaced by httpClient.
func runWithClient(t *testing.T, httpClient *http.Client, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	a := &app{
		getenv:     func(k string) string { return env[k] },
		httpClient: httpClient,
		log:        logrus.New(),
	}
	cmd := newRootCommand(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "bizyair", "config.yaml")
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := tempConfig(t)
	want := &Config{Server: "http://localhost:8000/supernode/x", APIKey: testKey}

	require.NoError(t, SaveConfig(want, path))
	got, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestResolve_Precedence tests file < environment < flags.
func TestResolve_Precedence(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, SaveConfig(&Config{Server: "http://file", APIKey: "sk-file"}, path))
	env := map[string]string{envServer: "http://env", envAPIKey: "sk-env"}

	a := &app{cfgFile: path, getenv: func(k string) string { return env[k] }, log: logrus.New()}
	cfg, err := a.resolve()
	require.NoError(t, err)
	assert.Equal(t, Config{Server: "http://env", APIKey: "sk-env"}, cfg)

	a.server, a.apiKey = "http://flag", "sk-flag"
	cfg, err = a.resolve()
	require.NoError(t, err)
	assert.Equal(t, Config{Server: "http://flag", APIKey: "sk-flag"}, cfg)

	a.getenv = func(string) string { return "" }
	a.server, a.apiKey = "", ""
	cfg, err = a.resolve()
	require.NoError(t, err)
	assert.Equal(t, Config{Server: "http://file", APIKey: "sk-file"}, cfg)
}

func TestResolve_NoServer(t *testing.T) {
	a := &app{cfgFile: tempConfig(t), getenv: func(string) string { return "" }, log: logrus.New()}

	_, err := a.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set-server")
}

func TestReadPayload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "workflow.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"key1":"value1"}`), 0o600))

	p, err := readPayload("", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(p))

	p, err = readPayload(`{"a":1}`, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(p))

	p, err = readPayload("", file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key1":"value1"}`, string(p))

	_, err = readPayload("{", "")
	assert.Error(t, err)

	_, err = readPayload(`{}`, file)
	assert.Error(t, err)

	_, err = readPayload("", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSendCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	stdout, _, err := runWithClient(t, server.Client(), map[string]string{envAPIKey: testKey},
		"send", "--config", tempConfig(t), "--server", server.URL, "--payload", `{"key1":"value1"}`)

	require.NoError(t, err)
	assert.JSONEq(t, `{"key1":"value1"}`, strings.TrimSpace(stdout))
}

func TestSendCommand_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, _, err := run(t, nil,
		"send", "--config", tempConfig(t), "--server", server.URL, "--api-key", testKey)

	require.Error(t, err)
	assert.True(t, bizyair.IsAuthorizationError(err))
}

func TestStreamCommand_MaxEvents(t *testing.T) {
	body := &closeRecorder{Reader: strings.NewReader("data: one\n\n: ping\ndata: two\n\ndata: three\n\n")}
	httpClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": []string{"text/event-stream"}},
			Body:       body,
			Request:    r,
		}, nil
	})}

	stdout, _, err := runWithClient(t, httpClient, nil,
		"stream", "--config", tempConfig(t), "--server", "http://bizyair.invalid/stream",
		"--api-key", testKey, "--max-events", "2")

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", stdout)
	assert.True(t, body.closed, "stopping early must release the connection")
}

func TestStreamCommand_AllEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "data: one\n\ndata: two\n")
	}))
	defer server.Close()

	stdout, stderr, err := run(t, nil,
		"stream", "-v", "--config", tempConfig(t), "--server", server.URL, "--api-key", testKey)

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", stdout)
	assert.Contains(t, stderr, "stream finished")
}

func TestConfigCommands(t *testing.T) {
	path := tempConfig(t)

	_, _, err := run(t, nil, "config", "set-key", "--config", path, testKey)
	require.NoError(t, err)
	_, _, err = run(t, nil, "config", "set-server", "--config", path, "http://localhost:8000/supernode/x")
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Server: "http://localhost:8000/supernode/x", APIKey: testKey}, cfg)

	stdout, _, err := run(t, nil, "config", "view", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "server: http://localhost:8000/supernode/x")
	assert.Contains(t, stdout, "apiKey: sk-***6789")
	assert.NotContains(t, stdout, testKey)
}

func TestConfigSetKey_RejectsMalformed(t *testing.T) {
	path := tempConfig(t)

	_, _, err := run(t, nil, "config", "set-key", "--config", path, "YOUR_API_KEY")

	require.Error(t, err)
	assert.True(t, bizyair.IsInvalidCredential(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, bizyair.Version)

	stdout, _, err = run(t, nil, "version", "--server-version", bizyair.APIVersion)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is compatible")

	_, _, err = run(t, nil, "version", "--server-version", "9.0.0")
	assert.Error(t, err)
}

func TestPrintError_Hints(t *testing.T) {
	var buf bytes.Buffer
	_, err := bizyair.BuildHeaders("", false)
	printError(&buf, err)

	assert.Contains(t, buf.String(), "bizyair config set-key")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "<unset>", maskKey(""))
	assert.Equal(t, "***", maskKey("sk-"))
	assert.Equal(t, "sk-***", maskKey("sk-abc"))
	assert.Equal(t, "sk-***", maskKey("sk-abcde"))
	assert.Equal(t, "sk-***", maskKey("sk-abcdefgh"))
	assert.Equal(t, "sk-***fghi", maskKey("sk-abcdefghi"))
	assert.Equal(t, "sk-***cdef", maskKey("sk-0123456789abcdef"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// closeRecorder is a response body that remembers being closed.
type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}
