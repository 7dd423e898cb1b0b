// The cmd/ package tests drive the compiled binary end to end:
// argument parsing -> configuration -> service -> HTTP client -> a fake
// Hyperspell API served from the test process.
//
// Each test environment gets its own HOME and working directory, so the
// config files and the audit log never touch the real user's.

package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the hyperspell-mcp binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "hyperspell-mcp-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "hyperspell-mcp"
		if os.PathSeparator == '\\' {
			binaryName = "hyperspell-mcp.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
	api    *fakeAPI
	vars   map[string]string
}

// newTestEnv creates an isolated environment pointed at a fake API, with a
// token configured through the environment.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	api := &fakeAPI{requests: map[string]string{}}
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
		api:    api,
		vars: map[string]string{
			"HYPERSPELL_TOKEN":    "tok_test_123456",
			"HYPERSPELL_BASE_URL": ts.URL,
		},
	}
}

// setenv sets a variable for subsequent runs. An empty value removes it.
func (e *testEnv) setenv(key, value string) {
	if value == "" {
		delete(e.vars, key)
		return
	}
	e.vars[key] = value
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir

	env := []string{"HOME=" + e.home, "USERPROFILE=" + e.home, "PATH=" + os.Getenv("PATH")}
	for k, v := range e.vars {
		env = append(env, k+"="+v)
	}
	cmd.Env = env
	return cmd
}

// run executes hyperspell-mcp with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("hyperspell-mcp %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes hyperspell-mcp and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdout executes hyperspell-mcp and returns stdout only.
func (e *testEnv) runStdout(args ...string) string {
	e.t.Helper()
	out, err := e.command(args...).Output()
	if err != nil {
		e.t.Fatalf("hyperspell-mcp %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runStdinErr executes hyperspell-mcp with stdin input and returns stdout.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.Output()
	return string(out), err
}

// writeFile creates name under dir.
func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// fakeAPI serves canned Hyperspell responses and records request bodies by path.
type fakeAPI struct {
	mu       sync.Mutex
	requests map[string]string
}

func (f *fakeAPI) body(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests[r.URL.Path] = string(b)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get("Authorization") != "Bearer tok_test_123456" {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Invalid token"}`)
		return
	}

	switch r.URL.Path {
	case "/collections/list":
		io.WriteString(w, `{"items":[{"name":"notes","documents_count":1200},{"name":"web","documents_count":3}]}`)
	case "/documents/list":
		io.WriteString(w, `{"items":[{"id":1,"type":"note","title":"Standup notes"},{"id":2,"type":"web","title":"Release plan"}]}`)
	case "/documents/get/7":
		io.WriteString(w, `{"id":7,"type":"note","title":"Seven","summary":"A short note","data":{"k":"v"}}`)
	case "/query":
		io.WriteString(w, `{"documents":[{"id":3,"type":"note","title":"Meeting"}]}`)
	case "/documents/add":
		if strings.Contains(string(b), "bad.example") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"detail":"Unsupported URL"}`)
			return
		}
		io.WriteString(w, `{"id":99,"collection":"notes","status":"pending","title":"Added"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Not Found"}`)
	}
}
