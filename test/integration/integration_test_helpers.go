//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/cmd"
	"github.com/hayato-coosy/kouseian/internal/config"
)

// mockOpenAIServer simulates the chat completions endpoint and answers every
// call with content as the assistant message. calls counts the requests.
func mockOpenAIServer(t *testing.T, content string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1714000000,
			"model":   req["model"],
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

// setupTestEnvironment creates a config directory with a config.yaml using
// the OpenAI provider at llmURL and a sqlite store, and points
// KOUSEIAN_CONFIG_DIR at it. Variables that would override the file are
// blanked for the test.
func setupTestEnvironment(t *testing.T, llmURL string) string {
	t.Helper()
	tempDir := t.TempDir()

	for _, name := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY", "PORT",
		"SUPABASE_URL", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_ANON_KEY",
		"BASIC_AUTH_USER", "BASIC_AUTH_PASSWORD", "BASIC_AUTH_PASSWORD_HASH",
		"KOUSEIAN_LLM_PROVIDER", "KOUSEIAN_LLM_OPENAI_API_KEY", "KOUSEIAN_STORE_DRIVER",
		"KOUSEIAN_SERVER_BASE_URL", "KOUSEIAN_AUTH_MODE",
	} {
		t.Setenv(name, "")
	}

	configContent := fmt.Sprintf(`
llm:
  provider: "openai"
  openai:
    api_key: "sk-integration"
    model_name: "test-model"
    base_url: "%s/v1"
store:
  driver: "sqlite"
  sqlite:
    path: "%s"
server:
  base_url: "https://brief.example.com"
`, llmURL, filepath.Join(tempDir, config.DefaultSQLiteFileName))

	configPath := filepath.Join(tempDir, config.DefaultConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600), "Failed to write temp config file")

	t.Setenv(config.ConfigDirEnvVar, tempDir)
	return tempDir
}

// executeCommand runs the kouseian root command with args in-process and
// captures stdout and stderr. stdin feeds commands reading '-'.
func executeCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	var outBuf, errBuf bytes.Buffer
	rootCmd := cmd.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--log-level", "debug"}, args...))

	execErr := rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), execErr
}
