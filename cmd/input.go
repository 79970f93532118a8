package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

// stdinPath selects standard input for file flags.
const stdinPath = "-"

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// decodeRequest parses a request written as JSON or YAML. A document whose
// first non-space byte is '{' is JSON, so legacy field forms are accepted.
func decodeRequest(data []byte) (brief.Request, error) {
	var req brief.Request
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return req, errors.New("request is empty")
	}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return brief.Request{}, fmt.Errorf("invalid JSON request: %w", err)
		}
		return req, nil
	}
	if err := yaml.Unmarshal(trimmed, &req); err != nil {
		return brief.Request{}, fmt.Errorf("invalid YAML request: %w", err)
	}
	return req, nil
}

// loadRequest reads and parses the request at path.
func loadRequest(path string, stdin io.Reader) (brief.Request, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return brief.Request{}, err
	}
	return decodeRequest(data)
}

// loadResult reads and validates a result document at path.
func loadResult(path string, stdin io.Reader) (brief.Result, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return brief.Result{}, err
	}
	return brief.DecodeResult(data)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
