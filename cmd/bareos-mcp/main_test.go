package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func fakeConsole(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake console is a shell script")
	}
	path := filepath.Join(t.TempDir(), "bconsole")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nhead -n 1\n"), 0755); err != nil {
		t.Fatalf("failed to write fake console: %v", err)
	}
	return path
}

func runWith(t *testing.T, args []string, input string, environ map[string]string) (string, string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(input), &stdout, &stderr, func(key string) string {
		return environ[key]
	})
	return stdout.String(), stderr.String(), err
}

func decodeLines(t *testing.T, out string) []map[string]json.RawMessage {
	t.Helper()
	var lines []map[string]json.RawMessage
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var msg map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("bad output line %q: %v", line, err)
		}
		lines = append(lines, msg)
	}
	return lines
}

func TestVersionFlag(t *testing.T) {
	stdout, stderr, err := runWith(t, []string{"--version"}, "", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout is reserved for the protocol, got %q", stdout)
	}
	if !strings.Contains(stderr, "bareos-mcp-server v") {
		t.Errorf("unexpected version output %q", stderr)
	}
}

func TestUnknownFlag(t *testing.T) {
	if _, _, err := runWith(t, []string{"--frobnicate"}, "", nil); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestInvalidConfiguration(t *testing.T) {
	_, _, err := runWith(t, []string{"--encoding", "ebcdic"}, "", nil)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestEndToEnd(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`garbage`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_volumes","arguments":{"pool":"Full"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_job_status","arguments":{"job_id":"77"}}}`,
	}, "\n") + "\n"

	stdout, _, err := runWith(t, []string{"--log-level", "debug"}, input, map[string]string{
		"BCONSOLE_PATH": fakeConsole(t),
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := decodeLines(t, stdout)
	if len(lines) != 4 {
		t.Fatalf("expected 4 output lines, got %d: %s", len(lines), stdout)
	}
	if string(lines[0]["id"]) != "null" {
		t.Errorf("startup message should have null id, got %s", lines[0]["id"])
	}
	if string(lines[1]["id"]) != "1" {
		t.Errorf("expected initialize reply, got %s", lines[1]["id"])
	}
	if !strings.Contains(string(lines[2]["result"]), `list volumes pool=Full`) {
		t.Errorf("unexpected list_volumes result %s", lines[2]["result"])
	}
	if !strings.Contains(string(lines[3]["result"]), `list jobid=77`) {
		t.Errorf("unexpected get_job_status result %s", lines[3]["result"])
	}
}

func TestToolsFlagLimitsCatalog(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_pools"}}` + "\n"

	stdout, _, err := runWith(t, []string{"--tools", "get_job_*", "--bconsole", fakeConsole(t)}, input, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := decodeLines(t, stdout)
	var list struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(lines[1]["result"], &list); err != nil {
		t.Fatalf("bad tools/list result: %v", err)
	}
	if len(list.Tools) != 2 {
		t.Errorf("expected get_job_status and get_job_log, got %+v", list.Tools)
	}

	if _, ok := lines[2]["error"]; !ok {
		t.Errorf("filtered tool should fail, got %s", lines[2]["result"])
	}
}
