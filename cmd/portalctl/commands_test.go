package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig 创建临时配置文件。
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestBootContext_Success(t *testing.T) {
	path := writeConfig(t, "config.yaml", "portal:\n  name: uportal\n")

	rc, closeFn, err := bootContext(context.Background(), "test", path, 30*time.Second)
	if err != nil {
		t.Fatalf("bootContext() error = %v", err)
	}
	defer closeFn()

	if got := rc.Name(); got != "test" {
		t.Errorf("Name() = %q, want %q", got, "test")
	}
	if got := rc.Config().String("portal.name"); got != "uportal" {
		t.Errorf("Config().String() = %q, want %q", got, "uportal")
	}
}

func TestBootContext_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	_, _, err := bootContext(context.Background(), "test", path, 30*time.Second)
	if err == nil {
		t.Fatal("bootContext() error = nil, want load failure")
	}
}

func TestCmdValidate_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int // 0 表示成功（err == nil）
	}{
		{"valid_config", writeConfig(t, "ok.yaml", "a: 1\n"), 0},
		{"invalid_yaml", writeConfig(t, "bad.yaml", "a: [unclosed"), 1},
		{"unsupported_format", writeConfig(t, "bad.toml", "a = 1"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cmdValidate(context.Background(), "test", tt.path, 30*time.Second)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("cmdValidate() error = %v, want nil", err)
				}
				return
			}

			var exit *exitError
			if !errors.As(err, &exit) {
				t.Fatalf("cmdValidate() error = %v, want *exitError", err)
			}
			if exit.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", exit.code, tt.wantCode)
			}
		})
	}
}

func TestCmdInspect_ExitCode(t *testing.T) {
	path := writeConfig(t, "config.json", `{"depth": 3}`)

	if err := cmdInspect(context.Background(), "test", path, 30*time.Second); err != nil {
		t.Fatalf("cmdInspect() error = %v, want nil", err)
	}

	var exit *exitError
	err := cmdInspect(context.Background(), "test", filepath.Join(t.TempDir(), "absent.json"), 30*time.Second)
	if !errors.As(err, &exit) {
		t.Fatalf("cmdInspect() error = %v, want *exitError", err)
	}
	if exit.code != 1 {
		t.Errorf("exit code = %d, want 1", exit.code)
	}
}

func TestCreateApp_Commands(t *testing.T) {
	app := createApp()

	want := map[string]bool{"validate": false, "inspect": false}
	for _, cmd := range app.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
