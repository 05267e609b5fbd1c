package xloader

import (
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		{"yaml", "config.yaml", FormatYAML, false},
		{"yml", "config.yml", FormatYAML, false},
		{"yaml_upper", "CONFIG.YAML", FormatYAML, false},
		{"json", "config.json", FormatJSON, false},
		{"nested_path", "/etc/portal/config.yaml", FormatYAML, false},
		{"toml", "config.toml", "", true},
		{"no_extension", "config", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := detectFormat(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("detectFormat(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("detectFormat(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("detectFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseConfig_EmptyData(t *testing.T) {
	t.Parallel()

	k, err := parseConfig(nil, FormatYAML, ".")
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if got := len(k.Keys()); got != 0 {
		t.Errorf("Keys() len = %d, want 0", got)
	}
}

func TestParseConfig_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := parseConfig([]byte("a = 1"), Format("toml"), "."); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("parseConfig() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseConfig_CustomDelim(t *testing.T) {
	t.Parallel()

	k, err := parseConfig([]byte("a:\n  b: 1\n"), FormatYAML, "/")
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if got := k.Int("a/b"); got != 1 {
		t.Errorf("Int(a/b) = %d, want 1", got)
	}
}
