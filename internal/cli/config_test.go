package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	serrors "github.com/sketchify/sketchify/pkg/errors"
	"github.com/sketchify/sketchify/pkg/params"
)

const sampleConfig = `
[defaults]
style = "hatching"
intensity = 7
seed = 1234

[profiles.noir]
style = "charcoal"
invert = true
contrast = 1.5

[profiles.soft]
brush = "inkwash"
texture = "paper"
texture_opacity = 3

[cache]
backend = "file"
ttl = "72h"

[server]
addr = ":8080"
max_upload = 1048576

[remote]
url = "http://render.local:5001"
timeout = "30s"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.MaxUpload != 1<<20 {
		t.Errorf("Server.MaxUpload = %d, want %d", cfg.Server.MaxUpload, 1<<20)
	}
	if ttl, _ := cfg.cacheTTL(); ttl != 72*time.Hour {
		t.Errorf("cacheTTL() = %v, want 72h", ttl)
	}
	if d, _ := cfg.remoteTimeout(); d != 30*time.Second {
		t.Errorf("remoteTimeout() = %v, want 30s", d)
	}
	if got := cfg.ProfileNames(); len(got) != 2 || got[0] != "noir" || got[1] != "soft" {
		t.Errorf("ProfileNames() = %v, want [noir soft]", got)
	}
}

func TestConfigParamsLayering(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	base, err := cfg.Params("")
	if err != nil {
		t.Fatalf("Params(\"\") error: %v", err)
	}
	if base.Style != params.StyleHatching || base.Intensity != 7 || base.Seed != 1234 {
		t.Errorf("defaults = %s/%d/%d, want hatching/7/1234", base.Style, base.Intensity, base.Seed)
	}
	if base.Medium != params.MediumPencil {
		t.Errorf("unset key changed Medium to %s", base.Medium)
	}

	noir, err := cfg.Params("noir")
	if err != nil {
		t.Fatalf("Params(noir) error: %v", err)
	}
	if noir.Style != params.StyleCharcoal {
		t.Errorf("profile Style = %s, want charcoal", noir.Style)
	}
	if !noir.Invert || noir.Contrast != 1.5 {
		t.Errorf("profile Invert/Contrast = %v/%v, want true/1.5", noir.Invert, noir.Contrast)
	}
	if noir.Intensity != 7 {
		t.Errorf("profile lost [defaults] intensity: %d", noir.Intensity)
	}

	soft, err := cfg.Params("soft")
	if err != nil {
		t.Fatalf("Params(soft) error: %v", err)
	}
	if soft.Brush != params.BrushInkWash || soft.Texture != params.TexturePaper || soft.TextureOpacity != 3 {
		t.Errorf("soft = %s/%s/%d", soft.Brush, soft.Texture, soft.TextureOpacity)
	}

	if _, err := cfg.Params("missing"); !serrors.Is(err, serrors.ErrCodeInvalidInput) {
		t.Errorf("Params(missing) error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[defaults\nstyle = 1"},
		{"unknown backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"bad timeout", "[remote]\ntimeout = \"-5s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("loadConfig() succeeded, want error")
			}
		})
	}
}

func TestConfigInvalidEnums(t *testing.T) {
	tests := []struct {
		name string
		body string
		code serrors.Code
	}{
		{"style", "[defaults]\nstyle = \"cubist\"", serrors.ErrCodeInvalidStyle},
		{"medium", "[defaults]\nmedium = \"crayon\"", serrors.ErrCodeInvalidMedium},
		{"brush", "[profiles.x]\nbrush = \"roller\"", serrors.ErrCodeInvalidBrush},
		{"seed", "[defaults]\nseed = -1", serrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			_, err = cfg.Params("x")
			if serrors.GetCode(err) != tt.code {
				t.Errorf("Params() code = %v, want %v (err %v)", serrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") without a file error: %v", err)
	}
	if cfg.path != "" {
		t.Errorf("path = %q, want empty", cfg.path)
	}
	p, err := cfg.Params("")
	if err != nil {
		t.Fatal(err)
	}
	if p != params.Default() {
		t.Errorf("empty config Params() = %+v, want defaults", p)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !serrors.Is(err, serrors.ErrCodeFileNotFound) {
		t.Errorf("loadConfig(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
