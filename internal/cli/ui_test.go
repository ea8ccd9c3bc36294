package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStatus(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  []string
	}{
		{"success", func() { printSuccess("wrote %d", 2) }, []string{"✓", "wrote 2"}},
		{"error", func() { printError("bad %s", "photo.png") }, []string{"✗", "bad photo.png"}},
		{"warning", func() { printWarning("slow") }, []string{"!", "slow"}},
		{"info", func() { printInfo("rendering") }, []string{"›", "rendering"}},
		{"file", func() { printFile("out/a.sketch.png") }, []string{"→", "out/a.sketch.png"}},
		{"key value", func() { printKeyValue("Style", "pencil") }, []string{"Style", "pencil"}},
		{"next step", func() { printNextStep("Try", "sketchify styles") }, []string{"Try:", "sketchify styles"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			tt.print()
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output = %q, want it to contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name    string
		cached  bool
		want    string
		wantNot string
	}{
		{"fresh", false, "fresh", "cached"},
		{"cached", true, "cached", "fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(640, 480, "local", 1500*time.Microsecond, tt.cached)
			out := buf.String()
			for _, want := range []string{"640×480", "local", "2ms", tt.want} {
				if !strings.Contains(out, want) {
					t.Errorf("printStats() = %q, want it to contain %q", out, want)
				}
			}
			if strings.Contains(out, tt.wantNot) {
				t.Errorf("printStats() = %q, should not contain %q", out, tt.wantNot)
			}
		})
	}
}

func TestPrintStatsOmitsUnknownSize(t *testing.T) {
	buf := captureStdout(t)
	printStats(0, 0, "", 0, false)
	if strings.Contains(buf.String(), "×") {
		t.Errorf("printStats() = %q, want no dimensions", buf.String())
	}
}
