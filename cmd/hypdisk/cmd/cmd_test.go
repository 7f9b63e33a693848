package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const scene = `// two shapes
tool line
click 20 0
click 0 30
tool polygon
click 10 10
click -30 20
click 5 -40 shift
`

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.hyp")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags to prevent accumulation between tests
	verbose = false
	canvasSize = 0
	outputPath = ""
	showLabels = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	path := writeScript(t, scene)
	out, err := execute(t, "check", path)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	for _, want := range []string{"7 commands ok", "line         1", "polygon      1", "point        0", "tool         polygon"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckReportsFailure(t *testing.T) {
	path := writeScript(t, "tool segment\nclick 1 1\nclick 1 1\n")
	if _, err := execute(t, "check", path); err == nil || !strings.Contains(err.Error(), "3:1") {
		t.Errorf("err = %v, want failure at 3:1", err)
	}
}

func TestRender(t *testing.T) {
	path := writeScript(t, scene)
	dst := filepath.Join(t.TempDir(), "out.png")
	out, err := execute(t, "render", "--size", "300", "--labels", "-o", dst, path)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != dst {
		t.Errorf("output = %q, want %q", out, dst)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Errorf("bounds = %v, want 300x300", b)
	}
}

func TestRenderDefaultOutput(t *testing.T) {
	path := writeScript(t, scene)
	if _, err := execute(t, "render", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(strings.TrimSuffix(path, ".hyp") + ".png"); err != nil {
		t.Errorf("default output: %v", err)
	}
}

func TestRenderRejectsSmallCanvas(t *testing.T) {
	path := writeScript(t, scene)
	if _, err := execute(t, "render", "--size", "4", path); err == nil {
		t.Error("expected error for a 4px canvas")
	}
}
