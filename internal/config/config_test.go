package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.CanvasSize != 800 || cfg.StaticDir != "./web" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	s := cfg.EngineSettings()
	if s.Padding != 5 || s.Speed != 0.0001 || s.FillStyle != "orange" || s.HistoryLimit != 200 {
		t.Errorf("engine settings %+v", s)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CANVAS_SIZE", "410")
	t.Setenv("TRANSFORM_SPEED", "0.002")
	t.Setenv("STROKE_STYLE", "navy")
	t.Setenv("ALLOWED_ORIGINS", " example.com, ,*.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d", cfg.Port)
	}
	s := cfg.EngineSettings()
	if s.CanvasSize != 410 || s.Speed != 0.002 || s.StrokeStyle != "navy" {
		t.Errorf("engine settings %+v", s)
	}
	want := []string{"example.com", "*.example.org"}
	if got := cfg.Origins(); !reflect.DeepEqual(got, want) {
		t.Errorf("origins = %q, want %q", got, want)
	}
}

func TestLoadRejectsBadNumber(t *testing.T) {
	t.Setenv("LINE_WIDTH", "thick")
	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric LINE_WIDTH")
	}
}
