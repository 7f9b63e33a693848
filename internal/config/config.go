package config

import (
	"strings"

	"github.com/hypdisk/hypdisk/internal/engine"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port            int     `envconfig:"PORT" default:"8080"`
	CanvasSize      float64 `envconfig:"CANVAS_SIZE" default:"800"`
	BoundaryPadding float64 `envconfig:"BOUNDARY_PADDING" default:"5"`
	TransformSpeed  float64 `envconfig:"TRANSFORM_SPEED" default:"0.0001"`
	StrokeStyle     string  `envconfig:"STROKE_STYLE" default:"black"`
	FillStyle       string  `envconfig:"FILL_STYLE" default:"orange"`
	LineWidth       float64 `envconfig:"LINE_WIDTH" default:"2"`
	FillOpacity     float64 `envconfig:"FILL_OPACITY" default:"0.5"`
	AnchorRadius    float64 `envconfig:"ANCHOR_RADIUS" default:"5"`
	HistoryLimit    int     `envconfig:"HISTORY_LIMIT" default:"200"`
	StaticDir       string  `envconfig:"STATIC_DIR" default:"./web"`
	AllowedOrigins  string  `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EngineSettings returns the settings for a new session.
func (c *Config) EngineSettings() engine.Settings {
	return engine.Settings{
		CanvasSize:   c.CanvasSize,
		Padding:      c.BoundaryPadding,
		StrokeStyle:  c.StrokeStyle,
		FillStyle:    c.FillStyle,
		LineWidth:    c.LineWidth,
		FillOpacity:  c.FillOpacity,
		AnchorRadius: c.AnchorRadius,
		Speed:        c.TransformSpeed,
		HistoryLimit: c.HistoryLimit,
	}
}

// Origins splits AllowedOrigins into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
