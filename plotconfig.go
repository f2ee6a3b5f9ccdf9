package main

import (
	"fmt"
	"io/ioutil"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gopkg.in/yaml.v2"
)

// plotConfig is the style file accepted by "plot -config".
//
//	width: 1024
//	height: 1024
//	title: hg38 vs chm13
//	line_width: 0.5
//	forward_color: black
//	reverse_color: firebrick
type plotConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Title        string  `yaml:"title"`
	LineWidth    float64 `yaml:"line_width"`
	ForwardColor string  `yaml:"forward_color"`
	ReverseColor string  `yaml:"reverse_color"`
}

var defaultPlotConfig = plotConfig{
	Width:        640,
	Height:       480,
	LineWidth:    1,
	ForwardColor: "black",
	ReverseColor: "firebrick",
}

// loadPlotConfig returns the defaults overridden by the YAML file at
// path, if path is not empty.
func loadPlotConfig(path string) (plotConfig, error) {
	cfg := defaultPlotConfig
	if path == "" {
		return cfg, nil
	}
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.UnmarshalStrict(buf, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %s", path, err)
	}
	return cfg, cfg.check()
}

func (cfg plotConfig) check() error {
	if cfg.Width < 1 || cfg.Height < 1 {
		return fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.LineWidth <= 0 {
		return fmt.Errorf("invalid line width %v", cfg.LineWidth)
	}
	for _, name := range []string{cfg.ForwardColor, cfg.ReverseColor} {
		if _, ok := colornames.Map[strings.ToLower(name)]; !ok {
			return fmt.Errorf("unknown color %q", name)
		}
	}
	return nil
}

func (cfg plotConfig) lineStyle(color string) draw.LineStyle {
	return draw.LineStyle{
		Color: colornames.Map[strings.ToLower(color)],
		Width: vg.Points(cfg.LineWidth),
	}
}
