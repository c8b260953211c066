// Package info loads the welcome/info message shown to new members.
package info

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/dtroode/rostersync/internal/model"
)

// DefaultColor is gold.
const DefaultColor = 0xFFD700

var _ model.InfoProvider = (*Provider)(nil)

type document struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Footer       string `yaml:"footer"`
	ThumbnailURL string `yaml:"thumbnail_url"`
	Color        string `yaml:"color"`
}

// Provider serves an info payload parsed once at construction.
type Provider struct {
	info model.Info
}

// NewProvider wraps an already built payload.
func NewProvider(info model.Info) *Provider {
	return &Provider{info: info}
}

// Load reads the YAML file at path.
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read info file: %w", err)
	}

	info, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewProvider(info), nil
}

// Parse decodes an info document. Color accepts "#rrggbb", "rrggbb" or a
// decimal integer and defaults to gold.
func Parse(data []byte) (model.Info, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Info{}, fmt.Errorf("failed to parse info file: %w", err)
	}
	if strings.TrimSpace(doc.Title) == "" {
		return model.Info{}, fmt.Errorf("%w: info title is empty", model.ErrInvalidArgument)
	}

	color, err := parseColor(doc.Color)
	if err != nil {
		return model.Info{}, err
	}

	return model.Info{
		Title:        doc.Title,
		Description:  doc.Description,
		Footer:       doc.Footer,
		ThumbnailURL: doc.ThumbnailURL,
		Color:        color,
	}, nil
}

func (p *Provider) Info(_ context.Context) (model.Info, error) {
	return p.info, nil
}

func parseColor(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}

	base := 10
	if strings.HasPrefix(s, "#") {
		s, base = s[1:], 16
	} else if strings.HasPrefix(s, "0x") {
		s, base = s[2:], 16
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil || v < 0 || v > 0xFFFFFF {
		return 0, fmt.Errorf("%w: bad info color %q", model.ErrInvalidArgument, s)
	}
	return int(v), nil
}
