package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"gopkg.in/yaml.v3"
)

// Placeholders replaced in layer text for every recipient.
const (
	PlaceholderEmail = "{email}"
	PlaceholderUser  = "{user}"
)

const defaultHeader = "Please keep this document for personal use only\nDO NOT DISTRIBUTE IT"

var defaultColor = color.NRGBA{R: 0, G: 0, B: 0, A: 48}

// DefaultLayers is the built-in stack: the recipient's address tiled at 30
// degrees and a disclaimer in the top right corner.
func DefaultLayers(family string, size float64) []models.LayerConfig {
	font := models.FontRef{Family: family, Size: size}
	return []models.LayerConfig{
		{
			Name:     "email",
			Text:     models.TextSpec{Text: PlaceholderEmail, Color: defaultColor, Font: font},
			Position: models.LeftTop,
			Rotation: models.RotationSpec{Angle: 30},
			Repeat:   &models.RepeatSpec{SpacingW: 0.5, SpacingH: 6},
		},
		{
			Name:     "header",
			Text:     models.TextSpec{Text: defaultHeader, Color: defaultColor, Font: font},
			Position: models.RightTop,
		},
	}
}

type LayerFile struct {
	Layers []LayerEntry `yaml:"layers"`
}

type LayerEntry struct {
	Name     string             `yaml:"name"`
	Text     string             `yaml:"text"`
	Color    string             `yaml:"color"`
	Font     models.FontRef     `yaml:"font"`
	Position string             `yaml:"position"`
	Rotation float64            `yaml:"rotation"`
	Repeat   *models.RepeatSpec `yaml:"repeat"`
}

func LoadLayerFile(path string) ([]models.LayerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewConfigError("layers_file", fmt.Sprintf("failed to read %s: %v", path, err))
	}
	return ParseLayers(data)
}

// ParseLayers decodes a YAML layer list. Unset colours fall back to the
// default translucent black.
func ParseLayers(data []byte) ([]models.LayerConfig, error) {
	var file LayerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, models.NewConfigError("layers_file", fmt.Sprintf("failed to parse layers: %v", err))
	}
	if len(file.Layers) == 0 {
		return nil, models.NewConfigError("layers_file", "no layers defined")
	}

	layers := make([]models.LayerConfig, 0, len(file.Layers))
	for i, e := range file.Layers {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("layer-%d", i+1)
		}

		c := defaultColor
		if e.Color != "" {
			parsed, err := ParseColor(e.Color)
			if err != nil {
				return nil, models.NewConfigError("color", fmt.Sprintf("layer %q: %v", name, err))
			}
			c = parsed
		}

		pos, err := models.ParsePosition(e.Position)
		if err != nil {
			return nil, err
		}

		layers = append(layers, models.LayerConfig{
			Name:     name,
			Text:     models.TextSpec{Text: e.Text, Color: c, Font: e.Font},
			Position: pos,
			Rotation: models.RotationSpec{Angle: e.Rotation},
			Repeat:   e.Repeat,
		})
	}
	return layers, nil
}

// ParseColor accepts #RRGGBB and #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q, want #RRGGBB or #RRGGBBAA", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// ExpandLayers returns a copy of layers with the recipient placeholders
// replaced.
func ExpandLayers(layers []models.LayerConfig, r models.Recipient) []models.LayerConfig {
	replacer := strings.NewReplacer(PlaceholderEmail, r.Email, PlaceholderUser, r.UserID)
	out := make([]models.LayerConfig, len(layers))
	for i, l := range layers {
		l.Text.Text = replacer.Replace(l.Text.Text)
		out[i] = l
	}
	return out
}
