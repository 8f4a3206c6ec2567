package levels

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml *.png *.tengo
var LevelsFS embed.FS

// ManifestFile names the level chain inside the levels directory.
const ManifestFile = "levels.yaml"

// Manifest lists the levels and the order they are played in.
type Manifest struct {
	Start  string  `yaml:"start"`
	Levels []Entry `yaml:"levels"`
}

// Entry describes one level. Exactly one of Image and Script is set; script
// levels also need a size.
type Entry struct {
	Name   string `yaml:"name"`
	Image  string `yaml:"image,omitempty"`
	Script string `yaml:"script,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Next   string `yaml:"next,omitempty"`
}

// Source returns the file the level is built from.
func (e Entry) Source() string {
	if e.Image != "" {
		return e.Image
	}
	return e.Script
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", ManifestFile, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	if m == nil || len(m.Levels) == 0 {
		return fmt.Errorf("levels: manifest has no levels")
	}
	seen := make(map[string]bool, len(m.Levels))
	for _, e := range m.Levels {
		if e.Name == "" {
			return fmt.Errorf("levels: level without a name")
		}
		if seen[e.Name] {
			return fmt.Errorf("levels: duplicate level %q", e.Name)
		}
		seen[e.Name] = true
		switch {
		case e.Image != "" && e.Script != "":
			return fmt.Errorf("levels: %q sets both image and script", e.Name)
		case e.Image == "" && e.Script == "":
			return fmt.Errorf("levels: %q has no image or script", e.Name)
		case e.Script != "" && (e.Width <= 0 || e.Height <= 0):
			return fmt.Errorf("levels: script level %q needs a width and height", e.Name)
		}
	}
	// next may name any level, including one earlier in the chain
	for _, e := range m.Levels {
		if e.Next != "" && !seen[e.Next] {
			return fmt.Errorf("levels: %q continues to unknown level %q", e.Name, e.Next)
		}
	}
	if m.Start != "" && !seen[m.Start] {
		return fmt.Errorf("levels: unknown start level %q", m.Start)
	}
	return nil
}

func (m *Manifest) Find(name string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	for _, e := range m.Levels {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// First returns the start level, or the first listed one.
func (m *Manifest) First() string {
	if m == nil || len(m.Levels) == 0 {
		return ""
	}
	if m.Start != "" {
		return m.Start
	}
	return m.Levels[0].Name
}

// Using returns the names of levels built from file.
func (m *Manifest) Using(file string) []string {
	if m == nil {
		return nil
	}
	clean := cleanLevelPath(file)
	var out []string
	for _, e := range m.Levels {
		if cleanLevelPath(e.Source()) == clean {
			out = append(out, e.Name)
		}
	}
	return out
}

func cleanLevelPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	return s
}

func isLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp", ".tif", ".tiff", ".gif", ".tengo", ".yaml", ".yml":
		return true
	}
	return false
}
