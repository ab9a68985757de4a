package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrUnknownTemplate is returned when a template name is not registered.
var ErrUnknownTemplate = errors.New("unknown minion template")

// MinionTemplate describes a minion kind the player can summon.
type MinionTemplate struct {
	Name           string `yaml:"name"`
	Cost           int32  `yaml:"cost"`
	Health         int32  `yaml:"health"`
	TowerDamage    int32  `yaml:"tower_damage"`
	KillReward     int32  `yaml:"kill_reward"`
	TowerHitReward int32  `yaml:"tower_hit_reward"`
	Visual         string `yaml:"visual"`
	LightColor     []int  `yaml:"light_color"` // r, g, b
}

// Color returns LightColor as an RGB triple. Missing channels are 255.
func (t *MinionTemplate) Color() [3]uint8 {
	c := [3]uint8{255, 255, 255}
	for i := range min(len(t.LightColor), 3) {
		c[i] = uint8(t.LightColor[i])
	}
	return c
}

func (t *MinionTemplate) validate() error {
	switch {
	case t.Name == "":
		return errors.New("name is empty")
	case t.Cost <= 0:
		return fmt.Errorf("cost %d must be positive", t.Cost)
	case t.Health <= 0:
		return fmt.Errorf("health %d must be positive", t.Health)
	case t.TowerDamage < 0:
		return fmt.Errorf("tower_damage %d is negative", t.TowerDamage)
	case t.KillReward < 0:
		return fmt.Errorf("kill_reward %d is negative", t.KillReward)
	case t.TowerHitReward < 0:
		return fmt.Errorf("tower_hit_reward %d is negative", t.TowerHitReward)
	}
	if len(t.LightColor) != 0 && len(t.LightColor) != 3 {
		return fmt.Errorf("light_color needs 3 channels, got %d", len(t.LightColor))
	}
	for _, ch := range t.LightColor {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("light_color channel %d out of range", ch)
		}
	}
	return nil
}

// MinionTemplates is the registry of summonable minions and their command
// bindings. Immutable after loading.
type MinionTemplates struct {
	byName   map[string]*MinionTemplate
	bindings map[string]string // command key → template name
}

type templatesFile struct {
	Minions  map[string]MinionTemplate `yaml:"minions"`
	Bindings map[string]string         `yaml:"bindings"`
}

// LoadMinionTemplates reads and validates the template file at path.
func LoadMinionTemplates(path string) (*MinionTemplates, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates %s: %w", path, err)
	}
	reg, err := ParseMinionTemplates(raw)
	if err != nil {
		return nil, fmt.Errorf("templates %s: %w", path, err)
	}
	slog.Info("loaded minion templates", "count", len(reg.byName), "bindings", len(reg.bindings))
	return reg, nil
}

// ParseMinionTemplates decodes and validates a template document.
// A template whose name field is empty takes its map key.
func ParseMinionTemplates(raw []byte) (*MinionTemplates, error) {
	var f templatesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if len(f.Minions) == 0 {
		return nil, errors.New("no minion templates defined")
	}

	reg := &MinionTemplates{
		byName:   make(map[string]*MinionTemplate, len(f.Minions)),
		bindings: make(map[string]string, len(f.Bindings)),
	}
	for key, tmpl := range f.Minions {
		if tmpl.Name == "" {
			tmpl.Name = key
		}
		if err := tmpl.validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", key, err)
		}
		reg.byName[key] = &tmpl
	}
	for cmd, name := range f.Bindings {
		if _, ok := reg.byName[name]; !ok {
			return nil, fmt.Errorf("binding %q: %w: %s", cmd, ErrUnknownTemplate, name)
		}
		reg.bindings[cmd] = name
	}
	return reg, nil
}

// Lookup returns the template registered under name.
func (r *MinionTemplates) Lookup(name string) (*MinionTemplate, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return t, nil
}

// Binding returns the template name bound to a command key ("1", "2", ...).
func (r *MinionTemplates) Binding(cmd string) (string, bool) {
	name, ok := r.bindings[cmd]
	return name, ok
}

// Names returns registered template names in sorted order.
func (r *MinionTemplates) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of templates.
func (r *MinionTemplates) Len() int { return len(r.byName) }
