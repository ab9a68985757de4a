package data

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/summoning/internal/nav"
)

// Map glyphs.
const (
	GlyphWall   = '#'
	GlyphFloor  = '.'
	GlyphPlayer = 'P'
	GlyphEnemy  = 'E'
)

var (
	ErrNoPlayerTower   = errors.New("map has no player tower")
	ErrManyPlayerTower = errors.New("map has more than one player tower")
	ErrNoEnemyTower    = errors.New("map has no enemy tower")
	ErrRaggedMap       = errors.New("map rows differ in width")
)

// Level is a parsed grid map.
type Level struct {
	Name     string
	Digest   string // blake2b-256 of the grid, hex
	CellSize float64
	Diagonal bool
	Width    int
	Height   int

	Walls   []nav.Cell
	Player  nav.Cell
	Enemies []nav.Cell // scan order: row by row, left to right
}

type levelFile struct {
	Name     string   `yaml:"name"`
	CellSize float64  `yaml:"cell_size"`
	Diagonal bool     `yaml:"diagonal"`
	Rows     []string `yaml:"rows"`
}

// LoadLevel reads and parses the map file at path. defaultCellSize applies
// when the file does not set cell_size.
func LoadLevel(path string, defaultCellSize float64) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	lvl, err := ParseLevel(raw, defaultCellSize)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	slog.Info("loaded map",
		"name", lvl.Name,
		"size", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
		"enemyTowers", len(lvl.Enemies),
		"digest", lvl.Digest[:12])
	return lvl, nil
}

// ParseLevel decodes a map document.
func ParseLevel(raw []byte, defaultCellSize float64) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, errors.New("map has no rows")
	}
	if f.CellSize == 0 {
		f.CellSize = defaultCellSize
	}
	if f.CellSize <= 0 {
		return nil, fmt.Errorf("cell_size %v must be positive", f.CellSize)
	}

	lvl := &Level{
		Name:     f.Name,
		CellSize: f.CellSize,
		Diagonal: f.Diagonal,
		Width:    len(f.Rows[0]),
		Height:   len(f.Rows),
	}
	if lvl.Width == 0 {
		return nil, errors.New("map has empty rows")
	}

	players := 0
	for row, line := range f.Rows {
		if len(line) != lvl.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedMap, row, len(line), lvl.Width)
		}
		for col := range len(line) {
			cell := nav.Cell{Column: col, Row: row}
			switch line[col] {
			case GlyphWall:
				lvl.Walls = append(lvl.Walls, cell)
			case GlyphFloor:
			case GlyphPlayer:
				lvl.Player = cell
				players++
			case GlyphEnemy:
				lvl.Enemies = append(lvl.Enemies, cell)
			default:
				return nil, fmt.Errorf("unknown glyph %q at %d,%d", line[col], col, row)
			}
		}
	}

	switch {
	case players == 0:
		return nil, ErrNoPlayerTower
	case players > 1:
		return nil, ErrManyPlayerTower
	case len(lvl.Enemies) == 0:
		return nil, ErrNoEnemyTower
	}

	sum := blake2b.Sum256([]byte(strings.Join(f.Rows, "\n")))
	lvl.Digest = hex.EncodeToString(sum[:])
	return lvl, nil
}

// Mesh builds the navigation mesh of the level. Tower cells stay walkable so
// they can serve as path endpoints.
func (l *Level) Mesh() (*nav.Mesh, error) {
	mesh, err := nav.NewMesh(l.Width, l.Height, l.CellSize)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	mesh.SetDiagonal(l.Diagonal)
	for _, w := range l.Walls {
		mesh.AddObstacle(w.Column, w.Row)
	}
	return mesh, nil
}
