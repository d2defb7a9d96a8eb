package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"

	"github.com/lafriks/go-tiled"
)

//go:embed maps/*.tmx
var MapsFS embed.FS

var ErrLevelNotFound = errors.New("levels: level not found")

// Loader reads level_<n>.tmx files from a directory of fsys.
type Loader struct {
	fsys fs.FS
	dir  string
}

func NewLoader(fsys fs.FS, dir string) *Loader {
	return &Loader{fsys: fsys, dir: dir}
}

// Embedded returns a loader over the maps shipped with the binary.
func Embedded() *Loader {
	return NewLoader(MapsFS, "maps")
}

func (l *Loader) fileName(index int) string {
	return path.Join(l.dir, fmt.Sprintf("level_%d.tmx", index))
}

// Count reports how many consecutive levels exist starting at level_0.
func (l *Loader) Count() int {
	n := 0
	for {
		if _, err := fs.Stat(l.fsys, l.fileName(n)); err != nil {
			return n
		}
		n++
	}
}

// Load parses the map for one level index.
func (l *Loader) Load(index int) (*Level, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, index)
	}
	name := l.fileName(index)
	if _, err := fs.Stat(l.fsys, name); err != nil {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, index)
	}

	m, err := tiled.LoadFile(name, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("levels: %s has no tile size", name)
	}

	lvl := &Level{
		Index:      index,
		Name:       path.Base(name),
		Cols:       m.Width,
		Rows:       m.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}
	if err := readTiles(m, lvl); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	readObjects(m, lvl)
	return lvl, nil
}

func readTiles(m *tiled.Map, lvl *Level) error {
	wanted := make(map[string]bool, len(TileLayers))
	for _, name := range TileLayers {
		wanted[name] = true
	}
	for _, layer := range m.Layers {
		if !wanted[layer.Name] {
			continue
		}
		if len(layer.Tiles) < m.Width*m.Height {
			return fmt.Errorf("layer %q has %d tiles, want %d", layer.Name, len(layer.Tiles), m.Width*m.Height)
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				tile := layer.Tiles[y*m.Width+x]
				if tile == nil || tile.IsNil() {
					continue
				}
				props := map[string]string{}
				if tile.Tileset != nil {
					if tt, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
						props = propertyMap(tt.Properties)
					}
				}
				lvl.Tiles = append(lvl.Tiles, Tile{
					Layer:      layer.Name,
					Col:        x,
					Row:        m.Height - 1 - y,
					Properties: props,
				})
			}
		}
	}
	return nil
}

func readObjects(m *tiled.Map, lvl *Level) {
	mapH := float64(m.Height * m.TileHeight)
	for _, group := range m.ObjectGroups {
		switch group.Name {
		case GroupEnemies, GroupAllies:
			for _, o := range group.Objects {
				props := propertyMap(o.Properties)
				a := Actor{
					Type:    props["type"],
					Col:     int(math.Floor(o.X / float64(m.TileWidth))),
					Row:     int(math.Floor((mapH - o.Y) / float64(m.TileHeight))),
					Bounds:  readBounds(props),
					ChangeX: floatProp(props, "change_x"),
					ChangeY: floatProp(props, "change_y"),
					Speech:  props["speech"],
				}
				if group.Name == GroupEnemies {
					lvl.Enemies = append(lvl.Enemies, a)
				} else {
					lvl.Allies = append(lvl.Allies, a)
				}
			}
		case GroupMovingPlatforms:
			for _, o := range group.Objects {
				props := propertyMap(o.Properties)
				w, h := o.Width, o.Height
				if w <= 0 {
					w = float64(m.TileWidth)
				}
				if h <= 0 {
					h = float64(m.TileHeight)
				}
				// Tile objects are anchored bottom-left, rectangles top-left.
				bottom := mapH - o.Y
				if o.GID == 0 {
					bottom -= h
				}
				lvl.Platforms = append(lvl.Platforms, Platform{
					Left:    o.X,
					Bottom:  bottom,
					Width:   w,
					Height:  h,
					Bounds:  readBounds(props),
					ChangeX: floatProp(props, "change_x"),
					ChangeY: floatProp(props, "change_y"),
				})
			}
		}
	}
	sort.SliceStable(lvl.Enemies, func(i, j int) bool { return lvl.Enemies[i].Col < lvl.Enemies[j].Col })
	sort.SliceStable(lvl.Allies, func(i, j int) bool { return lvl.Allies[i].Col < lvl.Allies[j].Col })
}

func propertyMap(props tiled.Properties) map[string]string {
	out := make(map[string]string, len(props))
	for _, p := range props {
		if p == nil {
			continue
		}
		out[p.Name] = p.Value
	}
	return out
}

func readBounds(props map[string]string) Bounds {
	return Bounds{
		Left:   optionalFloat(props, "boundary_left"),
		Right:  optionalFloat(props, "boundary_right"),
		Top:    optionalFloat(props, "boundary_top"),
		Bottom: optionalFloat(props, "boundary_bottom"),
	}
}

func optionalFloat(props map[string]string, name string) *float64 {
	raw, ok := props[name]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func floatProp(props map[string]string, name string) float64 {
	if v := optionalFloat(props, name); v != nil {
		return *v
	}
	return 0
}
