package levels

// Map layer and object group names.
const (
	LayerPlatforms    = "Platforms"
	LayerCoins        = "Coins"
	LayerHearts       = "Hearts"
	LayerPowerUps     = "Power Ups"
	LayerDontTouch    = "Don't Touch"
	LayerLadders      = "Ladders"
	LayerDynamicItems = "Dynamic Items"
	LayerDynamicTiles = "Dynamic Tiles"

	GroupEnemies         = "Enemies"
	GroupAllies          = "Allies"
	GroupMovingPlatforms = "Moving Platforms"
)

// TileLayers lists the tile layers the simulation consumes. Any other tile
// layer (backgrounds, foregrounds) is decoration and skipped.
var TileLayers = []string{
	LayerPlatforms,
	LayerCoins,
	LayerHearts,
	LayerPowerUps,
	LayerDontTouch,
	LayerLadders,
	LayerDynamicItems,
	LayerDynamicTiles,
}

// Level is the spawn data of one map. Rows count up from the bottom of the
// map and all pixel values are unscaled map pixels with y growing upward.
type Level struct {
	Index      int
	Name       string
	Cols       int
	Rows       int
	TileWidth  int
	TileHeight int

	Tiles     []Tile
	Enemies   []Actor
	Allies    []Actor
	Platforms []Platform
}

// PixelWidth is the map width in unscaled pixels.
func (l *Level) PixelWidth() float64 {
	return float64(l.Cols * l.TileWidth)
}

func (l *Level) PixelHeight() float64 {
	return float64(l.Rows * l.TileHeight)
}

// TilesIn returns the tiles of one layer in map order.
func (l *Level) TilesIn(layer string) []Tile {
	var out []Tile
	for _, t := range l.Tiles {
		if t.Layer == layer {
			out = append(out, t)
		}
	}
	return out
}

type Tile struct {
	Layer      string
	Col        int
	Row        int
	Properties map[string]string
}

// Bounds are optional patrol limits in world pixels.
type Bounds struct {
	Left   *float64
	Right  *float64
	Top    *float64
	Bottom *float64
}

// Actor is an enemy or ally placement. Type is the raw map tag; resolving it
// to an archetype is left to the caller so an unknown tag can fail the load.
type Actor struct {
	Type    string
	Col     int
	Row     int
	Bounds  Bounds
	ChangeX float64
	ChangeY float64
	Speech  string
}

// Platform is a moving platform rectangle.
type Platform struct {
	Left    float64
	Bottom  float64
	Width   float64
	Height  float64
	Bounds  Bounds
	ChangeX float64
	ChangeY float64
}
