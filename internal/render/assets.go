package render

import (
	"image/color"
	_ "image/png"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ayusman/handshot/internal/game"
)

// spriteFiles maps sprites to PNG files under <assets>/images.
var spriteFiles = map[game.Sprite]string{
	game.SpriteBackground:  "background.png",
	game.SpritePlayer:      "player_ship.png",
	game.SpriteBullet:      "bullet.png",
	game.SpritePowerBullet: "power.png",
	game.SpriteEnemy:       "enemy_ship.png",
	game.SpriteBeam:        "beam.png",
	game.SpriteLife:        "life.png",
}

// fallbackColors fill a sprite's rectangle when its image is missing.
var fallbackColors = map[game.Sprite]color.RGBA{
	game.SpriteBackground:  {0, 0, 0, 255},
	game.SpritePlayer:      {80, 160, 255, 255},
	game.SpriteBullet:      {255, 255, 0, 255},
	game.SpritePowerBullet: {255, 140, 0, 255},
	game.SpriteEnemy:       {220, 40, 40, 255},
	game.SpriteBeam:        {0, 255, 255, 255},
	game.SpriteLife:        {255, 80, 160, 255},
}

// ToneColor returns the colour for a text or button tone.
func ToneColor(t game.Tone) color.RGBA {
	switch t {
	case game.ToneRed:
		return color.RGBA{255, 0, 0, 255}
	case game.ToneGreen:
		return color.RGBA{0, 255, 0, 255}
	case game.ToneBlue:
		return color.RGBA{0, 0, 255, 255}
	case game.ToneSelected:
		return color.RGBA{0, 200, 0, 255}
	default:
		return color.RGBA{255, 255, 255, 255}
	}
}

// SpritePath returns where the image for s is expected, or "" when s has none.
func SpritePath(assetDir string, s game.Sprite) string {
	name, ok := spriteFiles[s]
	if !ok {
		return ""
	}
	return filepath.Join(assetDir, "images", name)
}

// loadSprites loads every sprite image it can find. Missing images are
// logged and later drawn as flat rectangles.
func loadSprites(assetDir string, log *zap.SugaredLogger) map[game.Sprite]*ebiten.Image {
	sprites := make(map[game.Sprite]*ebiten.Image, len(spriteFiles))
	for s := range spriteFiles {
		path := SpritePath(assetDir, s)
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			log.Warnw("Sprite unavailable, using flat colour", "path", path, "error", err)
			continue
		}
		sprites[s] = img
	}
	return sprites
}

// fontScale converts the pixel sizes used by the draw list to point sizes
// that render at a similar height.
const fontScale = 0.75

// faces caches one font face per requested size.
type faces struct {
	font  *truetype.Font
	cache map[int]*text.GoXFace
}

func newFaces() (*faces, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &faces{font: f, cache: make(map[int]*text.GoXFace)}, nil
}

func (f *faces) get(size int) *text.GoXFace {
	if face, ok := f.cache[size]; ok {
		return face
	}
	face := text.NewGoXFace(truetype.NewFace(f.font, &truetype.Options{Size: float64(size) * fontScale}))
	f.cache[size] = face
	return face
}
