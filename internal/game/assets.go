package game

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"chickenescape/pkg/logger"

	xdraw "golang.org/x/image/draw"
)

// SpriteID names an optional image that replaces a flat shape.
type SpriteID uint8

const (
	SpriteNone SpriteID = iota
	SpriteChicken
	SpriteFryer
	SpriteCrate
	SpriteBoss
	spriteCount
)

var spriteFiles = [spriteCount]string{
	SpriteChicken: "chicken.png",
	SpriteFryer:   "fryer.png",
	SpriteCrate:   "crate.png",
	SpriteBoss:    "boss.png",
}

// Sprites holds the images found in the asset directory, each scaled to
// one atlas cell. A nil *Sprites has none.
type Sprites struct {
	img [spriteCount]*image.NRGBA
}

// LoadSprites reads every known sprite from dir. A sprite that is missing or
// does not decode is logged and left out; its shape is drawn flat instead.
func LoadSprites(dir string) *Sprites {
	log := logger.Component("assets").WithField("dir", dir)
	sp := &Sprites{}
	loaded := 0
	for id := SpriteChicken; id < spriteCount; id++ {
		img, err := loadPNG(filepath.Join(dir, spriteFiles[id]))
		if err != nil {
			log.WithError(err).Warn("sprite unavailable, using flat shape")
			continue
		}
		sp.img[id] = img
		loaded++
	}
	log.WithField("loaded", loaded).Debug("sprites loaded")
	return sp
}

func loadPNG(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return fitCell(src), nil
}

// fitCell scales src to SpriteCell x SpriteCell.
func fitCell(src image.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, SpriteCell, SpriteCell))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func (sp *Sprites) Has(id SpriteID) bool {
	return sp != nil && id > SpriteNone && id < spriteCount && sp.img[id] != nil
}

func spriteOrigin(id SpriteID) (int, int) {
	return int(id-1) * SpriteCell, FontAtlasH
}

// paint copies the loaded sprites into their atlas cells.
func (sp *Sprites) paint(atlas *image.NRGBA) {
	for id := SpriteChicken; id < spriteCount; id++ {
		if !sp.Has(id) {
			continue
		}
		x, y := spriteOrigin(id)
		xdraw.Copy(atlas, image.Pt(x, y), sp.img[id], sp.img[id].Bounds(), xdraw.Src, nil)
	}
}

// spriteUV returns the atlas coordinates of a sprite cell, inset half a
// texel.
func spriteUV(id SpriteID) (u0, v0, u1, v1 float32) {
	x, y := spriteOrigin(id)
	const h = 0.5
	return (float32(x) + h) / AtlasW, (float32(y) + h) / AtlasH,
		(float32(x+SpriteCell) - h) / AtlasW, (float32(y+SpriteCell) - h) / AtlasH
}
