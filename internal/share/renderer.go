// Package share rasterizes achievement cards for the share endpoint.
package share

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	cardWidth  = 900
	cardHeight = 500
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws the achievement card and returns it as a PNG data URI,
// ready to drop into an <img> src on the client.
func (r *Renderer) Render(title, description string) (string, error) {
	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetHexColor("#1c1c2e")
	dc.Clear()

	dc.SetHexColor("#7c5cff")
	dc.DrawRectangle(0, 0, cardWidth, 12)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)

	dc.SetHexColor("#ffffff")
	dc.DrawStringAnchored(title, cardWidth/2, 140, 0.5, 0.5)

	dc.SetHexColor("#c9c9d9")
	dc.DrawStringWrapped(description, cardWidth/2, 260, 0.5, 0.5, cardWidth-160, 1.6, gg.AlignCenter)

	dc.SetHexColor("#7c5cff")
	dc.DrawStringAnchored("#цели #прогресс", cardWidth/2, cardHeight-60, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
