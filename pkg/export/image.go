package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/iwvelando/loan-calculator/pkg/format"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imageWidth  = 800
	imageMargin = 24
	lineHeight  = 18
)

var (
	titleColor  = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	accentColor = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	mutedColor  = color.RGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	stripeColor = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
)

// WritePNG renders the result card (title, identity line, summary, schedule
// table and footer) as an 800px wide PNG. Text is drawn with a fixed ASCII
// font, so Vietnamese diacritics are folded and amounts carry "VND".
func WritePNG(w io.Writer, d Document) error {
	if d.Result == nil {
		return ErrNoResult
	}

	summary := d.summaryWith(format.VNDCode)
	lines := 6 + len(summary) + 1 + len(d.Result.Periods) + 2
	height := 2*imageMargin + lines*lineHeight

	img := image.NewRGBA(image.Rect(0, 0, imageWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	c := &canvas{img: img, y: imageMargin}

	c.text(format.ASCII(Title), titleColor)
	c.text(format.ASCII(d.IdentityLine()), accentColor)
	c.skip()
	for _, line := range summary {
		c.text(fmt.Sprintf("%-22s %s", format.ASCII(line.Label), format.ASCII(line.Value)), titleColor)
	}
	c.skip()

	c.band(accentColor)
	c.text(tableLine(asciiHeader()), color.White)
	for i, p := range d.Result.Periods {
		if i%2 == 1 {
			c.band(stripeColor)
		}
		c.text(tableLine([]string{
			strconv.Itoa(p.Index),
			format.Number(p.StartingBalance),
			format.Number(p.Principal),
			format.Number(p.Interest),
			format.Number(p.Payment),
			format.Number(p.EndingBalance),
		}), titleColor)
	}
	c.skip()
	c.text(format.ASCII(Footer), mutedColor)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

func asciiHeader() []string {
	cols := make([]string, len(TableHeader))
	for i, h := range TableHeader {
		cols[i] = format.ASCII(h)
	}
	return cols
}

// tableLine right-aligns the period column in 5 characters and each amount
// in 19, which fits 100 glyphs of the 7px font inside the margins.
func tableLine(cols []string) string {
	return fmt.Sprintf("%5s%19s%19s%19s%19s%19s", cols[0], cols[1], cols[2], cols[3], cols[4], cols[5])
}

type canvas struct {
	img *image.RGBA
	y   int
}

func (c *canvas) skip() {
	c.y += lineHeight
}

func (c *canvas) text(s string, col color.Color) {
	c.y += lineHeight
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(imageMargin, c.y),
	}
	drawer.DrawString(s)
}

// band fills the background of the next text line.
func (c *canvas) band(col color.Color) {
	rect := image.Rect(imageMargin-4, c.y+lineHeight-13, imageWidth-imageMargin+4, c.y+lineHeight+5)
	draw.Draw(c.img, rect, image.NewUniform(col), image.Point{}, draw.Src)
}
