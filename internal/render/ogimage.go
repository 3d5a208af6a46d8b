package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// Fixed canvas for link-unfurler preview cards.
const (
	ImageWidth  = 1200
	ImageHeight = 630
)

const (
	accentColor  = "#09BE82"
	canvasColor  = "#f8fafc"
	cardColor    = "#ffffff"
	headingColor = "#0f172a"
	bodyColor    = "#334155"
	mutedColor   = "#64748b"
	faintColor   = "#94a3b8"
	badgeColor   = "#f1f5f9"
	badgeText    = "#475569"
	brandFooter  = "vine-lingo.vercel.app"
)

type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		var reg, bold, italic *truetype.Font
		if reg, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		if bold, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			return
		}
		if italic, fontsErr = truetype.Parse(goitalic.TTF); fontsErr != nil {
			return
		}
		fonts = fontSet{regular: reg, bold: bold, italic: italic}
	})
	return fonts, fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// RenderTermCard draws the branded 1200x630 preview card for a term: name,
// category badge, wrapped definition, and the example if present.
func RenderTermCard(term *model.Term) ([]byte, error) {
	start := time.Now()
	defer func() {
		prometheus.ImageRenderDuration.Observe(time.Since(start).Seconds())
	}()

	fs, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	dc := gg.NewContext(ImageWidth, ImageHeight)
	drawCardShell(dc, fs)

	const (
		left  = 160.0
		width = 880.0
	)
	y := 200.0

	// Term name
	dc.SetFontFace(face(fs.bold, 64))
	dc.SetHexColor(headingColor)
	name := truncate(term.Term, 28)
	dc.DrawString(name, left, y)
	y += 44

	// Category badge
	dc.SetFontFace(face(fs.regular, 22))
	badge := string(term.Category)
	bw, bh := dc.MeasureString(badge)
	dc.SetHexColor(badgeColor)
	dc.DrawRoundedRectangle(left, y-bh, bw+40, bh+22, (bh+22)/2)
	dc.Fill()
	dc.SetHexColor(badgeText)
	dc.DrawString(badge, left+20, y+8)
	y += 70

	// Definition, wrapped and truncated so the card never overflows
	dc.SetFontFace(face(fs.regular, 30))
	dc.SetHexColor(bodyColor)
	definition := truncate(term.Definition, 220)
	dc.DrawStringWrapped(definition, left, y, 0, 0, width, 1.5, gg.AlignLeft)
	y += wrappedHeight(dc, definition, width, 1.5) + 40

	// Example, italic with a leading quote bar
	if term.Example != "" && y < ImageHeight-140 {
		example := fmt.Sprintf("“%s”", truncate(term.Example, 120))
		dc.SetFontFace(face(fs.italic, 24))
		h := wrappedHeight(dc, example, width-34, 1.4)
		dc.SetHexColor("#cbd5e1")
		dc.DrawRectangle(left, y-24, 4, h)
		dc.Fill()
		dc.SetHexColor(mutedColor)
		dc.DrawStringWrapped(example, left+34, y, 0, 0, width-34, 1.4, gg.AlignLeft)
	}

	prometheus.ImageRendersCounter.WithLabelValues("term").Inc()
	return encodePNG(dc)
}

// RenderDefaultCard draws the site-level branding card used when no term is
// identified (or the identifier resolves to nothing). The image endpoint
// never 404s; this is its floor.
func RenderDefaultCard() ([]byte, error) {
	start := time.Now()
	defer func() {
		prometheus.ImageRenderDuration.Observe(time.Since(start).Seconds())
	}()

	fs, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	dc := gg.NewContext(ImageWidth, ImageHeight)
	drawCardShell(dc, fs)

	dc.SetFontFace(face(fs.bold, 88))
	dc.SetHexColor(headingColor)
	dc.DrawStringAnchored(siteName, ImageWidth/2, 300, 0.5, 0.5)

	dc.SetFontFace(face(fs.regular, 30))
	dc.SetHexColor(mutedColor)
	dc.DrawStringAnchored(strings.ToUpper(siteTagline), ImageWidth/2, 370, 0.5, 0.5)

	dc.SetFontFace(face(fs.regular, 26))
	dc.SetHexColor(faintColor)
	dc.DrawStringWrapped("Acronyms, queues, tiers, and slang from the Amazon Vine community.",
		ImageWidth/2, 440, 0.5, 0, 800, 1.5, gg.AlignCenter)

	prometheus.ImageRendersCounter.WithLabelValues("default").Inc()
	return encodePNG(dc)
}

// drawCardShell paints the shared background, white card, logo block, and
// footer branding.
func drawCardShell(dc *gg.Context, fs fontSet) {
	dc.SetHexColor(canvasColor)
	dc.Clear()

	// Card
	dc.SetHexColor(cardColor)
	dc.DrawRoundedRectangle(100, 40, 1000, 550, 32)
	dc.Fill()

	// Logo square with the accent "V"
	dc.SetHexColor(accentColor)
	dc.DrawRoundedRectangle(160, 80, 60, 60, 16)
	dc.Fill()
	dc.SetFontFace(face(fs.bold, 36))
	dc.SetHexColor(cardColor)
	dc.DrawStringAnchored("V", 190, 110, 0.5, 0.5)

	// Wordmark and tagline
	dc.SetFontFace(face(fs.bold, 26))
	dc.SetHexColor("#1e293b")
	dc.DrawString(siteName, 240, 102)
	dc.SetFontFace(face(fs.regular, 15))
	dc.SetHexColor(mutedColor)
	dc.DrawString(strings.ToUpper(siteTagline), 240, 128)

	// Footer
	dc.SetFontFace(face(fs.regular, 18))
	dc.SetHexColor(faintColor)
	dc.DrawStringAnchored(brandFooter, 1040, 550, 1, 0.5)
}

func wrappedHeight(dc *gg.Context, s string, width, lineSpacing float64) float64 {
	lines := dc.WordWrap(s, width)
	_, lh := dc.MeasureString("M")
	return float64(len(lines)) * lh * lineSpacing
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
