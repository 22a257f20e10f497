package timechart

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"go.jacobcolvin.com/timeprofiles/timeprofile"
)

// oversample is the horizontal pixel resolution per terminal cell. Bars are
// drawn at this resolution and scaled down, so span edges that fall inside a
// cell shade it instead of snapping to a boundary.
const oversample = 4

// rowPixels is the bar height in pixels. Each terminal cell carries two
// vertical pixels via the "▀" half-block, so one row is one text line.
const rowPixels = 2

// palette cycles per timeline row.
var palette = []color.RGBA{
	{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
	{R: 0xf2, G: 0x8e, B: 0x2b, A: 0xff},
	{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
	{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
	{R: 0xb0, G: 0x7a, B: 0xa1, A: 0xff},
	{R: 0xed, G: 0xc9, B: 0x48, A: 0xff},
	{R: 0x76, G: 0xb7, B: 0xb2, A: 0xff},
	{R: 0xff, G: 0x9d, B: 0xa7, A: 0xff},
}

// Chart renders the profiler's activity timeline as ANSI truecolor
// half-block text, one labeled line per operation plus a time-axis footer.
// It returns [ErrNoProfiles] when nothing has been recorded.
func Chart(p *timeprofile.Profiler, opts ...Option) (string, error) {
	cfg := newConfig(opts)

	rows, win, err := timeline(p, cfg)
	if err != nil {
		return "", err
	}

	labels := make([]string, len(rows))
	labelWidth := 0

	for i, row := range rows {
		labels[i] = row.Name
		labelWidth = max(labelWidth, len(row.Name))
	}

	img := drawRows(rows, cfg.width)

	var sb strings.Builder

	for i := range rows {
		fmt.Fprintf(&sb, "%-*s ", labelWidth, labels[i])
		renderRow(&sb, img, i, cfg.width)
		sb.WriteByte('\n')
	}

	// Axis footer in seconds relative to the first recorded start.
	axis := fmt.Sprintf("%.2fs%*s", win.low, cfg.width-len(fmt.Sprintf("%.2fs", win.low)), fmt.Sprintf("%.2fs", win.high))
	fmt.Fprintf(&sb, "%-*s %s\n", labelWidth, "", axis)

	return sb.String(), nil
}

// drawRows paints every row's spans into an oversampled RGBA image and
// scales it down to the target cell width.
func drawRows(rows []TimelineRow, cols int) *image.RGBA {
	wide := image.NewRGBA(image.Rect(0, 0, cols*oversample, len(rows)*rowPixels))

	for i, row := range rows {
		c := palette[i%len(palette)]

		for _, span := range row.Spans {
			x0 := int(math.Round(span.Start * float64(cols*oversample)))
			x1 := int(math.Round(span.End * float64(cols*oversample)))

			// A zero-duration call still gets a visible tick.
			if x1 == x0 {
				x1 = x0 + 1
			}

			x0 = max(x0, 0)
			x1 = min(x1, cols*oversample)

			for x := x0; x < x1; x++ {
				wide.SetRGBA(x, i*rowPixels, c)
				wide.SetRGBA(x, i*rowPixels+1, c)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, len(rows)*rowPixels))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), wide, wide.Bounds(), draw.Src, nil)

	return dst
}

// renderRow writes one timeline row as half-block cells: the row's top pixel
// is the foreground and the bottom pixel the background of a "▀" character.
func renderRow(sb *strings.Builder, img *image.RGBA, row, cols int) {
	topY := row * rowPixels
	botY := topY + 1

	for x := range cols {
		top := img.RGBAAt(x, topY)
		bot := img.RGBAAt(x, botY)

		fmt.Fprintf(sb, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bot.R, bot.G, bot.B)
	}

	sb.WriteString("\033[0m")
}
