package match

import (
	"fmt"
	"strconv"
	"strings"

	gcolor "github.com/gookit/color"

	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/palette"
)

// Format is an output encoding.
type Format int

const (
	// Text is plain text, colored with ANSI SGR escapes.
	Text Format = iota
	// HTML is text with inline styled spans, meant to sit inside a <pre>.
	HTML
	// Neofetch is neofetch's custom ascii art format: ${cN} color variables
	// and a leading "colors" line.
	Neofetch
)

// NeofetchColors is the number of color variables neofetch understands.
const NeofetchColors = 6

var formatNames = map[string]Format{"text": Text, "html": HTML, "neofetch": Neofetch}

// ParseFormat accepts "text", "html" or "neofetch".
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown output format %q", s)
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// MaxColors is the largest color count the format can express.
func (f Format) MaxColors() int {
	if f == Neofetch {
		return NeofetchColors
	}
	return palette.Size - 1
}

// Style is everything about the output that is not geometry.
type Style struct {
	Format   Format
	Color    bool
	Palette  *palette.Palette // HTML colors
	Wide     bool             // 256 color escapes instead of 8/16 color ones
	Dominant []uint8          // neofetch variable order
}

// emitter accumulates the text of one rendering.
type emitter struct {
	style Style
	sb    strings.Builder
	last  int
	span  bool
	vars  map[uint8]int
	order []uint8
}

func newEmitter(s Style) *emitter {
	e := &emitter{style: s, last: -1}
	if s.Format == Neofetch {
		e.vars = make(map[uint8]int, NeofetchColors)
		for _, idx := range s.Dominant {
			if len(e.order) == NeofetchColors {
				break
			}
			e.variable(idx)
		}
	}
	return e
}

// variable returns the neofetch variable number for idx. Past the sixth
// distinct color every new index shares the last variable.
func (e *emitter) variable(idx uint8) int {
	if n, ok := e.vars[idx]; ok {
		return n
	}
	if len(e.order) == NeofetchColors {
		return NeofetchColors
	}
	e.order = append(e.order, idx)
	e.vars[idx] = len(e.order)
	return len(e.order)
}

func (e *emitter) color(idx uint8) {
	if e.last == int(idx) {
		return
	}
	e.last = int(idx)
	switch e.style.Format {
	case HTML:
		if e.span {
			e.sb.WriteString("</span>")
		}
		fmt.Fprintf(&e.sb, `<span style="color:#%s;">`, e.style.Palette.Hex(idx))
		e.span = true
	case Neofetch:
		fmt.Fprintf(&e.sb, "${c%d}", e.variable(idx))
	default:
		e.sb.WriteString(sgr(idx, e.style.Wide))
	}
}

// sgr is the foreground escape for a palette index.
func sgr(idx uint8, wide bool) string {
	var code string
	switch {
	case wide:
		code = gcolor.C256(idx).String()
	case idx < 8:
		code = (gcolor.FgBlack + gcolor.Color(idx)).String()
	default:
		code = gcolor.OpBold.String() + ";" + (gcolor.FgBlack + gcolor.Color(idx-8)).String()
	}
	return fmt.Sprintf(gcolor.SettingTpl, code)
}

func (e *emitter) glyph(g *glyph.Glyph) {
	switch e.style.Format {
	case HTML:
		e.sb.WriteString(g.HTML)
	case Neofetch:
		e.sb.WriteString(g.Neofetch)
	default:
		e.sb.WriteRune(g.Char)
	}
}

func (e *emitter) space() {
	e.sb.WriteByte(' ')
}

func (e *emitter) endLine() {
	e.sb.WriteByte('\n')
}

func (e *emitter) finish() string {
	if !e.style.Color {
		return e.sb.String()
	}
	switch e.style.Format {
	case HTML:
		if e.span {
			e.sb.WriteString("</span>")
		}
	case Neofetch:
		header := make([]string, len(e.order))
		for i, idx := range e.order {
			header[i] = strconv.Itoa(int(idx))
		}
		return "colors " + strings.Join(header, " ") + "\n" + e.sb.String()
	default:
		e.sb.WriteString(gcolor.ResetSet)
	}
	return e.sb.String()
}
