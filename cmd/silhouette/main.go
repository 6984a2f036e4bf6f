package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/submersibletoaster/silhouette"
	"github.com/submersibletoaster/silhouette/glyph"
	"github.com/submersibletoaster/silhouette/match"
	"github.com/submersibletoaster/silhouette/palette"
)

const version = "1.0.0"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "silhouette"
	app.Usage = "Render images as ANSI, HTML or neofetch text art"
	app.Version = version
	app.ArgsUsage = "[FILE|PATTERN...]"

	app.Flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "input image files or glob patterns (*, **/, ?, [...], [!...], {a,b})",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file, stdout when empty, zstd compressed when ending in .zst",
		},
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "output format: text, html or neofetch (html when the output ends in .html)",
		},
		&cli.BoolFlag{
			Name:    "web",
			Aliases: []string{"w"},
			Usage:   "shorthand for --encoding html",
		},
		&cli.IntFlag{
			Name:    "palette",
			Aliases: []string{"p"},
			EnvVars: []string{"SILHOUETTE_PALETTE"},
			Value:   int(palette.Extended240),
			Usage:   "color set: 8, 16, 240 (256 color palette without the 16 standard colors) or 256",
		},
		&cli.StringFlag{
			Name:  "palette-file",
			Usage: "JSON array of 256 #RRGGBB colors to use instead of the built-in palette",
		},
		&cli.IntFlag{
			Name:    "colors",
			Aliases: []string{"c"},
			Usage:   "maximum number of colors (default: 255, 6 for neofetch)",
		},
		&cli.Float64Flag{
			Name:    "font-size",
			Aliases: []string{"f"},
			Value:   12,
			Usage:   "terminal or browser font size in points",
		},
		&cli.Float64Flag{
			Name:    "line-height",
			Aliases: []string{"l"},
			Value:   1.2,
			Usage:   "terminal or browser line height relative to font size",
		},
		&cli.Float64Flag{
			Name:    "scale",
			Aliases: []string{"s"},
			Value:   1,
			Usage:   "input image scaling factor",
		},
		&cli.Float64Flag{
			Name:    "darkness",
			Aliases: []string{"d"},
			Value:   palette.DefaultDarkness,
			Usage:   "CIE L* below which a pixel is background",
		},
		&cli.IntFlag{
			Name:    "threads",
			Aliases: []string{"t"},
			EnvVars: []string{"SILHOUETTE_THREADS"},
			Usage:   "worker count (default: number of logical processors)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "give up on an image when workers take longer than this, 0 waits forever",
		},
		&cli.BoolFlag{
			Name:    "uncolored",
			Aliases: []string{"u"},
			Usage:   "generate plain, unstyled text",
		},
		&cli.StringFlag{
			Name:  "glyphs",
			Usage: "PNG strip of glyph cells, white on black, to use instead of the built-in font",
		},
		&cli.StringFlag{
			Name:  "font",
			Usage: "TrueType font to render glyphs from instead of the built-in font",
		},
		&cli.StringFlag{
			Name:  "chars",
			Value: glyph.Printable,
			Usage: "characters of the --glyphs strip or --font, in order",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = convert
	return app
}

func configure(c *cli.Context) (silhouette.Config, error) {
	cfg := silhouette.DefaultConfig()
	cfg.FontSize = c.Float64("font-size")
	cfg.LineHeight = c.Float64("line-height")
	cfg.Scale = c.Float64("scale")
	cfg.Darkness = c.Float64("darkness")
	cfg.Color = !c.Bool("uncolored")
	cfg.Timeout = c.Duration("timeout")
	if c.IsSet("threads") {
		cfg.Workers = c.Int("threads")
	}

	output := strings.TrimSuffix(strings.ToLower(c.String("output")), ".zst")
	switch {
	case c.IsSet("encoding"):
		f, err := match.ParseFormat(c.String("encoding"))
		if err != nil {
			return cfg, err
		}
		cfg.Format = f
	case c.Bool("web"), strings.HasSuffix(output, ".html"), strings.HasSuffix(output, ".htm"):
		cfg.Format = match.HTML
	}

	cfg.Palette = palette.Subset(c.Int("palette"))
	if cfg.Format == match.Neofetch && !c.IsSet("palette") {
		cfg.Palette = palette.Standard16
	}
	cfg.MaxColors = cfg.Format.MaxColors()
	if c.IsSet("colors") {
		cfg.MaxColors = c.Int("colors")
	}
	return cfg, cfg.Validate()
}

func convert(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := configure(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	patterns := append(c.StringSlice("input"), c.Args().Slice()...)
	if len(patterns) == 0 {
		cli.ShowAppHelpAndExit(c, 1)
	}
	files, err := resolve(patterns)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(files) == 0 {
		return cli.Exit("input image files not found", 1)
	}

	atlas, err := loadAtlas(c.String("glyphs"), c.String("font"), c.String("chars"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	pal, err := loadPalette(c.String("palette-file"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	conv, err := silhouette.NewConverter(atlas, pal, cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer conv.Close()

	var sb strings.Builder
	if cfg.Format == match.HTML {
		sb.WriteString(htmlHeader(title(files[0]), cfg.FontSize, cfg.LineHeight, time.Now()))
	}

	step := func() {}
	if len(files) > 1 && term.IsTerminal(int(os.Stderr.Fd())) {
		bar := pb.StartNew(len(files))
		defer bar.Finish()
		step = func() { bar.Increment() }
	}

	for _, name := range files {
		px, err := decode(name)
		if err != nil {
			log.Warnf("skipping %s: %v", name, err)
			step()
			continue
		}
		res, err := conv.ConvertPixels(c.Context, px)
		if err != nil {
			return cli.Exit(err, 1)
		}
		log.Infof("%s: %d pixels matched", name, res.Matched)
		if cfg.Format == match.HTML {
			sb.WriteString("<pre>\n" + res.Text + "</pre>\n")
		} else {
			sb.WriteString(res.Text)
		}
		step()
	}

	if cfg.Format == match.HTML {
		sb.WriteString(htmlFooter)
	}
	if err := write(c.App.Writer, c.String("output"), sb.String()); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func loadAtlas(strip, ttf, chars string) (*glyph.Atlas, error) {
	switch {
	case strip != "":
		return glyph.Load(strip, chars)
	case ttf != "":
		return glyph.LoadTTF(ttf, silhouette.AtlasPointSize, chars)
	}
	return glyph.Default()
}

func loadPalette(name string) (*palette.Palette, error) {
	if name == "" {
		return palette.Default()
	}
	return palette.Load(name)
}

func title(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
