package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

const htmlFooter = `</body>
</html>`

func htmlHeader(title string, fontSize, lineHeight float64, now time.Time) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="theme-color" content="#0C0C0C">
    <meta name="date" content="%s">
    <link href="https://fonts.cdnfonts.com/css/cascadia-code" rel="stylesheet">
    <title>%s</title>
    <style>
      * {
        font-variant-ligatures: none;
        font-feature-settings: 'liga' 0, 'clig' 0;
      }
      html, body {
        background: #0C0C0C;
        color: #CCCCCC;
        text-align: center;
        margin: 19px 0;
      }
      pre {
        font-family: 'Cascadia Code', sans-serif;
        font-size: %gpt;
        line-height: %g;
        margin: 10px 0;
      }
    </style>
</head>
<body>
`, now.UTC().Format(time.RFC3339), html.EscapeString(title), fontSize, lineHeight)
}

// write sends text to stdout, or to the named file after creating its
// directory. Names ending in .zst are zstd compressed.
func write(stdout io.Writer, name, text string) error {
	if name == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data := []byte(text)
	if strings.HasSuffix(strings.ToLower(name), ".zst") {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return nil
}
