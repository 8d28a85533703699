package export

import (
	"fmt"
	"strings"
)

// Page wraps svg in a standalone HTML document for the browser to render.
// The raster page is exactly the size of the drawing; the print page fits
// the drawing on one A4 landscape sheet keeping its aspect ratio.
func Page(svg []byte, width, height float64, pdf bool) string {
	var htmlBuilder strings.Builder

	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Roadmap</title>\n")
	htmlBuilder.WriteString("<style>\n")
	if pdf {
		htmlBuilder.WriteString("@page { size: A4 landscape; margin: 0; }\n")
		htmlBuilder.WriteString("html, body { margin: 0; padding: 0; width: 100%; height: 100%; }\n")
		htmlBuilder.WriteString("body { display: flex; align-items: center; justify-content: center; background: #fff; }\n")
		htmlBuilder.WriteString("svg { width: 100%; height: 100vh; }\n")
	} else {
		htmlBuilder.WriteString("html, body { margin: 0; padding: 0; background: transparent; }\n")
		fmt.Fprintf(&htmlBuilder, "svg { display: block; width: %.0fpx; height: %.0fpx; }\n", width, height)
	}
	htmlBuilder.WriteString("</style>\n</head>\n<body>\n")
	htmlBuilder.Write(svg)
	htmlBuilder.WriteString("\n</body>\n</html>")
	return htmlBuilder.String()
}
