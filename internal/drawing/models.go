// Package drawing defines the backend-neutral drawing tree the roadmap is
// composed into, and the Canvas interface used to build it.
package drawing

import "github.com/buffos/go-roadmap/internal/textmetrics"

// Kind identifies a node's primitive.
type Kind string

const (
	KindGroup   Kind = "group"
	KindRect    Kind = "rect"
	KindLine    Kind = "line"
	KindPath    Kind = "path"    // open multi-point path
	KindPolygon Kind = "polygon" // closed, filled shape
	KindCircle  Kind = "circle"
	KindText    Kind = "text"
)

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FillStyle is how a sketched shape is filled.
type FillStyle string

const (
	FillNone  FillStyle = ""
	FillSolid FillStyle = "solid"
)

// DefaultBowing is the curvature a sketch backend applies when a style does
// not set its own.
const DefaultBowing = 1.0

// --- Style Structs ---

// Style is the paint and sketchiness of a primitive. Roughness and Bowing are
// part of the visual design and are carried verbatim to the backend.
type Style struct {
	Fill        string    `json:"fill,omitempty"`
	FillStyle   FillStyle `json:"fill_style,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"stroke_width,omitempty"`
	Roughness   float64   `json:"roughness"`          // line waviness
	Bowing      float64   `json:"bowing"`             // line curvature
	LineCap     string    `json:"line_cap,omitempty"` // "round" or empty
	Plain       bool      `json:"plain,omitempty"`    // exact geometry, no perturbation
}

// Sketch returns a sketched style with the default bowing.
func Sketch(stroke string, width, roughness float64) Style {
	return Style{Stroke: stroke, StrokeWidth: width, Roughness: roughness, Bowing: DefaultBowing}
}

// WithFill returns s filled solid with color.
func (s Style) WithFill(color string) Style {
	s.Fill = color
	s.FillStyle = FillSolid
	return s
}

// WithBowing returns s with the given bowing.
func (s Style) WithBowing(b float64) Style {
	s.Bowing = b
	return s
}

// PlainStroke returns an unperturbed stroke style.
func PlainStroke(stroke string, width float64) Style {
	return Style{Stroke: stroke, StrokeWidth: width, Plain: true}
}

// Align is the horizontal anchor of a text node.
type Align string

const (
	AlignStart  Align = "start"
	AlignMiddle Align = "middle"
	AlignEnd    Align = "end"
)

// Text is the content and typography of a text node. The node's X/Y is the
// anchor point on the baseline.
type Text struct {
	Content string             `json:"content"`
	Size    float64            `json:"size"`
	Weight  textmetrics.Weight `json:"weight"`
	Align   Align              `json:"align"`
	Fill    string             `json:"fill"`
	Opacity float64            `json:"opacity"`
	Rotate  *float64           `json:"rotate,omitempty"` // degrees about the anchor
}

// TextOpts are the optional parts of a text node; zero values take the
// defaults (14px, middle, #333, normal). A nil Opacity is fully opaque.
type TextOpts struct {
	Size    float64
	Align   Align
	Fill    string
	Weight  textmetrics.Weight
	Opacity *float64
	Rotate  *float64
}

// Rotation returns a pointer to deg, for TextOpts.Rotate.
func Rotation(deg float64) *float64 { return &deg }

// Alpha returns a pointer to v, for TextOpts.Opacity.
func Alpha(v float64) *float64 { return &v }

// --- Tree Structs ---

// Node is one primitive or group. Which geometry fields are used depends on
// Kind: rect uses X,Y,W,H,Rx; line uses X,Y,X2,Y2; circle uses X,Y,R; path
// and polygon use Points; text uses X,Y and Text.
type Node struct {
	Kind     Kind    `json:"kind"`
	ID       string  `json:"id,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	X2       float64 `json:"x2,omitempty"`
	Y2       float64 `json:"y2,omitempty"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	Rx       float64 `json:"rx,omitempty"`
	R        float64 `json:"r,omitempty"`
	Points   []Point `json:"points,omitempty"`
	Style    Style   `json:"style"`
	Text     *Text   `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// GridPattern is a square graph-paper pattern available to fills as
// url(#ID).
type GridPattern struct {
	ID          string  `json:"id"`
	Size        float64 `json:"size"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
}

// Tree is a complete drawing of fixed size.
type Tree struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Grid       *GridPattern `json:"grid,omitempty"`
	FontFamily string       `json:"font_family"`
	FontImport string       `json:"font_import,omitempty"` // CSS @import URL of the display font
	Nodes      []*Node      `json:"nodes"`
}
