package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NodeType is the structural type of a node in the host document.
type NodeType string

const (
	NodeRectangle NodeType = "RECTANGLE"
	NodeEllipse   NodeType = "ELLIPSE"
	NodePolygon   NodeType = "POLYGON"
	NodeStar      NodeType = "STAR"
	NodeLine      NodeType = "LINE"
	NodeBooleanOp NodeType = "BOOLEAN_OPERATION"
	NodeFrame     NodeType = "FRAME"
	NodeVector    NodeType = "VECTOR"
	NodeGroup     NodeType = "GROUP"
	NodeText      NodeType = "TEXT"
	NodeComponent NodeType = "COMPONENT"
	NodeInstance  NodeType = "INSTANCE"
)

// Paint types.
const (
	PaintSolid = "SOLID"
	PaintImage = "IMAGE"
)

// Effect types.
const (
	EffectDropShadow     = "DROP_SHADOW"
	EffectInnerShadow    = "INNER_SHADOW"
	EffectLayerBlur      = "LAYER_BLUR"
	EffectBackgroundBlur = "BACKGROUND_BLUR"
)

// MixedValue is how exported documents spell the host's "mixed" sentinel.
const MixedValue = "mixed"

// Node is one entry in the host document's scene tree. The lint engine only
// reads it.
type Node struct {
	ID          string   `json:"id"                    yaml:"id"`
	Name        string   `json:"name"                  yaml:"name"`
	Type        NodeType `json:"type"                  yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Key         string   `json:"key,omitempty"         yaml:"key,omitempty"`

	// Children is nil for leaves. An empty, non-nil slice marks a container
	// without children.
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	Fills         []Paint  `json:"fills,omitempty"         yaml:"fills,omitempty"`
	FillStyleID   string   `json:"fillStyleId,omitempty"   yaml:"fillStyleId,omitempty"`
	Strokes       []Paint  `json:"strokes,omitempty"       yaml:"strokes,omitempty"`
	StrokeStyleID string   `json:"strokeStyleId,omitempty" yaml:"strokeStyleId,omitempty"`
	StrokeWeight  float64  `json:"strokeWeight,omitempty"  yaml:"strokeWeight,omitempty"`
	StrokeAlign   string   `json:"strokeAlign,omitempty"   yaml:"strokeAlign,omitempty"`
	Effects       []Effect `json:"effects,omitempty"       yaml:"effects,omitempty"`
	EffectStyleID string   `json:"effectStyleId,omitempty" yaml:"effectStyleId,omitempty"`

	CornerRadius      CornerRadius `json:"cornerRadius"                yaml:"cornerRadius"`
	TopLeftRadius     float64      `json:"topLeftRadius,omitempty"     yaml:"topLeftRadius,omitempty"`
	TopRightRadius    float64      `json:"topRightRadius,omitempty"    yaml:"topRightRadius,omitempty"`
	BottomLeftRadius  float64      `json:"bottomLeftRadius,omitempty"  yaml:"bottomLeftRadius,omitempty"`
	BottomRightRadius float64      `json:"bottomRightRadius,omitempty" yaml:"bottomRightRadius,omitempty"`

	TextStyleID string     `json:"textStyleId,omitempty" yaml:"textStyleId,omitempty"`
	FontName    FontName   `json:"fontName"              yaml:"fontName,omitempty"`
	FontSize    float64    `json:"fontSize,omitempty"    yaml:"fontSize,omitempty"`
	LineHeight  LineHeight `json:"lineHeight"            yaml:"lineHeight,omitempty"`

	// Remote reports whether a component comes from a shared library.
	Remote bool `json:"remote,omitempty" yaml:"remote,omitempty"`
}

// HasChildren reports whether the node carries a children list at all.
func (n *Node) HasChildren() bool { return n.Children != nil }

// IsOpaque reports whether traversal must stop at this node. Instances are
// owned by their source component and are never expanded.
func (n *Node) IsOpaque() bool { return n.Type == NodeInstance }

// Color is a normalized (0..1 per channel) color with optional alpha.
type Color struct {
	R float64  `json:"r"           yaml:"r"`
	G float64  `json:"g"           yaml:"g"`
	B float64  `json:"b"           yaml:"b"`
	A *float64 `json:"a,omitempty" yaml:"a,omitempty"`
}

// ColorStop is one stop of a gradient paint.
type ColorStop struct {
	Position float64 `json:"position" yaml:"position"`
	Color    Color   `json:"color"    yaml:"color"`
}

// Paint is one fill or stroke entry: solid, image, or any gradient.
type Paint struct {
	Type          string      `json:"type"                    yaml:"type"`
	Color         Color       `json:"color"                   yaml:"color,omitempty"`
	ImageHash     string      `json:"imageHash,omitempty"     yaml:"imageHash,omitempty"`
	GradientStops []ColorStop `json:"gradientStops,omitempty" yaml:"gradientStops,omitempty"`
}

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Effect is a shadow or blur. Blurs carry no color.
type Effect struct {
	Type    string  `json:"type"              yaml:"type"`
	Radius  float64 `json:"radius"            yaml:"radius"`
	Color   *Color  `json:"color,omitempty"   yaml:"color,omitempty"`
	Offset  Vector  `json:"offset"            yaml:"offset,omitempty"`
	Visible bool    `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// FontName identifies a font family and style.
type FontName struct {
	Family string `json:"family" yaml:"family"`
	Style  string `json:"style"  yaml:"style"`
}

// LineHeight is a text line height. Value is absent for AUTO.
type LineHeight struct {
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"  yaml:"unit,omitempty"`
}

// CornerRadius is either a single uniform radius or the mixed sentinel, in
// which case the per-corner fields on Node hold the values.
type CornerRadius struct {
	Mixed bool
	Value float64
}

// Uniform returns a uniform corner radius.
func Uniform(v float64) CornerRadius { return CornerRadius{Value: v} }

// Mixed returns the mixed-corners sentinel.
func Mixed() CornerRadius { return CornerRadius{Mixed: true} }

func (c CornerRadius) MarshalJSON() ([]byte, error) {
	if c.Mixed {
		return json.Marshal(MixedValue)
	}
	return json.Marshal(c.Value)
}

func (c *CornerRadius) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return c.parseSentinel(s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("cornerRadius must be a number or %q: %w", MixedValue, err)
	}
	*c = Uniform(v)
	return nil
}

func (c CornerRadius) MarshalYAML() (interface{}, error) {
	if c.Mixed {
		return MixedValue, nil
	}
	return c.Value, nil
}

func (c *CornerRadius) UnmarshalYAML(value *yaml.Node) error {
	var v float64
	if err := value.Decode(&v); err == nil {
		*c = Uniform(v)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("cornerRadius must be a number or %q", MixedValue)
	}
	return c.parseSentinel(s)
}

func (c *CornerRadius) parseSentinel(s string) error {
	if !strings.EqualFold(strings.TrimSpace(s), MixedValue) {
		return fmt.Errorf("unknown cornerRadius %q (expected a number or %q)", s, MixedValue)
	}
	*c = Mixed()
	return nil
}
