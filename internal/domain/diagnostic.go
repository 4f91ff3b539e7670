package domain

// Category names the visual property a diagnostic is about.
type Category string

const (
	CategoryFill      Category = "fill"
	CategoryStroke    Category = "stroke"
	CategoryEffects   Category = "effects"
	CategoryText      Category = "text"
	CategoryComponent Category = "component"
	CategoryRadius    Category = "radius"
)

// ValidCategories enumerates all diagnostic categories.
var ValidCategories = []Category{
	CategoryFill, CategoryStroke, CategoryEffects,
	CategoryText, CategoryComponent, CategoryRadius,
}

// IsValidCategory reports whether name is a known category.
func IsValidCategory(name string) bool {
	for _, c := range ValidCategories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// Diagnostic is one lint violation for one node and one property category.
type Diagnostic struct {
	NodeID       string   `json:"nodeId"`
	Category     Category `json:"category"`
	Message      string   `json:"message"`
	CurrentValue string   `json:"currentValue,omitempty"`
}

// IgnoreKey is the identifier the presentation layer stores in the ignored
// errors set for this diagnostic.
func (d Diagnostic) IgnoreKey() string {
	return d.NodeID + ":" + string(d.Category)
}

// FlatRecord is the lint result for a single node. ChildIDs is nil for nodes
// without a children list.
type FlatRecord struct {
	NodeID      string       `json:"nodeId"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	ChildIDs    []string     `json:"childIds,omitempty"`
}

// SerializedNode is the nested display projection of a node.
type SerializedNode struct {
	Name     string           `json:"name"`
	Type     NodeType         `json:"type"`
	ID       string           `json:"id"`
	Children []SerializedNode `json:"children,omitempty"`
}

// LayerData is the restricted single-node snapshot returned when the
// presentation layer focuses a layer.
type LayerData struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Fills       []LayerPaint `json:"fills,omitempty"`
	Key         string       `json:"key,omitempty"`
	Type        NodeType     `json:"type"`
	Remote      *bool        `json:"remote,omitempty"`
	FontName    *FontName    `json:"fontName,omitempty"`
	FontSize    float64      `json:"fontSize,omitempty"`
}

// LayerPaint keeps only the paint type of a fill.
type LayerPaint struct {
	Type string `json:"type"`
}

// NewLayerData projects node onto the LayerData field set.
func NewLayerData(node *Node) LayerData {
	ld := LayerData{
		ID:          node.ID,
		Name:        node.Name,
		Description: node.Description,
		Key:         node.Key,
		Type:        node.Type,
		FontSize:    node.FontSize,
	}
	for _, f := range node.Fills {
		ld.Fills = append(ld.Fills, LayerPaint{Type: f.Type})
	}
	if node.Type == NodeComponent {
		remote := node.Remote
		ld.Remote = &remote
	}
	if node.Type == NodeText {
		fn := node.FontName
		ld.FontName = &fn
	}
	return ld
}
