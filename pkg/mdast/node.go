// Package mdast defines the markdown syntax tree consumed by the document
// converter. The tree mirrors the node vocabulary of unified/textlint style
// parsers so block classification and inline walking can be expressed
// independently of the parser backing it.
package mdast

// NodeType names a node kind. Values double as keys into the inline and block
// style tables, so they must stay stable.
type NodeType string

// Block node types.
const (
	TypeDocument       NodeType = "Document"
	TypeParagraph      NodeType = "Paragraph"
	TypeHeader         NodeType = "Header"
	TypeList           NodeType = "List"
	TypeListItem       NodeType = "ListItem"
	TypeCodeBlock      NodeType = "CodeBlock"
	TypeBlockQuote     NodeType = "BlockQuote"
	TypeTable          NodeType = "Table"
	TypeTableRow       NodeType = "TableRow"
	TypeTableCell      NodeType = "TableCell"
	TypeHorizontalRule NodeType = "HorizontalRule"
)

// Inline node types.
const (
	TypeStr      NodeType = "Str"
	TypeStrong   NodeType = "Strong"
	TypeEmphasis NodeType = "Emphasis"
	TypeDelete   NodeType = "Delete"
	TypeCode     NodeType = "Code"
	TypeLink     NodeType = "Link"
	TypeImage    NodeType = "Image"
	TypeBreak    NodeType = "Break"
)

// TypeHTML is shared by block level HTML and raw inline HTML.
const TypeHTML NodeType = "Html"

// Node is a single syntax tree element. Only the fields relevant to the node
// type are populated.
type Node struct {
	Type     NodeType
	Children []*Node
	// Value holds literal text for leaves (Str, Code, Html, CodeBlock).
	Value string
	// Raw is the markdown source the node was parsed from.
	Raw string
	// URL is the destination of Link and Image nodes.
	URL string
	// Alt is the alternative text of Image nodes.
	Alt string
	// Depth is the heading level of Header nodes.
	Depth int
	// Ordered reports whether a List node is numbered.
	Ordered bool
}

// HasValue reports whether the node carries literal text.
func (n *Node) HasValue() bool {
	return n != nil && n.Value != ""
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Append adds children and returns the receiver for chaining in tests and
// adapters.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Text builds a Str leaf.
func Text(value string) *Node {
	return &Node{Type: TypeStr, Value: value, Raw: value}
}

// Container builds a node of the given type holding children.
func Container(t NodeType, children ...*Node) *Node {
	return (&Node{Type: t}).Append(children...)
}

var parentTypes = map[NodeType]bool{
	TypeDocument:   true,
	TypeParagraph:  true,
	TypeHeader:     true,
	TypeList:       true,
	TypeListItem:   true,
	TypeBlockQuote: true,
	TypeTable:      true,
	TypeTableRow:   true,
	TypeTableCell:  true,
	TypeStrong:     true,
	TypeEmphasis:   true,
	TypeDelete:     true,
	TypeLink:       true,
}

// IsParent reports whether the node is a container. Containers are walked
// even when they hold no children; leaves contribute their Value instead.
func (n *Node) IsParent() bool {
	if n == nil {
		return false
	}
	return n.Children != nil || parentTypes[n.Type]
}
