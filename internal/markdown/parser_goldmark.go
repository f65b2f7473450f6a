package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-mdraft/pkg/interfaces"
	"github.com/goliatone/go-mdraft/pkg/mdast"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. The engine is built once; goldmark parsers are safe for concurrent
// use so a single instance can serve every conversion.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser constructs a parser with the requested extensions (GFM
// tables, strikethrough and linkify by default).
func NewGoldmarkParser(opts interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		engine: goldmark.New(goldmark.WithExtensions(collectExtensions(opts.Extensions)...)),
	}
}

// Parse converts one block of markdown into an mdast tree. The root Raw field
// holds the block source unchanged so indentation checks can inspect it.
func (p *GoldmarkParser) Parse(block string) (*mdast.Node, error) {
	source := []byte(block)
	doc := p.engine.Parser().Parse(text.NewReader(source))

	root := &mdast.Node{Type: mdast.TypeDocument, Raw: block, Children: []*mdast.Node{}}
	c := converter{source: source}
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		root.Append(c.node(child))
	}
	return root, nil
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
}

// KnownExtension reports whether name selects a supported extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}

// converter maps goldmark nodes onto the mdast vocabulary.
type converter struct {
	source []byte
}

func (c converter) node(n ast.Node) *mdast.Node {
	switch node := n.(type) {
	case *ast.Paragraph:
		return c.container(mdast.TypeParagraph, node, c.lines(node))
	case *ast.TextBlock:
		return c.container(mdast.TypeParagraph, node, c.lines(node))
	case *ast.Heading:
		out := c.container(mdast.TypeHeader, node, c.lines(node))
		out.Depth = node.Level
		return out
	case *ast.List:
		out := c.container(mdast.TypeList, node, "")
		out.Ordered = node.IsOrdered()
		return out
	case *ast.ListItem:
		return c.container(mdast.TypeListItem, node, "")
	case *ast.Blockquote:
		return c.container(mdast.TypeBlockQuote, node, "")
	case *ast.FencedCodeBlock:
		value := c.lines(node)
		return &mdast.Node{Type: mdast.TypeCodeBlock, Value: value, Raw: value}
	case *ast.CodeBlock:
		value := c.lines(node)
		return &mdast.Node{Type: mdast.TypeCodeBlock, Value: value, Raw: value}
	case *ast.ThematicBreak:
		raw := strings.TrimSpace(string(c.source))
		return &mdast.Node{Type: mdast.TypeHorizontalRule, Raw: raw}
	case *ast.HTMLBlock:
		value := c.htmlBlock(node)
		return &mdast.Node{Type: mdast.TypeHTML, Value: value, Raw: value}
	case *east.Table:
		return c.table(node)
	case *ast.Text:
		return c.text(node)
	case *ast.String:
		value := string(node.Value)
		return &mdast.Node{Type: mdast.TypeStr, Value: value, Raw: value}
	case *ast.Emphasis:
		t := mdast.TypeEmphasis
		if node.Level >= 2 {
			t = mdast.TypeStrong
		}
		return c.container(t, node, "")
	case *east.Strikethrough:
		return c.container(mdast.TypeDelete, node, "")
	case *ast.CodeSpan:
		value := c.plain(node)
		return &mdast.Node{Type: mdast.TypeCode, Value: value, Raw: value}
	case *ast.Link:
		out := c.container(mdast.TypeLink, node, "")
		out.URL = string(node.Destination)
		return out
	case *ast.AutoLink:
		label := string(node.Label(c.source))
		out := mdast.Container(mdast.TypeLink, mdast.Text(label))
		out.URL = string(node.URL(c.source))
		out.Raw = label
		return out
	case *ast.Image:
		return &mdast.Node{
			Type: mdast.TypeImage,
			URL:  string(node.Destination),
			Alt:  c.plain(node),
		}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			buf.Write(segment.Value(c.source))
		}
		value := buf.String()
		return &mdast.Node{Type: mdast.TypeHTML, Value: value, Raw: value}
	default:
		// Unknown kinds keep their children so text is not lost.
		if n.HasChildren() {
			return c.container(mdast.NodeType(n.Kind().String()), n, "")
		}
		return &mdast.Node{Type: mdast.NodeType(n.Kind().String())}
	}
}

func (c converter) container(t mdast.NodeType, n ast.Node, raw string) *mdast.Node {
	out := &mdast.Node{Type: t, Raw: raw, Children: []*mdast.Node{}}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out.Append(c.node(child))
	}
	return out
}

// text resolves escapes and entity references the way a renderer would, so
// Str values hold what the reader sees. Soft line breaks become newlines.
func (c converter) text(node *ast.Text) *mdast.Node {
	raw := node.Segment.Value(c.source)
	value := util.UnescapePunctuations(raw)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	out := string(value)
	if node.SoftLineBreak() || node.HardLineBreak() {
		out += "\n"
	}
	return &mdast.Node{Type: mdast.TypeStr, Value: out, Raw: string(raw)}
}

// table flattens goldmark's header/row split into uniform TableRow children.
func (c converter) table(node *east.Table) *mdast.Node {
	out := &mdast.Node{Type: mdast.TypeTable, Raw: strings.TrimSpace(string(c.source)), Children: []*mdast.Node{}}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
		default:
			continue
		}
		tr := &mdast.Node{Type: mdast.TypeTableRow, Children: []*mdast.Node{}}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if _, ok := cell.(*east.TableCell); !ok {
				continue
			}
			tr.Append(c.container(mdast.TypeTableCell, cell, ""))
		}
		out.Append(tr)
	}
	return out
}

// lines joins a block's source lines without the trailing newline.
func (c converter) lines(n ast.Node) string {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(c.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (c converter) htmlBlock(node *ast.HTMLBlock) string {
	value := c.lines(node)
	if node.HasClosure() {
		closure := node.ClosureLine.Value(c.source)
		if value != "" {
			value += "\n"
		}
		value += strings.TrimSuffix(string(closure), "\n")
	}
	return value
}

// plain concatenates the text beneath n, used for code spans and image alt
// text where markup is not meaningful.
func (c converter) plain(n ast.Node) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(c.source))
			if node.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		default:
			buf.WriteString(c.plain(child))
		}
	}
	return buf.String()
}
