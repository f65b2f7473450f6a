package convert

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-mdraft/internal/draft"
	"github.com/goliatone/go-mdraft/pkg/mdast"
)

var imageExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".svg":  {},
	".bmp":  {},
	".gif":  {},
	".tiff": {},
	".ico":  {},
}

// entityFactory issues dense keys into a document wide entity map.
type entityFactory struct {
	entities draft.EntityMap
}

func newEntityFactory(entities draft.EntityMap) *entityFactory {
	if entities == nil {
		entities = draft.EntityMap{}
	}
	return &entityFactory{entities: entities}
}

// add stores entity under the next key and returns a range for it.
func (f *entityFactory) add(entity draft.Entity, offset, length int) draft.EntityRange {
	key := f.entities.NextKey()
	f.entities[key] = entity
	return draft.EntityRange{Key: key, Offset: offset, Length: length}
}

func (f *entityFactory) link(target string, offset, length int) draft.EntityRange {
	return f.add(draft.Entity{
		Type:       draft.EntityLink,
		Mutability: draft.Mutable,
		Data:       draft.LinkData{URL: target},
	}, offset, length)
}

// media classifies an image node by its URL extension.
func (f *entityFactory) media(node *mdast.Node, offset int) draft.EntityRange {
	name, ext := parseFileName(node.URL)
	switch {
	case isImageExt(ext):
		return f.add(draft.Entity{
			Type:       draft.EntityImage,
			Mutability: draft.Immutable,
			Data:       draft.ImageData{URL: node.URL, Src: node.URL, FileName: node.Alt},
		}, offset, 1)
	case strings.EqualFold(ext, ".pdf"):
		return f.add(draft.Entity{
			Type:       draft.EntityPDF,
			Mutability: draft.Immutable,
			Data:       draft.FileData{Src: node.URL, Name: fallback(node.Alt, name+ext)},
		}, offset, 1)
	default:
		return f.add(draft.Entity{
			Type:       draft.EntityFile,
			Mutability: draft.Immutable,
			Data:       draft.FileData{Src: node.URL, Name: fallback(node.Alt, name+ext)},
		}, offset, 1)
	}
}

func (f *entityFactory) video(src string, offset int) draft.EntityRange {
	return f.add(draft.Entity{
		Type:       draft.EntityVideoEmbed,
		Mutability: draft.Immutable,
		Data:       draft.VideoData{Src: src},
	}, offset, 1)
}

// table builds the table payload from a Table node. Row 0 supplies the
// columns; later rows are keyed from zero.
func (f *entityFactory) table(node *mdast.Node) draft.EntityRange {
	data := draft.TableData{Rows: []draft.Row{}}
	for rowIndex, row := range node.Children {
		if rowIndex == 0 {
			data.Columns = make([]draft.Cell, 0, len(row.Children))
			for cellIndex, cell := range row.Children {
				data.Columns = append(data.Columns, draft.Cell{
					Key:   fmt.Sprintf("Column%d", cellIndex),
					Value: cellText(cell),
				})
			}
			continue
		}
		cells := make([]draft.Cell, 0, len(row.Children))
		for cellIndex, cell := range row.Children {
			cells = append(cells, draft.Cell{
				Key:   fmt.Sprintf("Row%dCell%d", rowIndex-1, cellIndex),
				Value: cellText(cell),
			})
		}
		data.Rows = append(data.Rows, draft.Row{
			Key:   fmt.Sprintf("Row%d", rowIndex-1),
			Value: cells,
		})
	}
	return f.add(draft.Entity{
		Type:       draft.EntityTable,
		Mutability: draft.Immutable,
		Data:       data,
	}, 0, 1)
}

// cellText keeps plain text and line breaks; other inline markup is dropped.
func cellText(cell *mdast.Node) string {
	var b strings.Builder
	for _, child := range cell.Children {
		switch {
		case child.Type == mdast.TypeStr:
			b.WriteString(child.Value)
		case child.Type == mdast.TypeHTML && isLineBreak(child.Value):
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func isLineBreak(value string) bool {
	return value == "<br>" || value == "<br />"
}

// parseFileName returns the base name and extension of the URL path. It never
// fails: unparseable URLs fall back to the raw string.
func parseFileName(raw string) (name, ext string) {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(raw, "?#"); i >= 0 {
		p = raw[:i]
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return "", ""
	}
	base := path.Base(p)
	ext = path.Ext(base)
	if ext == base {
		// dot files such as ".env" have no extension
		ext = ""
	}
	return strings.TrimSuffix(base, ext), ext
}

func isImageExt(ext string) bool {
	_, ok := imageExtensions[strings.ToLower(ext)]
	return ok
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
