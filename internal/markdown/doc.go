// Package markdown adapts goldmark to the mdast node model used by the
// converter, and provides the filesystem helpers (front matter stripping,
// document discovery) used by the file and directory commands.
package markdown
