package filing

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Document wraps the XML section of a filing behind optional-tag accessors.
// Every lookup returns a fallback on a missing tag; the "missing tag means
// placeholder" policy lives here instead of being scattered per field.
type Document struct {
	tree *etree.Document
}

// ParseDocument extracts the embedded <XML> section of an EDGAR text
// submission and parses it. A document without a parseable XML section
// yields a Document whose accessors all return their fallbacks.
func ParseDocument(data []byte) *Document {
	section := xmlSection(string(data))
	if section == "" {
		return &Document{}
	}

	tree := etree.NewDocument()
	tree.ReadSettings.Permissive = true
	if err := tree.ReadFromString(section); err != nil {
		return &Document{}
	}

	return &Document{tree: tree}
}

// xmlSection returns the contents of the first <XML>...</XML> block, or the
// whole body when no block markers are present (standalone XML documents).
func xmlSection(body string) string {
	start := strings.Index(body, "<XML>")
	if start == -1 {
		if strings.HasPrefix(strings.TrimSpace(body), "<?xml") {
			return body
		}
		return ""
	}
	start += len("<XML>")

	end := strings.Index(body[start:], "</XML>")
	if end == -1 {
		return strings.TrimSpace(body[start:])
	}
	return strings.TrimSpace(body[start : start+end])
}

// Tag returns the trimmed text of the first element matching the tag name
// anywhere in the tree, or fallback when absent or empty.
func (d *Document) Tag(name, fallback string) string {
	if d.tree == nil {
		return fallback
	}
	return elementText(d.tree.FindElement("//"+name), fallback)
}

// Elements returns every element matching the tag name, in document order.
func (d *Document) Elements(name string) []*etree.Element {
	if d.tree == nil {
		return nil
	}
	return d.tree.FindElements("//" + name)
}

// TagIn returns the trimmed text of the first element matching the relative
// path under el, or fallback when absent or empty.
func TagIn(el *etree.Element, path, fallback string) string {
	if el == nil {
		return fallback
	}
	return elementText(el.FindElement(path), fallback)
}

func elementText(el *etree.Element, fallback string) string {
	if el == nil {
		return fallback
	}
	text := strings.TrimSpace(el.Text())
	if text == "" {
		return fallback
	}
	return text
}

// ParseNumber parses a numeric field tolerantly; malformed values degrade to
// zero rather than failing the extraction.
func ParseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
