// Package hexmarkup configures widgets from HTML fragments: each element
// with the marker class carries its options as data-* attributes,
// like data-line-front-fill='{"color": "red"}'.
package hexmarkup

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/hexprogress/hexwidget"
	"github.com/iancoleman/strcase"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultClass marks the elements hosting a widget.
const DefaultClass = "hexagon-progress"

// Element is an element hosting a widget.
// It implements hexwidget.Container, using its width and height attributes.
type Element struct {
	ID            string
	Width, Height float64
	// Data holds the recognized data-* attributes, with camel case keys.
	// Values are decoded as JSON when possible, and kept as strings otherwise.
	Data map[string]any
}

func (e Element) ContentBox() (float64, float64) { return e.Width, e.Height }

// Options converts the data attributes.
func (e Element) Options() ([]hexwidget.Option, error) {
	return hexwidget.DecodeOptions(e.Data)
}

// Parse reads an HTML document, whose encoding is detected from
// contentType and the document itself, and returns the elements
// having the given class, in document order.
// An empty class means DefaultClass.
func Parse(r io.Reader, contentType, class string) ([]Element, error) {
	if class == "" {
		class = DefaultClass
	}
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}
	doc, err := html.Parse(utf8)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var (
		out  []Element
		walk func(*html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, newElement(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

var known = func() map[string]bool {
	out := make(map[string]bool)
	for _, k := range hexwidget.Keys {
		out[k] = true
	}
	return out
}()

func newElement(n *html.Node) Element {
	e := Element{Data: make(map[string]any)}
	for _, attr := range n.Attr {
		switch {
		case attr.Key == "id":
			e.ID = attr.Val
		case attr.Key == "width":
			e.Width, _ = strconv.ParseFloat(strings.TrimSuffix(attr.Val, "px"), 64)
		case attr.Key == "height":
			e.Height, _ = strconv.ParseFloat(strings.TrimSuffix(attr.Val, "px"), 64)
		case strings.HasPrefix(attr.Key, "data-"):
			key := strcase.ToLowerCamel(strings.TrimPrefix(attr.Key, "data-"))
			if known[key] {
				e.Data[key] = attributeValue(attr.Val)
			}
		}
	}
	return e
}

// attributeValue decodes JSON values (objects, arrays,
// numbers, booleans), and keeps other strings.
func attributeValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		if _, isString := v.(string); !isString {
			return v
		}
	}
	return s
}
