package template

import (
	"fmt"
	"strings"
)

// Parse parses template source into an AST. It never fails: control syntax
// that cannot be parsed (unknown tags, stray or missing end tags) is kept
// as literal text and reported in the returned warnings.
func Parse(src string) (*Template, []Warning) {
	p := &parser{src: src}
	nodes, _ := p.parseBlock("")
	return &Template{Source: src, Nodes: nodes}, p.warnings
}

// parser is a single-pass recursive-descent parser over the template source.
type parser struct {
	src      string
	pos      int
	warnings []Warning
}

func (p *parser) warnf(offset int, format string, args ...interface{}) {
	p.warnings = append(p.warnings, Warning{
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

// parseBlock parses nodes until the named end tag ("endif", "endunless",
// "endfor") or end of input. The empty terminator parses to end of input.
// It reports whether the terminator was actually found.
func (p *parser) parseBlock(terminator string) ([]*Node, bool) {
	var nodes []*Node

	for p.pos < len(p.src) {
		open := p.nextMarker()
		if open < 0 {
			nodes = appendText(nodes, p.src[p.pos:])
			p.pos = len(p.src)
			break
		}

		if open > p.pos {
			nodes = appendText(nodes, p.src[p.pos:open])
			p.pos = open
		}

		if strings.HasPrefix(p.src[p.pos:], "{{") {
			nodes = append(nodes, p.parseInterp())
			continue
		}

		// Control tag.
		tagStart := p.pos
		raw, inner, ok := p.readTag()
		if !ok {
			// No closing %} before end of input.
			p.warnf(tagStart, "unterminated control tag")
			nodes = appendText(nodes, raw)
			continue
		}

		fields := strings.Fields(inner)
		if len(fields) == 0 {
			p.warnf(tagStart, "empty control tag")
			nodes = appendText(nodes, raw)
			continue
		}

		switch fields[0] {
		case "if", "unless":
			if len(fields) != 2 {
				p.warnf(tagStart, "malformed %s tag %q", fields[0], inner)
				nodes = appendText(nodes, raw)
				continue
			}
			nodeType, end := NodeIf, "endif"
			if fields[0] == "unless" {
				nodeType, end = NodeUnless, "endunless"
			}
			body, closed := p.parseBlock(end)
			if !closed {
				// Keep the tag as literal text; the body parsed fine and
				// still renders.
				p.warnf(tagStart, "missing {%% %s %%}", end)
				nodes = appendText(nodes, raw)
				nodes = append(nodes, body...)
				continue
			}
			nodes = append(nodes, &Node{Type: nodeType, Path: fields[1], Body: body})

		case "for":
			if len(fields) != 4 || fields[2] != "in" {
				p.warnf(tagStart, "malformed for tag %q", inner)
				nodes = appendText(nodes, raw)
				continue
			}
			body, closed := p.parseBlock("endfor")
			if !closed {
				p.warnf(tagStart, "missing {%% endfor %%}")
				nodes = appendText(nodes, raw)
				nodes = append(nodes, body...)
				continue
			}
			nodes = append(nodes, &Node{Type: NodeFor, Item: fields[1], Path: fields[3], Body: body})

		case "endif", "endunless", "endfor":
			if fields[0] == terminator {
				return nodes, true
			}
			p.warnf(tagStart, "stray {%% %s %%}", fields[0])
			nodes = appendText(nodes, raw)

		default:
			p.warnf(tagStart, "unknown control tag %q", fields[0])
			nodes = appendText(nodes, raw)
		}
	}

	return nodes, terminator == ""
}

// parseInterp parses a {{ path }} interpolation at the current position.
// A malformed interpolation is kept as literal text.
func (p *parser) parseInterp() *Node {
	start := p.pos
	end := strings.Index(p.src[p.pos:], "}}")
	if end < 0 {
		p.warnf(start, "unterminated interpolation")
		p.pos = len(p.src)
		return &Node{Type: NodeText, Text: p.src[start:]}
	}

	inner := strings.TrimSpace(p.src[start+2 : p.pos+end])
	p.pos += end + 2

	if inner == "" || strings.ContainsAny(inner, " \t\n") {
		p.warnf(start, "malformed interpolation %q", inner)
		return &Node{Type: NodeText, Text: p.src[start:p.pos]}
	}

	return &Node{Type: NodeInterp, Path: inner}
}

// readTag consumes a {% ... %} tag. It returns the raw tag text, the
// trimmed inner content, and whether the closing marker was found. When the
// closing marker is missing it consumes the rest of the input as raw text.
func (p *parser) readTag() (raw, inner string, ok bool) {
	start := p.pos
	end := strings.Index(p.src[p.pos:], "%}")
	if end < 0 {
		p.pos = len(p.src)
		return p.src[start:], "", false
	}
	raw = p.src[start : start+end+2]
	inner = strings.TrimSpace(p.src[start+2 : start+end])
	p.pos = start + end + 2
	return raw, inner, true
}

// nextMarker returns the offset of the next "{{" or "{%", or -1.
func (p *parser) nextMarker() int {
	rest := p.src[p.pos:]
	interp := strings.Index(rest, "{{")
	tag := strings.Index(rest, "{%")
	switch {
	case interp < 0 && tag < 0:
		return -1
	case interp < 0:
		return p.pos + tag
	case tag < 0:
		return p.pos + interp
	case tag < interp:
		return p.pos + tag
	default:
		return p.pos + interp
	}
}

// appendText appends a text node, merging with a preceding text node so the
// AST stays compact.
func appendText(nodes []*Node, text string) []*Node {
	if text == "" {
		return nodes
	}
	if n := len(nodes); n > 0 && nodes[n-1].Type == NodeText {
		nodes[n-1].Text += text
		return nodes
	}
	return append(nodes, &Node{Type: NodeText, Text: text})
}
