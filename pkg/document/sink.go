package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Meta is document-level metadata: firm branding and the draft watermark
// flag. It applies to the whole document, never per clause.
type Meta struct {
	// FirmName appears on the title page.
	FirmName string

	// PolicyName and PolicyVersion identify the document.
	PolicyName    string
	PolicyVersion string

	// PrimaryColor and SecondaryColor are the firm's branding colors.
	PrimaryColor   string
	SecondaryColor string

	// DraftWatermark is set when the run is not yet approved.
	DraftWatermark bool

	// EffectiveDate is when the policy takes effect.
	EffectiveDate time.Time
}

// BlockSink receives the assembled document as abstract blocks. The binary
// document builder (DOCX, PDF) implements this interface externally.
type BlockSink interface {
	// SetMeta supplies document-level metadata before any blocks.
	SetMeta(meta Meta)

	// Heading appends a heading block at the given level (1 is highest).
	Heading(level int, text string)

	// Paragraph appends a prose paragraph.
	Paragraph(text string)

	// OrderedList appends a numbered list.
	OrderedList(items []string)

	// BulletList appends an unordered list.
	BulletList(items []string)

	// Blockquote appends a callout block.
	Blockquote(text string)
}

// BufferSink is an in-memory BlockSink that renders blocks as plain text.
// It backs the default Generate path and tests.
type BufferSink struct {
	buf  bytes.Buffer
	meta Meta
}

// NewBufferSink creates an empty buffer sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// SetMeta records document metadata and writes the title block.
func (s *BufferSink) SetMeta(meta Meta) {
	s.meta = meta
	fmt.Fprintf(&s.buf, "%s\n%s (version %s)\n", meta.FirmName, meta.PolicyName, meta.PolicyVersion)
	if !meta.EffectiveDate.IsZero() {
		fmt.Fprintf(&s.buf, "Effective: %s\n", meta.EffectiveDate.Format("2 January 2006"))
	}
	if meta.DraftWatermark {
		s.buf.WriteString("DRAFT — NOT YET APPROVED\n")
	}
	s.buf.WriteString("\n")
}

// Heading appends a heading.
func (s *BufferSink) Heading(level int, text string) {
	s.buf.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
}

// Paragraph appends a paragraph followed by a blank line.
func (s *BufferSink) Paragraph(text string) {
	s.buf.WriteString(text + "\n\n")
}

// OrderedList appends a numbered list.
func (s *BufferSink) OrderedList(items []string) {
	for i, item := range items {
		fmt.Fprintf(&s.buf, "%d. %s\n", i+1, item)
	}
	s.buf.WriteString("\n")
}

// BulletList appends an unordered list.
func (s *BufferSink) BulletList(items []string) {
	for _, item := range items {
		s.buf.WriteString("- " + item + "\n")
	}
	s.buf.WriteString("\n")
}

// Blockquote appends a callout.
func (s *BufferSink) Blockquote(text string) {
	for _, line := range strings.Split(text, "\n") {
		s.buf.WriteString("> " + line + "\n")
	}
	s.buf.WriteString("\n")
}

// Bytes returns the rendered document.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}
