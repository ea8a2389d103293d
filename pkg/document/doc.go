// Package document assembles the final policy document and its audit
// bundle: it renders each included clause through the template renderer,
// normalizes the prose, appends titled sections to an abstract block sink,
// and emits the audit bundle verbatim from the run and rules result.
//
// Binary document formatting is an external collaborator's concern; the
// assembler only speaks in abstract blocks (headings, paragraphs, lists,
// blockquotes).
package document
