// Package audit defines the audit bundle: the immutable, serializable
// record of a run's inputs and decisions kept as compliance evidence.
//
// A bundle is built verbatim from the run snapshot and the rules-engine
// result at document generation time, content-hashed for tamper evidence,
// and must be fully reconstructible from (answers, rules, clauses) alone.
// Subpackages provide storage backends, exporters, and retention.
package audit
