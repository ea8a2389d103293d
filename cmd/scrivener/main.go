// Scrivener is a policy document assembly pipeline for regulated firms.
//
// It turns a clause library, a firm profile, and wizard answers into a
// tailored policy document plus an audit bundle recording exactly which
// rules fired and which clauses were selected.
//
// Usage:
//
//	# Generate a document from a run file
//	scrivener generate --library ./library --run run.yaml --output ./out
//
//	# Validate a clause library
//	scrivener validate --library ./library
//
//	# Watch a library, re-validating on change
//	scrivener watch --library ./library
//
//	# Query stored audit bundles
//	scrivener audit query --policy aml_policy --format json
//
//	# Show version information
//	scrivener version
package main

func main() {
	Execute()
}
