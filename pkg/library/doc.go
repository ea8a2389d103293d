// Package library loads a clause library from a directory of YAML files
// and keeps it current. A library bundles the policy record, question
// set, selection rules, clause texts, and firm profiles; LoadDir merges
// any number of files into one Library and Lint reports referential
// problems before a library is put in front of the rules engine.
//
// Watcher provides hot reload: it watches the library directory with
// fsnotify and invokes a reload callback after a debounce interval.
package library
