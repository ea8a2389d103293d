// Package retention enforces audit-bundle retention: an age and
// count-based pruner plus a cron-driven scheduler that runs it.
package retention
