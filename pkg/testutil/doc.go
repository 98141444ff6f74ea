// Package testutil holds helpers shared by hexmap tests: an isolated
// environment so user config and logs never leak into a run, in-memory
// input files, and small utilities for comparing rendered dumps.
package testutil
