// Package display renders summaries of an extracted image for the info
// command: a heading, then one pterm table per content kind.
package display
