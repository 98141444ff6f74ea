// Package types defines the data shared between the input adapters and the
// rendering engine: content blocks, annotation ranges and the image that
// groups them for one render pass.
package types
