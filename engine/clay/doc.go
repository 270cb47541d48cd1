// Package clay models the output of the Clay layout engine: an ordered array of
// render commands, each carrying a bounding box in screen pixels and a typed payload.
//
// The payload is a closed sum type. Consumers switch on the concrete RenderData
// type (or on RenderCommand.Type) and ignore kinds they do not understand.
package clay
