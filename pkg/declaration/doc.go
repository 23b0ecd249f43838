// Package declaration reverse-engineers a structured model from generated
// type-declaration text. The Extractor locates declaration headers
// (interface, type, class, enum by default), slices out each body, and
// turns field lines into an ordered Model of types and fields. Extraction
// is heuristic and total: malformed input degrades to a smaller model, it
// never fails. The model feeds the docgen package.
package declaration
