// Package material converts a shader material parse tree into a typed
// model.
//
// [Build] walks the direct children of a [lang.KindMaterial] node once.
// It reads the shader identifier and the variable declarations, interprets
// literals into [Value]s, unifies numeric arrays to a single element width,
// and collects the setup and render proxy invocations in source order.
// Proxy parameters are kept as unresolved [Reference]s.
//
// Numeric literals are typed by their lexical form alone:
//
//	1.5f   Float    (32-bit)
//	1.5d   Double   (64-bit)
//	1.5    Double   (no suffix, fraction or exponent)
//	-3     Integer  (32-bit)
//
// Arrays hold 2, 3 or 4 numbers. The element type is the widest class
// present (integer, then float, then double) and every element is parsed
// again at that width, so [1, 2.0f] becomes Array2F{1, 2}.
//
// A build either returns a complete [Material] or an error; it never
// returns both. Top-level constructs the builder does not know are skipped
// with a warning.
package material
