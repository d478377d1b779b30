// Package procfs holds the primitives every /proc parser is built from:
// directory enumeration and bounded file reads, tokenizing, strict integer
// decoding, and decoders for the address and quantity encodings the kernel
// uses in its text files.
//
// Failures come in two kinds. An *OSError means the file, directory or link
// could not be reached. A *ParseError means the bytes were read but don't
// match the expected grammar; it carries the offending text verbatim.
// Nothing in this package retries, caches, or logs.
package procfs
