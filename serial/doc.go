// Package serial converts the domain objects of a campaign to and from a
// structured document format with JSON and YAML renderings.
//
// Every variant family (parameters, constraints, kernels, targets,
// recommenders) is covered by a Registry: a closed mapping from a document
// type tag to an encode/decode pair, built once by NewRegistry and passed
// explicitly wherever it is needed. Nothing is registered at runtime, so
// the set of serializable types is fixed at compile time and an unrecognized
// tag fails with *UnknownTagError instead of invoking an unexpected hook.
// Objects that carry state without a document form, such as a custom
// constraint's validator function, are rejected by encode with
// *NotSerializableError.
//
// Search spaces are serialized from their declarations, not from the built
// tables: the subspace build is deterministic, so rebuilding from identical
// declarations reproduces the row order and the content-hashed row
// identifiers exactly. Measured and recommended identifiers therefore
// survive the round trip and are verified against the rebuilt rows on
// decode.
package serial
