// Package config turns raw campaign documents into validated, runnable
// campaigns.
//
// A document (JSON or YAML, see the serial package for the schema) passes
// three gates. Strict decoding rejects fields the schema does not declare.
// Struct-tag validation checks the declared shape: required fields, token
// vocabularies, nested documents. Domain decoding then rebuilds every
// declaration through the serial registry, which catches unknown type tags,
// malformed factories and constraints referencing undeclared parameters.
// Independent problems are aggregated into one error so a bad document is
// fixed in one pass instead of one message at a time.
//
// Validate stops there; Build goes on to enumerate the search space and
// assemble the campaign.
package config
