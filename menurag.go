// Package menurag provides a retrieval-augmented chatbot over restaurant
// menu data. Scraped menu records are normalized and feature-tagged,
// flattened into searchable documents, embedded into a vector index, and
// retrieved per query to ground answers from a hosted language model.
//
// This package contains domain types, interfaces and the pure parts of the
// pipeline following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// sqlite/, gemini/, goquery/).
package menurag
