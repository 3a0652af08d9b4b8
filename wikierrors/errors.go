// Package wikierrors defines the error taxonomy shared by every component:
// InputError, StoreError, ResourceError and EncodingError. Callers match
// against these sentinels with errors.Is/errors.As; components wrap them
// with fmt.Errorf("...: %w", ...) for context the way the rest of the
// module does.
package wikierrors

import "errors"

// ErrInput signals a malformed or invalid caller input (empty query,
// unknown index name). Boundaries translate it to HTTP 400 or an empty
// result, never a panic.
var ErrInput = errors.New("input error")

// ErrStore signals a relational-store or ANN-store read/write failure.
// On the query path the orchestrator returns it to the caller, and the
// HTTP handler answers 500; no partial result is served. On the ingest
// path the pipeline logs the failed document and continues with the
// next one; writes already made for the failed document are not undone.
var ErrStore = errors.New("store error")

// ErrResource signals pool exhaustion or a missing required file. Fatal
// at startup; at runtime it propagates to the HTTP handler as a 5xx.
var ErrResource = errors.New("resource error")

// ErrEncoding signals an embedding model failure or a shape mismatch.
// Only the semantic search branch is affected; the inverted-index
// branch may still serve the same request.
var ErrEncoding = errors.New("encoding error")
