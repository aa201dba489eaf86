// Package objstore provides the asynchronous object dictionaries the
// renderer resolves fonts and image data through.
//
// A page render sees two stores: the page-local store and the document-wide
// common store. Object ids beginning with "g_" belong to the common store;
// everything else is page-local. Producers publish objects with Resolve as
// decoding finishes; consumers either register a callback with Get or, once
// the dependency barrier has completed, read synchronously with Cached.
//
// Await implements the barrier: it blocks until every listed id has been
// resolved in its store, or the context is cancelled. After Await returns
// nil, all lookups for those ids are synchronous.
package objstore
