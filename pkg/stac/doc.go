// Package stac implements an in-memory, navigable graph of STAC catalog
// metadata (catalogs, collections, items) mirroring a JSON catalog tree on
// durable storage.
//
// # Overview
//
// The graph is built from three object variants: [Catalog], [Collection],
// and [Item], connected by typed [Link] edges. A link starts out holding
// only a location string and is materialized on demand: the first call to
// [Link.Resolve] fetches the target document through an injected [Reader],
// decodes it, and registers the object in the root's [IdentityCache]. The
// cache guarantees at most one in-memory instance per object id within a
// graph, so two links reaching the same document by different paths yield
// the same instance, and a link is fetched at most once.
//
// # Publishing conventions
//
// Serialized output is governed by a [CatalogType]:
//
//   - [SelfContained]: no self links anywhere, all link hrefs relative
//   - [RelativePublished]: one absolute self link on the root, all others relative
//   - [AbsolutePublished]: a self link on every object, all hrefs absolute
//
// Catalog types only affect serialized form; in-memory link targets are
// never rewritten. [Catalog.NormalizeHrefs] assigns deterministic self
// hrefs to every reachable object; [Catalog.Save] writes one JSON document
// per object through an injected [Writer].
//
// # Copying
//
// [FullCopy] produces a structurally independent copy of a reachable
// subgraph. Shared targets are copied exactly once and reference cycles
// terminate, because each copy is recorded before its links are recursed
// into. The copy receives a fresh identity cache, fully decoupled from the
// source graph.
//
// # Concurrency
//
// A single graph assumes single-threaded access: resolution mutates the
// shared identity cache. Distinct roots share no state and may be used in
// parallel. All blocking operations take a context and an explicit I/O
// capability; there is no ambient global I/O hook.
package stac
