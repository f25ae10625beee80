// Package docgram publishes newly released documents from a public listing
// to an image-based platform. It scans listing pages for document links,
// derives a stable identity per document for deduplication, renders the
// first page of each new document to an image, hosts the image at a stable
// URL, and publishes it with a caption via a two-phase stage/commit
// protocol — at most once per document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, fitz/).
package docgram
