// Package sources implements the concrete key sources behind the
// keys.Source capability: GitHub repository contributors, explicit
// GitHub user lists, SSH known-hosts files, live ssh-keyscan probes,
// and local git checkouts.
//
// GitHub traffic goes through a shared Client with retrying HTTP and
// optional token auth (GITHUB_TOKEN). Contributor discovery prefers the
// GraphQL collaborators listing and falls back to the public REST
// contributors endpoint when the query fails or lacks auth.
//
// Cached wraps any source with a memoizing layer so bulk operations
// fetch each source once and reuse the records per file.
package sources
