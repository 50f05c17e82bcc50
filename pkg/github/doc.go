// Package github is a minimal client for the GitHub REST API covering the
// endpoints readmegen needs: user lookup, owned-repository listing, and
// per-repository language statistics.
//
// The client authenticates with an optional bearer token (unauthenticated
// requests work but are rate limited), paginates repository listings up to a
// configurable cap, and fans out language requests under a bounded
// concurrency limit. Per-repository language failures degrade to an empty
// result; failures on the user or repository endpoints are returned to the
// caller as coded errors from pkg/errors.
package github
