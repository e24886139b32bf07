// Package manifest reads, checks and rewrites Elm dependency manifests
// (elm.json). Manifests keep the order of their members so that a rewritten
// manifest only differs from the one it was read from where it was edited.
package manifest
