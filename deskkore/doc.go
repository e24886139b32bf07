// Package deskkore implements the core model elmdesk uses to represent a
// desktop application build. A build is a [Project] of goals ([Goal]) that are
// reached by actions ([Action]). Each action runs an [Operation], e.g. copying
// files or invoking the Elm compiler, and produces its results from its
// premises. A [Builder] reaches goals strictly one after the other, premises
// first.
//
// The package uses idiomatic Go error handling. A more convenient way to
// define the build pipeline is provided by the [elmdesk] package.
//
// [elmdesk]: https://pkg.go.dev/git.fractalqb.de/fractalqb/elmdesk
package deskkore
