// Command elm-desktop-app builds, runs and packages Elm applications as
// Electron desktop applications.
package main

import (
	"os"

	"git.fractalqb.de/fractalqb/elmdesk/cmd/elm-desktop-app/internal"
)

func main() {
	os.Exit(internal.Execute())
}
