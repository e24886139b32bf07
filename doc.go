// Package elmdesk builds Elm applications into Electron desktop applications.
//
// A build is modelled as a [deskkore.Project] of goals, each backed by an
// artefact in the project's cache directory:
//
//	<project>/elm-stuff/elm-desktop-app/
//	├── gen
//	│   ├── elm.json     merged manifest
//	│   └── src/         glue modules
//	└── app
//	    ├── elm.js       compiled application
//	    ├── index.js     Electron main script
//	    ├── index.html   HTML shell
//	    ├── package.json
//	    └── node_modules/
//
// The [Pipeline] defines the goals and reaches them with the external tools
// elm, npm, electron and electron-builder. Goals are reached in stages, see
// [Stage]. Every build rewrites the generated files. Installed npm packages
// are kept across builds.
package elmdesk
