package elmdesk

// Tools are the executables of the external tools that are expected to be
// installed. Empty names are looked up in PATH with their default names.
type Tools struct {
	Elm string
	Npm string
}

func (t Tools) elm() string { return toolOr(t.Elm, "elm") }

func (t Tools) npm() string { return toolOr(t.Npm, "npm") }

func toolOr(exe, dflt string) string {
	if exe == "" {
		return dflt
	}
	return exe
}
