package elmdesk

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"reflect"
	"slices"
	"strings"
)

// Diagrammer writes the goals and actions of a project as a Graphviz
// digraph. File goals are grouped into one cluster per directory, abstract
// goals are drawn as dashed boxes and goals with [UpdMissing] are marked
// with "?".
type Diagrammer struct {
	RankDir string
}

func (dia *Diagrammer) WriteDot(w io.Writer, prj *Project) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", dotID(prj.Name()))
	if dia.RankDir != "" {
		fmt.Fprintf(bw, "\trankdir=%s;\n", dotID(dia.RankDir))
	}
	ids := make(map[*Goal]string)
	clusters := make(map[string][]*Goal)
	for i, g := range prj.Goals(nil) {
		ids[g] = fmt.Sprintf("g%d", i)
		dir := ""
		if !g.IsAbstract() {
			dir = path.Dir(strings.TrimSuffix(g.Name(), "/"))
		}
		clusters[dir] = append(clusters[dir], g)
	}
	dirs := make([]string, 0, len(clusters))
	for dir := range clusters {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	for i, dir := range dirs {
		indent := "\t"
		if dir != "" && dir != "." {
			fmt.Fprintf(bw, "\tsubgraph cluster_%d {\n\t\tlabel=%s;\n", i, dotID(dir+"/"))
			indent = "\t\t"
		}
		for _, g := range clusters[dir] {
			dia.goal(bw, indent, ids[g], g)
		}
		if indent != "\t" {
			fmt.Fprintln(bw, "\t}")
		}
	}
	for i, a := range prj.Actions() {
		dia.action(bw, fmt.Sprintf("a%d", i), a, ids)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func (dia *Diagrammer) goal(w io.Writer, indent, id string, g *Goal) {
	label := g.Name()
	if g.IsAbstract() {
		fmt.Fprintf(w, "%s%s [shape=box,style=dashed,label=%s];\n", indent, id, dotID(label))
		return
	}
	label = path.Base(strings.TrimSuffix(label, "/"))
	kind := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
	if g.UpdateMode == UpdMissing {
		kind += " ?"
	}
	fmt.Fprintf(w, "%s%s [shape=record,label=%s];\n", indent, id, dotID("{"+kind+"|"+label+"}"))
}

func (dia *Diagrammer) action(w io.Writer, id string, a *Action, ids map[*Goal]string) {
	if a.Op == nil {
		fmt.Fprintf(w, "\t%s [shape=point];\n", id)
	} else {
		fmt.Fprintf(w, "\t%s [shape=box,style=rounded,label=%s];\n", id, dotID(a.String()))
	}
	for _, pre := range a.Premises() {
		fmt.Fprintf(w, "\t%s -> %s;\n", ids[pre], id)
	}
	for _, res := range a.Results() {
		fmt.Fprintf(w, "\t%s -> %s;\n", id, ids[res])
	}
}

func dotID(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
