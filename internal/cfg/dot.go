package cfg

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT emits the graph as a Graphviz description for an external
// layout tool. Node bodies carry the block's statements; edge labels carry
// the edge kind when it is not a plain fallthrough.
func WriteDOT(w io.Writer, g *Graph, title string) error {
	if _, err := fmt.Fprintln(w, "digraph CFG {"); err != nil {
		return err
	}
	fmt.Fprintln(w, `node [shape=box, fontname="Courier"];`)
	if title != "" {
		fmt.Fprintf(w, "label=%q;\n", title)
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		var body strings.Builder
		fmt.Fprintf(&body, "bb %d\\l", n.ID)
		for _, s := range n.Stmts {
			body.WriteString(escapeDOT(s.Text))
			body.WriteString("\\l")
		}
		attrs := ""
		if n.Unreachable {
			attrs = `, style=dashed, color=gray`
		}
		fmt.Fprintf(w, "bb%d [label=\"%s\"%s];\n", n.ID, body.String(), attrs)
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		for _, e := range n.Edges {
			label := e.Kind.String()
			if label == "fallthrough" {
				fmt.Fprintf(w, "bb%d -> bb%d;\n", n.ID, e.To)
				continue
			}
			fmt.Fprintf(w, "bb%d -> bb%d [label=%q];\n", n.ID, e.To, label)
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func escapeDOT(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}
