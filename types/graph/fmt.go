package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func (g *Graph) String() string {
	V := make([]string, 0, len(g.V))
	E := make([]string, 0, len(g.E))
	for _, v := range g.V {
		V = append(V, fmt.Sprintf("(%v:%v)", v.Id, v.Label))
	}
	for _, e := range g.E {
		E = append(E, fmt.Sprintf(
			"[%v-%v:%v]",
			g.V[e.Src].Id,
			g.V[e.Targ].Id,
			e.Label,
		))
	}
	return fmt.Sprintf("{%v:%v}%v%v", len(g.E), len(g.V), strings.Join(V, ""), strings.Join(E, ""))
}

func (g *Graph) Dotty() string {
	V := make([]string, 0, len(g.V))
	E := make([]string, 0, len(g.E))
	for _, v := range g.V {
		V = append(V, fmt.Sprintf("n%v [label=%q];", v.Id, v.Label))
	}
	for _, e := range g.E {
		E = append(E, fmt.Sprintf(
			"n%v -- n%v [label=%q];",
			g.V[e.Src].Id,
			g.V[e.Targ].Id,
			e.Label,
		))
	}
	return fmt.Sprintf("graph g%d {\n%v\n%v\n}", g.Id, strings.Join(V, "\n"), strings.Join(E, "\n"))
}

// FormatGaston writes g in the format read by GastonLoader.
func FormatGaston(w io.Writer, g *Graph) error {
	if _, err := fmt.Fprintf(w, "# %d\n", g.Id); err != nil {
		return err
	}
	for _, v := range g.V {
		if _, err := fmt.Fprintf(w, "v %d %s\n", v.Id, v.Label); err != nil {
			return err
		}
	}
	for _, e := range g.E {
		if _, err := fmt.Fprintf(w, "e %d %d %s\n", g.V[e.Src].Id, g.V[e.Targ].Id, e.Label); err != nil {
			return err
		}
	}
	return nil
}

// FormatVeg writes g in the format read by VegLoader.
func FormatVeg(w io.Writer, g *Graph) error {
	line := func(kind string, obj map[string]interface{}) error {
		j, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%v\t%v\n", kind, string(j))
		return err
	}
	if err := line("graph", map[string]interface{}{"id": g.Id}); err != nil {
		return err
	}
	for _, v := range g.V {
		if err := line("vertex", map[string]interface{}{"id": v.Id, "label": v.Label}); err != nil {
			return err
		}
	}
	for _, e := range g.E {
		err := line("edge", map[string]interface{}{
			"src":   g.V[e.Src].Id,
			"targ":  g.V[e.Targ].Id,
			"label": e.Label,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatDot writes g as a graphviz graph.
func FormatDot(w io.Writer, g *Graph) error {
	_, err := fmt.Fprintln(w, g.Dotty())
	return err
}
