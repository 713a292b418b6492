package listing

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/airyra/tasksched/internal/domain"
)

// DOTOption configures the behaviour of WriteDOT.
type DOTOption func(*dotConfig)

type dotConfig struct {
	graphName string
	rankDir   string
}

// DOTWithGraphName overrides the DOT graph identifier.
func DOTWithGraphName(name string) DOTOption {
	return func(cfg *dotConfig) {
		if name != "" {
			cfg.graphName = name
		}
	}
}

// DOTWithRankDir sets the rank direction (e.g. "LR", "TB").
func DOTWithRankDir(rankDir string) DOTOption {
	return func(cfg *dotConfig) {
		if rankDir != "" {
			cfg.rankDir = rankDir
		}
	}
}

// WriteDOT renders tasks and dependency edges in Graphviz DOT format. Edges point
// from the prerequisite to the dependent task; completed tasks are filled grey.
func WriteDOT(w io.Writer, views []domain.TaskView, deps []domain.Dependency, opts ...DOTOption) error {
	if w == nil {
		return ErrNilWriter
	}

	cfg := dotConfig{graphName: "tasksched", rankDir: "LR"}
	for _, opt := range opts {
		opt(&cfg)
	}

	nodes := slices.Clone(views)
	slices.SortFunc(nodes, func(a, b domain.TaskView) int { return a.ID - b.ID })
	edges := slices.Clone(deps)
	slices.SortFunc(edges, domain.CompareDependencies)

	if _, err := fmt.Fprintf(w, "digraph %s {\n", dotQuote(cfg.graphName)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "    rankdir=%s;\n", cfg.rankDir); err != nil {
		return err
	}

	for _, v := range nodes {
		label := fmt.Sprintf("%d: %s (p%d)", v.ID, v.Description, v.Priority)
		attrs := "label=" + dotQuote(label)
		if v.Completed() {
			attrs += ", style=filled, fillcolor=lightgrey"
		}
		if _, err := fmt.Fprintf(w, "    t%d [%s];\n", v.ID, attrs); err != nil {
			return err
		}
	}

	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "    t%d -> t%d;\n", e.DepID, e.TaskID); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}

func dotQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
