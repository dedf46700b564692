package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/powerset/internal/presentation/tui"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMarkdown(t *testing.T) {
	q0 := domain.NewStateSet("q0")
	q01 := domain.NewStateSet("q0", "q1")
	trace := domain.Trace{
		{Index: 0, Subset: q0, Moves: []domain.TraceMove{
			{Symbol: "a", Move: q01, Closure: q01, New: true},
			{Symbol: "b", Move: q0, Closure: q0},
		}},
		{Index: 1, Subset: q01},
	}

	md := tui.TraceMarkdown("Trace", trace)

	assert.True(t, strings.HasPrefix(md, "## Trace\n"))
	assert.Contains(t, md, "| 0 | `{q0}` | a | `{q0,q1}` | `{q0,q1}` | new |")
	assert.Contains(t, md, "| 0 | `{q0}` | b | `{q0}` | `{q0}` |  |")
	assert.Contains(t, md, "| 1 | `{q0,q1}` | | | | |")
	assert.Contains(t, md, "2 subsets discovered.")
}

func TestTraceMarkdown_Empty(t *testing.T) {
	assert.Contains(t, tui.TraceMarkdown("", nil), "No trace recorded")
}

func TestSummaryMarkdown(t *testing.T) {
	b := dsl.New()
	b.State("q0").Start().On("a", "q0", "q1")
	b.State("q1").Accept()

	md := tui.SummaryMarkdown("NFA", b.MustBuild())

	assert.Contains(t, md, "**States:** 2")
	assert.Contains(t, md, "**Alphabet:** a")
	assert.Contains(t, md, "**Start:** `q0`")
	assert.Contains(t, md, "**Accept:** `q1`")
	assert.Contains(t, md, "**Deterministic:** false")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Title\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
