package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-css-lab/internal/catalog"
	"github.com/noah-isme/gema-css-lab/pkg/evaluator"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, c.Len(), 5)

	nav, ok := c.Get("style-nav")
	require.True(t, ok)
	require.Equal(t, []string{"display: flex", "justify-content", "align-items", ":hover"}, nav.Probes)
	require.NotEmpty(t, nav.Hints)
	require.Contains(t, nav.InitialHTML, `class="navbar"`)

	_, ok = c.Get("missing")
	require.False(t, ok)

	require.Equal(t, []string{"animation", "box-model", "flexbox", "grid", "states"}, c.Topics())
}

func TestEmbeddedSolutionsGradeCorrect(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	for _, exercise := range c.List() {
		result := evaluator.Evaluate(exercise.SolutionCSS, exercise.Grading())
		require.Equal(t, evaluator.Correct, result.Assessment, exercise.ID)
		require.NotEmpty(t, evaluator.ExtractSignificantSelectors(exercise.InitialHTML), exercise.ID)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	list := c.List()
	list[0].ID = "changed"

	first := c.List()[0]
	require.Equal(t, "style-nav", first.ID)
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	_, err := catalog.Parse([]byte(`exercises:
  - id: Bad Id
    title: x
    initial_html: "<div></div>"
    solution_css: "div{}"
`))
	require.Error(t, err)

	_, err = catalog.Parse([]byte(`exercises:
  - id: one
    title: x
    initial_html: "<div></div>"
    solution_css: "div{}"
    probes: [a, b, c, d, e]
`))
	require.Error(t, err)

	_, err = catalog.Parse([]byte(`exercises:
  - id: one
    title: x
    initial_html: "<div></div>"
`))
	require.Error(t, err)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := catalog.Parse([]byte(`exercises:
  - id: one
    title: x
    initial_html: "<div></div>"
    solution_css: "div{}"
  - id: one
    title: y
    initial_html: "<div></div>"
    solution_css: "div{}"
`))
	require.ErrorIs(t, err, catalog.ErrDuplicateExercise)
}
