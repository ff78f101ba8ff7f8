package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-css-lab/pkg/evaluator"
)

func TestExtractSignificantSelectors(t *testing.T) {
	html := `<header class="hero hero--dark">
  <h1 class="hero-title">Learn CSS</h1>
  <p class="hero-text">Style the web.</p>
  <button class="btn primary">Start</button>
  <section><span>new</span></section>
</header>`

	selectors := evaluator.ExtractSignificantSelectors(html)
	require.Equal(t, []string{".btn", ".hero", ".hero-text", ".hero-title", "h1", "header", "section", "span"}, selectors)
}

func TestExtractSignificantSelectors_DropsGenericTags(t *testing.T) {
	html := `<html><body><div><p><a href="#">x</a></p><ul><li><img src="x.png"></li></ul><button>b</button><h2>t</h2><h3>s</h3><nav></nav></div></body></html>`

	require.Empty(t, evaluator.ExtractSignificantSelectors(html))
}

func TestExtractSignificantSelectors_OrderIndependent(t *testing.T) {
	first := evaluator.ExtractSignificantSelectors(`<article class="card"></article><span class="badge"></span>`)
	second := evaluator.ExtractSignificantSelectors(`<span class="badge"></span><article class="card"></article><span class="badge"></span>`)

	require.Equal(t, first, second)
	require.Equal(t, first, evaluator.ExtractSignificantSelectors(`<article class="card"></article><span class="badge"></span>`))
}

func TestExtractSignificantSelectors_Malformed(t *testing.T) {
	selectors := evaluator.ExtractSignificantSelectors(`<DIV class='Panel wide'><Footer class="">broken <  <1tag class=unquoted`)

	require.Equal(t, []string{".Panel", "footer"}, selectors)
	require.Empty(t, evaluator.ExtractSignificantSelectors(""))
	require.Empty(t, evaluator.ExtractSignificantSelectors("plain text, no markup"))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, ".a { color: red; }", evaluator.Normalize("  .A {\n\tCOLOR:   Red;\r\n}  "))
	require.Equal(t, "", evaluator.Normalize(" \n "))
}
