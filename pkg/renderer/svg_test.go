package renderer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/felixgeelhaar/burndown/pkg/renderer"
)

func testSeries(t *testing.T) ([]burndown.Point, []burndown.ProgressEntry) {
	t.Helper()
	p, err := burndown.NewProject("release",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		100)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	if err := p.UpdateProgress(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 30, "first week"); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	return p.Series(), p.Ledger()
}

func TestChartRenderer_Render(t *testing.T) {
	points, entries := testSeries(t)

	svg, err := renderer.NewChartRenderer(renderer.DefaultOptions("release")).Render(points, entries)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(svg)
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`width="1120"`,
		`height="640"`,
		">release<",
		`stroke="blue"`,
		`stroke="red"`,
		`stroke="green"`,
		`stroke="purple"`, // the progress-update marker
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered SVG missing %q", want)
		}
	}
}

func TestChartRenderer_Render_NoMarkers(t *testing.T) {
	points, entries := testSeries(t)

	opts := renderer.DefaultOptions("release")
	opts.ShowMarkers = false
	svg, err := renderer.NewChartRenderer(opts).Render(points, entries)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(svg), `stroke="purple"`) {
		t.Error("markers rendered although disabled")
	}
}

func TestChartRenderer_Render_CustomSize(t *testing.T) {
	points, _ := testSeries(t)

	svg, err := renderer.NewChartRenderer(renderer.Options{Title: "t", Width: 800, Height: 400}).Render(points, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `width="800"`) || !strings.Contains(out, `height="400"`) {
		t.Errorf("custom dimensions not applied")
	}
}

func TestChartRenderer_Render_EmptySeries(t *testing.T) {
	if _, err := renderer.NewChartRenderer(renderer.DefaultOptions("t")).Render(nil, nil); err == nil {
		t.Fatal("Render() succeeded on an empty series")
	}
}
