package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPages(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		pages   int
		offsets []float64
	}{
		{name: "shorter than a page", w: 1280, h: 900, pages: 1, offsets: []float64{0}},
		{name: "exactly one page", w: 210, h: 295, pages: 1, offsets: []float64{0}},
		{name: "exactly two pages", w: 210, h: 590, pages: 2, offsets: []float64{0, -295}},
		{name: "two point three pages", w: 1000, h: 3231, pages: 3, offsets: []float64{0, -295, -590}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := PlanPages(tc.w, tc.h, DefaultPageWidth, DefaultPageHeight)
			require.NoError(t, err)
			require.Equal(t, tc.pages, plan.Pages())
			for i, s := range plan.Slices {
				assert.Equal(t, i, s.Index)
				assert.InDelta(t, tc.offsets[i], s.Offset, 1e-6)
			}
			assert.InDelta(t, DefaultPageWidth, plan.ImageWidth, 1e-9)
			assert.InDelta(t, float64(tc.h)*DefaultPageWidth/float64(tc.w), plan.ImageHeight, 1e-9)
		})
	}
}

func TestPlanPagesRejectsEmptyInput(t *testing.T) {
	_, err := PlanPages(0, 10, DefaultPageWidth, DefaultPageHeight)
	require.Error(t, err)
	_, err = PlanPages(10, 10, 0, DefaultPageHeight)
	require.Error(t, err)
}
