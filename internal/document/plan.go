// Package document turns a rasterized certificate into a paginated,
// downloadable PDF.
package document

import (
	"fmt"
	"math"
)

// A4 dimensions in millimetres. PageHeight is slightly shorter than the
// physical sheet so the last row of pixels is never clipped.
const (
	DefaultPageWidth  = 210.0
	DefaultPageHeight = 295.0
)

const heightEpsilon = 1e-6

// Slice places the whole raster on one page, shifted up by Offset mm.
type Slice struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset_mm"`
}

// PagePlan describes how a raster maps onto fixed-height pages.
type PagePlan struct {
	PixelWidth  int     `json:"pixel_width"`
	PixelHeight int     `json:"pixel_height"`
	PageWidth   float64 `json:"page_width_mm"`
	PageHeight  float64 `json:"page_height_mm"`
	ImageWidth  float64 `json:"image_width_mm"`
	ImageHeight float64 `json:"image_height_mm"`
	Slices      []Slice `json:"slices"`
}

// Pages returns the number of pages in the plan.
func (p PagePlan) Pages() int { return len(p.Slices) }

// PlanPages scales a pxW x pxH raster to pageW and slices it into pages of
// pageH. An image no taller than one page yields exactly one page.
func PlanPages(pxW, pxH int, pageW, pageH float64) (PagePlan, error) {
	if pxW <= 0 || pxH <= 0 {
		return PagePlan{}, fmt.Errorf("invalid raster size %dx%d", pxW, pxH)
	}
	if pageW <= 0 || pageH <= 0 {
		return PagePlan{}, fmt.Errorf("invalid page size %.2fx%.2f", pageW, pageH)
	}
	imgH := float64(pxH) * pageW / float64(pxW)
	plan := PagePlan{
		PixelWidth:  pxW,
		PixelHeight: pxH,
		PageWidth:   pageW,
		PageHeight:  pageH,
		ImageWidth:  pageW,
		ImageHeight: imgH,
	}

	plan.Slices = append(plan.Slices, Slice{Index: 0, Offset: 0})
	left := imgH - pageH
	for left > heightEpsilon {
		offset := left - imgH
		plan.Slices = append(plan.Slices, Slice{Index: len(plan.Slices), Offset: roundMM(offset)})
		left -= pageH
	}
	return plan, nil
}

func roundMM(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}
