package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aidconnect/internal/document"
)

func newPlanCommand(opts *options) *cobra.Command {
	var (
		width, height int
		pageW, pageH  float64
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how a raster of the given size is sliced into pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := document.PlanPages(width, height, pageW, pageH)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(opts.out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(planView(plan))
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Raster width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Raster height in pixels")
	cmd.Flags().Float64Var(&pageW, "page-width", document.DefaultPageWidth, "Page width in mm")
	cmd.Flags().Float64Var(&pageH, "page-height", document.DefaultPageHeight, "Page height in mm")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

type pageView struct {
	Page     int     `yaml:"page"`
	OffsetMM float64 `yaml:"offset_mm"`
}

type planYAML struct {
	ImageWidthMM  float64    `yaml:"image_width_mm"`
	ImageHeightMM float64    `yaml:"image_height_mm"`
	PageHeightMM  float64    `yaml:"page_height_mm"`
	Pages         int        `yaml:"pages"`
	Slices        []pageView `yaml:"slices"`
}

func planView(p document.PagePlan) planYAML {
	out := planYAML{
		ImageWidthMM:  p.ImageWidth,
		ImageHeightMM: p.ImageHeight,
		PageHeightMM:  p.PageHeight,
		Pages:         p.Pages(),
	}
	for _, s := range p.Slices {
		out.Slices = append(out.Slices, pageView{Page: s.Index + 1, OffsetMM: s.Offset})
	}
	return out
}
