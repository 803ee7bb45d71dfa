package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/disaster-map/internal/app"
	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/filter"
	"github.com/couchcryptid/disaster-map/internal/render"
	"github.com/couchcryptid/disaster-map/internal/store"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	year       int
	categories []string
	zoom       float64
	width      float64
	height     float64
	format     string
	out        string
	animate    bool
}

func newRenderCommand(c *cli) *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one map frame from the snapshot",
		Args:  cobra.NoArgs,
		Example: `  disastermap render --year 2004 > map.svg
  disastermap render --year 1990 --categories earthquake,tsunami --format json
  disastermap render --zoom 2.5 --width 1280 --height 720 --out map.svg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			write := func(w io.Writer) error {
				return c.render(cmd.Context(), o, w, cmd.ErrOrStderr())
			}
			if o.out == "" {
				return write(cmd.OutOrStdout())
			}
			f, err := os.Create(o.out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			return writeAndClose(f, write)
		},
	}

	cmd.Flags().IntVar(&o.year, "year", 0, "year to show (default YEAR_MIN)")
	cmd.Flags().StringSliceVar(&o.categories, "categories", []string{"all"}, "categories to show, or all")
	cmd.Flags().Float64Var(&o.zoom, "zoom", 1, "zoom scale, clamped to 1-8")
	cmd.Flags().Float64Var(&o.width, "width", 0, "viewport width (default VIEWPORT_WIDTH)")
	cmd.Flags().Float64Var(&o.height, "height", 0, "viewport height (default VIEWPORT_HEIGHT)")
	cmd.Flags().StringVarP(&o.format, "format", "o", "svg", "output format: svg, json, yaml")
	cmd.Flags().StringVar(&o.out, "out", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&o.animate, "animate", true, "animate marker growth in SVG output")

	return cmd
}

// render loads the snapshot synchronously and writes a single frame. Failed
// files are reported on errw and the frame is drawn from what did load.
func (c *cli) render(ctx context.Context, o renderOptions, w, errw io.Writer) error {
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return err
	}
	selection, err := parseSelection(o.categories)
	if err != nil {
		return err
	}

	opts := c.stateOptions()
	if o.width > 0 {
		opts.Width = o.width
	}
	if o.height > 0 {
		opts.Height = o.height
	}
	year := o.year
	if year == 0 {
		year = opts.MinYear
	}

	st := store.New()
	report := c.newLoader(st).Load(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg := report.Message(); msg != "" {
		fmt.Fprintln(errw, msg)
	}

	var (
		renderer render.Renderer
		svg      *render.SVG
	)
	if format == render.FormatSVG {
		svg = render.NewSVG(opts.Width, opts.Height, o.animate)
		renderer = svg
	} else {
		renderer = render.NewRecorder()
	}

	state, err := app.New(st, renderer, c.logger, c.metrics, opts)
	if err != nil {
		return err
	}
	for _, cat := range report.Loaded {
		state.CategoryReady(cat)
	}
	for _, cat := range selection.Categories() {
		if !st.Available(cat) {
			c.logger.Warn("category not loaded, not shown", "category", cat.Slug())
			continue
		}
		if err := state.Toggle(cat, true); err != nil {
			return err
		}
	}
	if err := state.SetYear(year); err != nil {
		return err
	}
	state.ZoomTo(o.zoom)

	if svg != nil {
		_, err := svg.WriteTo(w)
		return err
	}
	return render.Encode(w, state.Snapshot(), format)
}

// writeAndClose runs write against wc and closes it. A failed close is
// reported unless write already failed.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return write(wc)
}

// parseSelection reads category names; "all" or nothing selects every category.
func parseSelection(names []string) (filter.Selection, error) {
	var sel filter.Selection
	for _, name := range names {
		if name == "all" {
			return filter.All(), nil
		}
		c, err := domain.ParseCategory(name)
		if err != nil {
			return 0, err
		}
		sel = sel.With(c)
	}
	if len(names) == 0 {
		return filter.All(), nil
	}
	return sel, nil
}
