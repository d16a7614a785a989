// Command formgrid renders a sample order grid to a PNG.
//
// It loads a form from YAML templates, fills it with rows, replays a short
// gesture (tick a checkbox, type into a textbox, drag a frame) and saves the
// final frame. The built-in templates are used unless -templates names a
// directory of "<name>.yaml" files.
package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/editor"
	"github.com/gogpu/formgrid/grid"
	"github.com/gogpu/formgrid/interact"
	"github.com/gogpu/formgrid/layout"
	"github.com/gogpu/formgrid/rows"
	"github.com/gogpu/formgrid/surface"
)

//go:embed templates/*.yaml
var builtin embed.FS

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 400, "image height")
		nrows   = flag.Int("rows", 200, "number of data rows")
		zoom    = flag.Float64("zoom", 1, "viewport zoom")
		scroll  = flag.Float64("scroll", 0, "vertical scroll offset in design units")
		pool    = flag.Int("pool", editor.DefaultPoolSize, "live controls per kind")
		output  = flag.String("output", "formgrid.png", "output file")
		dir     = flag.String("templates", "", "directory of YAML templates")
		name    = flag.String("form", "order", "template to load")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	formgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var src fs.FS
	if *dir != "" {
		src = os.DirFS(*dir)
	} else {
		sub, err := fs.Sub(builtin, "templates")
		if err != nil {
			log.Fatalf("Failed to open templates: %v", err)
		}
		src = sub
	}
	form, err := layout.Load(*name, layout.FSLoader{FS: src})
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	host := surface.New(*width, *height)
	host.SetViewport(surface.Viewport{Pan: formgrid.Pt(0, *scroll), Zoom: *zoom})
	eng := grid.New(host, form, nil, grid.WithPoolSize(*pool))
	extent := host.HostToDesign(formgrid.Pt(float64(*width), float64(*height))).Sub(host.HostToDesign(formgrid.Point{}))
	eng.SetViewportSize(formgrid.Sz(extent.X, extent.Y))
	eng.SetHandlers(grid.Handlers{
		OnValueChanged: func(id rows.CellID, v content.Value) {
			slog.Info("value changed", "row", id.Row, "field", id.Field, "value", v)
		},
		OnAction: func(id rows.CellID, a grid.Action, p content.Value) {
			slog.Info("action", "row", id.Row, "field", id.Field, "action", a, "payload", p)
		},
		OnFrameSelect: func(r formgrid.Rect, ids []rows.CellID) {
			slog.Info("frame selected", "rect", r, "cells", len(ids))
		},
	})

	for i := range *nrows {
		_, err := eng.AddRow(map[string]content.Value{
			"sku":      content.String(fmt.Sprintf("SKU-%04d", i+1)),
			"qty":      content.Int(int64(i%7 + 1)),
			"shipped":  content.Bool(i%3 == 0),
			"priority": content.String([]string{"low", "normal", "high"}[i%3]),
		})
		if err != nil {
			log.Fatalf("Failed to add row: %v", err)
		}
	}

	// The visible design-space rectangle.
	view := formgrid.RectFromPoints(
		host.HostToDesign(formgrid.Pt(0, 0)),
		host.HostToDesign(formgrid.Pt(float64(*width), float64(*height))),
	)
	paint := func() {
		host.Clear(formgrid.White)
		if err := eng.Paint(view); err != nil {
			slog.Warn("paint", "err", err)
		}
	}
	paint()

	replay(eng, host, paint)
	paint()
	host.Flush()

	if err := host.Bitmap().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	st := eng.Repository().Stats()
	log.Printf("Grid saved to %s (%dx%d): %d rasterizations, cache hit rate %.2f\n",
		*output, *width, *height, st.Rasterizations, st.Cache.HitRate)
}

// replay drives a few gestures through the engine in host coordinates.
func replay(eng *grid.Engine, host *surface.Host, paint func()) {
	if eng.Rows().Len() < 3 {
		return
	}
	at := func(x, y float64) formgrid.Point { return host.DesignToHost(formgrid.Pt(x, y)) }
	now := time.Now()
	send := func(k interact.PointerKind, p formgrid.Point) {
		now = now.Add(40 * time.Millisecond)
		eng.HandlePointer(interact.PointerEvent{Kind: k, Pos: p, Time: now})
	}

	// Tick the checkbox of the second row.
	row2 := eng.Rows().Rows()[1].Band().Y
	send(interact.Down, at(262, row2+14))
	send(interact.Up, at(262, row2+14))

	// Type into the first row's quantity.
	first := eng.Rows().Rows()[0].ID()
	if err := eng.Focus(rows.CellID{Row: first, Field: "qty"}); err == nil {
		paint()
		if ctl, ok := eng.Repository().Live(eng.Focused()); ok {
			if sc, ok := ctl.(*surface.Control); ok {
				sc.Type("12")
			}
		}
		eng.HandleKey(interact.KeyEvent{Key: interact.KeyTab})
	}

	// Frame-select the right-hand block of rows three to five.
	start := eng.Rows().Rows()[2].Band().Y
	send(interact.Down, at(596, start+2))
	send(interact.Move, at(300, start+80))
	paint()
	send(interact.Up, at(300, start+80))
}
