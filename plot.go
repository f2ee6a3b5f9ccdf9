package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"git.arvados.org/arvados.git/sdk/go/arvados"
	"git.arvados.org/plopaf.git/dotplot"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

type plotter struct{}

func (cmd *plotter) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	outputFilename := flags.String("o", "plopaf.png", "output PNG `file`")
	primaryOnly := flags.Bool("primary", false, "skip secondary alignments")
	width := flags.Int("width", 0, "image width in `pixels` (default 640, or width from -config)")
	height := flags.Int("height", 0, "image height in `pixels` (default 480, or height from -config)")
	configFile := flags.String("config", "", "YAML plot style `file`")
	projectUUID := flags.String("project", "", "run in an arvados container, saving output in project `UUID`")
	priority := flags.Int("priority", 500, "container request priority")
	pprof := flags.String("pprof", "", "serve Go profile data and metrics at http://`[addr]:port`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() != 1 {
		err = fmt.Errorf("usage: %s [options] input.paf", prog)
		return 2
	}
	inputFilename := flags.Arg(0)

	cfg, err := loadPlotConfig(*configFile)
	if err != nil {
		return 2
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}

	if *projectUUID != "" {
		if *configFile != "" {
			err = errors.New("cannot use -config in container mode: not implemented")
			return 2
		}
		runner := arvadosContainerRunner{
			Name:        "plopaf plot",
			Client:      arvados.NewClientFromEnv(),
			ProjectUUID: *projectUUID,
			RAM:         8 << 30,
			VCPUs:       1,
			Priority:    *priority,
		}
		err = runner.TranslatePaths(&inputFilename)
		if err != nil {
			return 1
		}
		outname := filepath.Base(*outputFilename)
		runner.Args = []string{"plot",
			"-primary=" + strconv.FormatBool(*primaryOnly),
			"-width=" + strconv.Itoa(cfg.Width),
			"-height=" + strconv.Itoa(cfg.Height),
			"-o", "/mnt/output/" + outname,
			inputFilename}
		var crUUID string
		crUUID, err = runner.Run()
		if err != nil {
			return 1
		}
		fmt.Fprintln(stdout, crUUID)
		return 0
	}

	if *pprof != "" {
		startDebugServer(*pprof)
	}

	stream, _, err := openSegments(inputFilename, *primaryOnly)
	if err != nil {
		return 1
	}
	defer stream.Close()
	dp := &dotplotter{
		forward: cfg.lineStyle(cfg.ForwardColor),
		reverse: cfg.lineStyle(cfg.ReverseColor),
	}
	err = eachSegment(stream, func(seg dotplot.Segment) error {
		dp.add(seg)
		return nil
	})
	if err != nil {
		return 1
	}
	if len(dp.runs) == 0 {
		err = fmt.Errorf("%s: no alignments to plot", inputFilename)
		return 1
	}

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	log.Printf("rendering %d segments to %dx%d image", len(dp.runs), cfg.Width, cfg.Height)
	err = renderDotplot(bufw, dp, cfg)
	if err != nil {
		return 1
	}
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}
	return 0
}

// renderDotplot draws dp as a PNG image.
func renderDotplot(w io.Writer, dp *dotplotter, cfg plotConfig) error {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "query"
	p.Y.Label.Text = "target"
	p.X.Tick.Marker = magnitudeTicks{}
	p.Y.Tick.Marker = magnitudeTicks{}
	p.Add(dp)

	// at 72 dpi one point is one pixel
	c := vgimg.NewWith(vgimg.UseWH(vg.Length(cfg.Width), vg.Length(cfg.Height)), vgimg.UseDPI(72))
	p.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

type segmentRun struct {
	x, y, len uint64
	rev       bool
}

// dotplotter is a gonum plot.Plotter that draws each match segment
// as a diagonal run: up and to the right on the forward strand, up
// and to the left on the reverse strand.
type dotplotter struct {
	runs       []segmentRun
	maxX, maxY uint64
	forward    draw.LineStyle
	reverse    draw.LineStyle
}

func (dp *dotplotter) add(seg dotplot.Segment) {
	dp.runs = append(dp.runs, segmentRun{x: seg.X, y: seg.Y, len: seg.Len, rev: seg.Reverse})
	xend := seg.X
	if !seg.Reverse {
		xend += seg.Len
	}
	if dp.maxX < xend {
		dp.maxX = xend
	}
	if yend := seg.Y + seg.Len; dp.maxY < yend {
		dp.maxY = yend
	}
}

func (dp *dotplotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, run := range dp.runs {
		x0, y0 := float64(run.x), float64(run.y)
		x1, y1 := x0+float64(run.len), y0+float64(run.len)
		sty := dp.forward
		if run.rev {
			x1 = x0 - float64(run.len)
			sty = dp.reverse
		}
		c.StrokeLine2(sty, trX(x0), trY(y0), trX(x1), trY(y1))
	}
}

func (dp *dotplotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, float64(dp.maxX), 0, float64(dp.maxY)
}

// magnitudeTicks places ticks like plot.DefaultTicks but labels them
// with formatAxisNumber.
type magnitudeTicks struct{}

func (magnitudeTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		if t.Value < 0 {
			ticks[i].Label = "0"
			continue
		}
		ticks[i].Label = formatAxisNumber(uint64(t.Value))
	}
	return ticks
}

// formatAxisNumber abbreviates n with a K or M suffix.
func formatAxisNumber(n uint64) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return strconv.FormatUint(n, 10)
	}
}
