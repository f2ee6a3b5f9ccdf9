package main

import (
	"io"
	"os"
	"time"

	"git.arvados.org/plopaf.git/dotplot"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// openSegments lays out the query and target axes of the PAF file at
// path and returns a stream over its records.
func openSegments(path string, primaryOnly bool) (*dotplot.Stream, *dotplot.Layout, error) {
	starttime := time.Now()
	log.Printf("%s: layout starting", path)
	stream, layout, err := dotplot.Open(path, primaryOnly)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("%s: layout done in %v: %s query sequences (%s bp), %s target sequences (%s bp)",
		path, time.Since(starttime).Round(time.Millisecond),
		humanize.Comma(int64(layout.Query.Len())), humanize.Comma(int64(layout.Query.Length())),
		humanize.Comma(int64(layout.Target.Len())), humanize.Comma(int64(layout.Target.Length())))
	return stream, layout, nil
}

// eachSegment calls fn for every segment in the stream, in input
// order.
func eachSegment(stream *dotplot.Stream, fn func(dotplot.Segment) error) error {
	var nsegs int64
	decoded, skipped := stream.Stats()
	for {
		segs, err := stream.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		d, s := stream.Stats()
		recordsDecoded.Add(float64(d - decoded))
		recordsSkipped.Add(float64(s - skipped))
		decoded, skipped = d, s
		segmentsEmitted.Add(float64(len(segs)))
		nsegs += int64(len(segs))
		for _, seg := range segs {
			if err := fn(seg); err != nil {
				return err
			}
		}
	}
	log.Printf("decoded %s records (skipped %s secondary), %s segments",
		humanize.Comma(int64(decoded)), humanize.Comma(int64(skipped)), humanize.Comma(nsegs))
	return nil
}

// createOutput opens the named output file, or returns stdout if
// name is "" or "-".
func createOutput(name string, stdout io.Writer) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopCloser{stdout}, nil
	}
	return os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
}
