package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"git.arvados.org/plopaf.git/dotplot"
)

// exportCoords writes one tab-separated line per match segment:
// query, target, op, x, rev, y, len.
type exportCoords struct{}

func (cmd *exportCoords) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	primaryOnly := flags.Bool("primary", false, "skip secondary alignments")
	outputFilename := flags.String("o", "-", "output `file`")
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

	if *pprof != "" {
		startDebugServer(*pprof)
	}

	stream, _, err := openSegments(flags.Arg(0), *primaryOnly)
	if err != nil {
		return 1
	}
	defer stream.Close()

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	err = eachSegment(stream, func(seg dotplot.Segment) error {
		_, err := fmt.Fprintf(bufw, "%s\t%s\t%s\t%d\t%v\t%d\t%d\n", seg.QueryName, seg.TargetName, seg.Op, seg.X, seg.Reverse, seg.Y, seg.Len)
		return err
	})
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
