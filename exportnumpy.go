package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"git.arvados.org/plopaf.git/dotplot"
	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
)

// exportNumpy writes match segments as an N×4 int64 array with
// columns x, y, len, rev (0 or 1).
type exportNumpy struct{}

func (cmd *exportNumpy) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
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

	var out []int64
	err = eachSegment(stream, func(seg dotplot.Segment) error {
		rev := int64(0)
		if seg.Reverse {
			rev = 1
		}
		out = append(out, int64(seg.X), int64(seg.Y), int64(seg.Len), rev)
		return nil
	})
	if err != nil {
		return 1
	}
	rows := len(out) / 4

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return 1
	}
	npw.Shape = []int{rows, 4}
	log.Printf("writing %d×4 array", rows)
	err = npw.WriteInt64(out)
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

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
