package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"git.arvados.org/plopaf.git/dotplot"
)

// showAxes prints the layout of both axes, one sequence per line in
// rank order: axis, rank, offset, length, name, identity.
type showAxes struct{}

func (cmd *showAxes) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	outputFilename := flags.String("o", "-", "output `file`")
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

	layout, err := dotplot.BuildLayout(dotplot.FileOpener(flags.Arg(0)))
	if err != nil {
		return 1
	}
	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	for _, axis := range []*dotplot.Axis{layout.Query, layout.Target} {
		for _, e := range axis.Ranked() {
			fmt.Fprintf(bufw, "%s\t%d\t%d\t%d\t%s\t%d\n", axis.Kind(), e.Rank, e.Offset, e.Length, e.Name, e.Identity)
		}
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
