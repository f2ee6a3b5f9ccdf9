package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"git.arvados.org/plopaf.git/paf"
	log "github.com/sirupsen/logrus"
)

// filterer copies PAF records from stdin to stdout, dropping those
// that fail the given thresholds.
type filterer struct{}

func (cmd *filterer) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	primaryOnly := flags.Bool("primary", false, "drop secondary alignments")
	minBlock := flags.Uint64("min-block", 0, "drop alignments with block length less than `N`")
	minMapQ := flags.Uint64("min-mapq", 0, "drop alignments with mapping quality less than `Q`")
	requireCigar := flags.Bool("require-cigar", false, "drop alignments without a cg:Z: tag")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() != 0 {
		err = fmt.Errorf("usage: %s [options] <input.paf >output.paf", prog)
		return 2
	}

	log.Print("filtering")
	rdr := paf.NewReader(stdin)
	w := bufio.NewWriter(stdout)
	var kept, dropped int
	for {
		var rec *paf.Record
		rec, err = rdr.Read()
		if err == io.EOF {
			err = nil
			break
		} else if err != nil {
			return 1
		}
		if (*primaryOnly && rec.IsSecondary()) ||
			rec.BlockLen < *minBlock ||
			rec.MapQ < *minMapQ ||
			(*requireCigar && !rec.HasCigar) {
			dropped++
			continue
		}
		kept++
		_, err = fmt.Fprintln(w, rec.Raw)
		if err != nil {
			return 1
		}
	}
	log.Printf("filtering done, kept %d, dropped %d", kept, dropped)
	err = w.Flush()
	if err != nil {
		return 1
	}
	return 0
}
