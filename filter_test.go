package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"

	"gopkg.in/check.v1"
)

type filterSuite struct{}

var _ = check.Suite(&filterSuite{})

func (s *filterSuite) TestFilter(c *check.C) {
	input, err := ioutil.ReadFile("testdata/small.paf")
	c.Assert(err, check.IsNil)
	lines := strings.SplitAfter(string(input), "\n")

	for _, trial := range []struct {
		args   []string
		expect string
	}{
		{nil, lines[0] + lines[1] + lines[2]},
		{[]string{"-primary"}, lines[0] + lines[1]},
		{[]string{"-min-mapq", "1"}, lines[0] + lines[1]},
		{[]string{"-min-block", "60"}, lines[0] + lines[2]},
		{[]string{"-primary", "-min-block", "60"}, lines[0]},
	} {
		c.Logf("%v", trial.args)
		var stdout bytes.Buffer
		exited := (&filterer{}).RunCommand("filter", trial.args, bytes.NewReader(input), &stdout, os.Stderr)
		c.Check(exited, check.Equals, 0)
		c.Check(stdout.String(), check.Equals, trial.expect)
	}
}

func (s *filterSuite) TestRequireCigar(c *check.C) {
	input, err := ioutil.ReadFile("testdata/nocigar.paf")
	c.Assert(err, check.IsNil)
	var stdout bytes.Buffer
	exited := (&filterer{}).RunCommand("filter", []string{"-require-cigar"}, bytes.NewReader(input), &stdout, os.Stderr)
	c.Check(exited, check.Equals, 0)
	c.Check(stdout.String(), check.Equals, strings.SplitAfter(string(input), "\n")[0])
}

func (s *filterSuite) TestCRLFInput(c *check.C) {
	input, err := ioutil.ReadFile("testdata/small.paf")
	c.Assert(err, check.IsNil)
	crlf := strings.Replace(string(input), "\n", "\r\n", -1)
	var stdout bytes.Buffer
	exited := (&filterer{}).RunCommand("filter", []string{"-primary"}, strings.NewReader(crlf), &stdout, os.Stderr)
	c.Check(exited, check.Equals, 0)
	lines := strings.SplitAfter(string(input), "\n")
	c.Check(stdout.String(), check.Equals, lines[0]+lines[1])
}

func (s *filterSuite) TestBadInput(c *check.C) {
	var stdout, stderr bytes.Buffer
	exited := (&filterer{}).RunCommand("filter", nil, strings.NewReader("q1\t1000\n"), &stdout, &stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stderr.String(), check.Equals, "line 1: expected at least 12 tab-separated fields, found 2\n")
}
