package main

import (
	"bytes"
	"os"

	"github.com/kshedden/gonpy"
	"gopkg.in/check.v1"
)

type exportSuite struct{}

var _ = check.Suite(&exportSuite{})

func (s *exportSuite) TestPAFToNumpy(c *check.C) {
	var output bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"testdata/small.paf"}, nil, &output, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	npy, err := gonpy.NewReader(&output)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{4, 4})
	segs, err := npy.GetInt64()
	c.Assert(err, check.IsNil)
	c.Check(segs, check.DeepEquals, []int64{
		0, 3010, 100, 0,
		1050, 3200, 20, 1,
		1025, 3220, 25, 1,
		500, 0, 100, 0,
	})
}

func (s *exportSuite) TestPrimaryOnly(c *check.C) {
	var output bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"-primary", "testdata/small.paf"}, nil, &output, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	npy, err := gonpy.NewReader(&output)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{3, 4})
}
