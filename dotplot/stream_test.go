package dotplot

import (
	"errors"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"git.arvados.org/plopaf.git/paf"
	"gopkg.in/check.v1"
)

type streamSuite struct{}

var _ = check.Suite(&streamSuite{})

type sliceReader struct {
	recs   []*paf.Record
	reads  int
	closed bool
}

func (r *sliceReader) Read() (*paf.Record, error) {
	if r.reads >= len(r.recs) {
		return nil, io.EOF
	}
	r.reads++
	return r.recs[r.reads-1], nil
}

func (r *sliceReader) Close() error {
	r.closed = true
	return nil
}

func sliceOpener(opened *int, recs ...*paf.Record) Opener {
	return func() (RecordReader, error) {
		*opened++
		return &sliceReader{recs: recs}, nil
	}
}

type countingDecoder struct {
	calls int
}

func (d *countingDecoder) Decode(rec *paf.Record) (Segments, error) {
	d.calls++
	return Segments{{Op: OpMatch, Len: 1, QueryName: rec.QueryName}}, nil
}

func mustParse(c *check.C, lines ...string) []*paf.Record {
	var recs []*paf.Record
	for i, line := range lines {
		rec, err := paf.Parse(line, i+1)
		c.Assert(err, check.IsNil)
		recs = append(recs, rec)
	}
	return recs
}

var streamPAF = []string{
	"q1\t1000\t0\t100\t+\tt1\t2000\t10\t110\t100\t100\t60\ttp:A:P\tcg:Z:100M",
	"q2\t500\t0\t50\t-\tt1\t2000\t200\t245\t45\t50\t60\ttp:A:P\tcg:Z:20M5I25M",
	"q1\t1000\t500\t600\t+\tt2\t3000\t0\t100\t100\t100\t0\ttp:A:S\tcg:Z:100M",
}

func (s *streamSuite) TestPrimaryOnlySkipsDecode(c *check.C) {
	recs := mustParse(c, streamPAF...)
	dec := &countingDecoder{}
	stream := NewStream(&sliceReader{recs: recs}, dec, true)
	all, err := Collect(stream)
	c.Assert(err, check.IsNil)
	c.Check(all, check.HasLen, 3)
	c.Check(all[2], check.HasLen, 0)
	c.Check(dec.calls, check.Equals, 2)
	decoded, skipped := stream.Stats()
	c.Check(decoded, check.Equals, 2)
	c.Check(skipped, check.Equals, 1)

	dec = &countingDecoder{}
	stream = NewStream(&sliceReader{recs: recs}, dec, false)
	all, err = Collect(stream)
	c.Assert(err, check.IsNil)
	c.Check(all[2], check.HasLen, 1)
	c.Check(dec.calls, check.Equals, 3)
}

func (s *streamSuite) TestOneReadPerPull(c *check.C) {
	rdr := &sliceReader{recs: mustParse(c, streamPAF...)}
	stream := NewStream(rdr, &countingDecoder{}, true)
	for i := 1; i <= 3; i++ {
		_, err := stream.Next()
		c.Assert(err, check.IsNil)
		c.Check(rdr.reads, check.Equals, i)
	}
	_, err := stream.Next()
	c.Check(err, check.Equals, io.EOF)
	_, err = stream.Next()
	c.Check(err, check.Equals, io.EOF)
	c.Check(stream.Close(), check.IsNil)
	c.Check(rdr.closed, check.Equals, true)
}

func (s *streamSuite) TestErrorIsSticky(c *check.C) {
	recs := mustParse(c, streamPAF...)
	layoutRecs := recs[:1]
	layout, err := BuildLayout(sliceOpener(new(int), layoutRecs...))
	c.Assert(err, check.IsNil)
	rdr := &sliceReader{recs: recs}
	stream := NewStream(rdr, NewDecoder(layout.Query, layout.Target), false)
	_, err = stream.Next()
	c.Assert(err, check.IsNil)
	_, err = stream.Next()
	var unknown *UnknownNameError
	c.Check(errors.As(err, &unknown), check.Equals, true)
	_, err2 := stream.Next()
	c.Check(err2, check.Equals, err)
	c.Check(rdr.reads, check.Equals, 2)
}

func (s *streamSuite) TestBuildLayout(c *check.C) {
	opened := 0
	layout, err := BuildLayout(sliceOpener(&opened, mustParse(c, streamPAF...)...))
	c.Assert(err, check.IsNil)
	c.Check(opened, check.Equals, 2)
	c.Check(layout.Query.Len(), check.Equals, 2)
	c.Check(layout.Target.Len(), check.Equals, 2)
	c.Check(layout.Query.Length(), check.Equals, uint64(1500))
	c.Check(layout.Target.Length(), check.Equals, uint64(5000))

	stream := NewStream(&sliceReader{recs: mustParse(c, streamPAF...)}, NewDecoder(layout.Query, layout.Target), false)
	all, err := Collect(stream)
	c.Assert(err, check.IsNil)
	c.Check(all, check.DeepEquals, []Segments{
		{{Op: OpMatch, X: 0, Y: 3010, Len: 100, QueryName: "q1", TargetName: "t1"}},
		{
			{Op: OpMatch, X: 1050, Y: 3200, Len: 20, Reverse: true, QueryName: "q2", TargetName: "t1"},
			{Op: OpMatch, X: 1025, Y: 3220, Len: 25, Reverse: true, QueryName: "q2", TargetName: "t1"},
		},
		{{Op: OpMatch, X: 500, Y: 0, Len: 100, QueryName: "q1", TargetName: "t2"}},
	})
}

func (s *streamSuite) TestBuildLayoutErrors(c *check.C) {
	_, err := BuildLayout(sliceOpener(new(int)))
	var empty *EmptyAxisError
	c.Check(errors.As(err, &empty), check.Equals, true)
	c.Check(empty.Axis, check.Equals, QueryAxis)

	recs := mustParse(c, streamPAF[0], "q3\t10\t0\t10\t+\tt2\t3000\t0\t10\t10\t10\t0")
	opened := 0
	_, err = BuildLayout(sliceOpener(&opened, recs...))
	var missing *MissingCigarError
	c.Check(errors.As(err, &missing), check.Equals, true)
	c.Check(missing.Line, check.Equals, 2)
	c.Check(opened, check.Equals, 1)

	boom := errors.New("boom")
	_, err = BuildLayout(func() (RecordReader, error) { return nil, boom })
	c.Check(err, check.Equals, boom)
}

func (s *streamSuite) TestOpenFile(c *check.C) {
	tempdir, err := ioutil.TempDir("", "")
	c.Assert(err, check.IsNil)
	defer os.RemoveAll(tempdir)
	err = ioutil.WriteFile(tempdir+"/test.paf", []byte(strings.Join(streamPAF, "\n")+"\n"), 0600)
	c.Assert(err, check.IsNil)

	stream, layout, err := Open(tempdir+"/test.paf", true)
	c.Assert(err, check.IsNil)
	defer stream.Close()
	c.Check(layout.Query.Length(), check.Equals, uint64(1500))
	all, err := Collect(stream)
	c.Assert(err, check.IsNil)
	c.Check(all, check.HasLen, 3)
	c.Check(all[0], check.HasLen, 1)
	c.Check(all[1], check.HasLen, 2)
	c.Check(all[2], check.HasLen, 0)
}

func (s *streamSuite) TestOpenErrors(c *check.C) {
	_, _, err := Open("/nonexistent/test.paf", false)
	var ioerr *InputIOError
	c.Assert(errors.As(err, &ioerr), check.Equals, true)
	c.Check(ioerr.Path, check.Equals, "/nonexistent/test.paf")
	c.Check(os.IsNotExist(ioerr.Err), check.Equals, true)

	tempdir, err := ioutil.TempDir("", "")
	c.Assert(err, check.IsNil)
	defer os.RemoveAll(tempdir)
	err = ioutil.WriteFile(tempdir+"/bad.paf", []byte(streamPAF[0]+"\nq1\t1000\n"), 0600)
	c.Assert(err, check.IsNil)
	_, _, err = Open(tempdir+"/bad.paf", false)
	var perr *paf.ParseError
	c.Check(errors.As(err, &perr), check.Equals, true)
	c.Check(err, check.ErrorMatches, `.*/bad.paf: line 2: expected at least 12 tab-separated fields, found 2`)
}
