package io

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/curvature/buffer"
	"github.com/phil-mansfield/curvature/geom"
)

func testBuffer() *buffer.PointCloud {
	pc := buffer.New(buffer.Segments, 4)
	pc.AppendSegment(geom.Vec3{1, 2, 3}, geom.Vec3{-1, 0.5, 0}, geom.Vec3{1, 0, 0})
	pc.AppendHidden(geom.Vec3{0, 1, 0})
	pc.Append(geom.Vec3{0, 0, 4}, geom.Vec3{0, 0, 1})
	return pc
}

func TestBufferRoundTrip(t *testing.T) {
	pc := testBuffer()
	buf := &bytes.Buffer{}
	require.NoError(t, WriteBuffer(pc, 0.25, buf))

	out, hd, err := ReadBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultEndiannessFlag, hd.Endianness)
	assert.Equal(t, int64(4), hd.Count)
	assert.Equal(t, 0.25, hd.T)
	assert.Equal(t, pc.Mode, out.Mode)
	assert.Equal(t, pc.Positions, out.Positions)
	assert.Equal(t, pc.Colors, out.Colors)
	assert.True(t, buffer.IsHidden(out.Point(2)))
}

func TestReadBigEndianBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	hd := BufferHeader{0, 40, int64(buffer.Points), 1, 0.5}
	require.NoError(t, binary.Write(buf, binary.BigEndian, &hd))
	require.NoError(t, binary.Write(buf, binary.BigEndian, []float32{1, 2, 3}))
	require.NoError(t, binary.Write(buf, binary.BigEndian, []float32{0, 0, 1}))

	pc, _, err := ReadBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, pc.Positions)
	assert.Equal(t, buffer.Points, pc.Mode)
}

func TestReadBufferErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, &BufferHeader{7, 40, 0, 0, 0})
	_, _, err := ReadBuffer(buf)
	assert.Error(t, err)

	buf.Reset()
	binary.Write(buf, binary.LittleEndian, &BufferHeader{-1, 12, 0, 0, 0})
	_, _, err = ReadBuffer(buf)
	assert.Error(t, err)

	buf.Reset()
	binary.Write(buf, binary.LittleEndian, &BufferHeader{-1, 40, 9, 0, 0})
	_, _, err = ReadBuffer(buf)
	assert.Error(t, err)

	buf.Reset()
	binary.Write(buf, binary.LittleEndian,
		&BufferHeader{-1, 40, 0, MaxBufferCount + 1, 0})
	_, _, err = ReadBuffer(buf)
	assert.Error(t, err)

	// Truncated body.
	buf.Reset()
	binary.Write(buf, binary.LittleEndian, &BufferHeader{-1, 40, 0, 5, 0})
	_, _, err = ReadBuffer(buf)
	assert.Error(t, err)

	bad := &buffer.PointCloud{Positions: []float32{1, 2, 3}}
	assert.Error(t, WriteBuffer(bad, 0, &bytes.Buffer{}))
}

func TestBufferFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "curvature")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fname := path.Join(dir, "grid"+BufferExt)
	require.NoError(t, WriteBufferFile(fname, testBuffer(), 1))
	pc, hd, err := ReadBufferFile(fname)
	require.NoError(t, err)
	assert.Equal(t, 4, pc.Count())
	assert.Equal(t, 1.0, hd.T)

	// A header claiming more points than the file holds.
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian,
		&BufferHeader{-1, 40, 0, MaxBufferCount, 0})
	buf.Write(make([]byte, 10*pointBytes))
	short := path.Join(dir, "short"+BufferExt)
	require.NoError(t, ioutil.WriteFile(short, buf.Bytes(), 0644))
	_, _, err = ReadBufferFile(short)
	assert.Error(t, err)
}

func TestReadInitialConditions(t *testing.T) {
	f, err := ioutil.TempFile("", "ics")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	f.WriteString("1.5708 0 0 0.1\n1.5708 0.5 0.2 -0.3\n")
	f.Close()

	xs, vs, err := ReadInitialConditions(f.Name(), 2)
	require.NoError(t, err)
	require.Len(t, xs, 2)
	assert.Equal(t, []float64{1.5708, 0}, xs[0])
	assert.Equal(t, []float64{0, 0.1}, vs[0])
	assert.Equal(t, []float64{1.5708, 0.5}, xs[1])
	assert.Equal(t, []float64{0.2, -0.3}, vs[1])

	_, _, err = ReadInitialConditions(f.Name(), 0)
	assert.Error(t, err)
}
