/*package io contains the configuration files, input tables, and binary output
formats used by the curvature command line tool.
*/
package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/curvature/buffer"
)

const (
	// Endianness flag written by WriteBuffer. Buffers of either endianness
	// can be read.
	DefaultEndiannessFlag int64 = -1
	// Extension given to buffer files.
	BufferExt = ".pcb"
	// MaxBufferCount is the largest point count ReadBuffer will allocate
	// space for.
	MaxBufferCount int64 = 1 << 24
	// Bytes used by one point: three position and three color float32s.
	pointBytes = 6 * 4
)

var end = binary.LittleEndian

/*
The binary format used for point-cloud buffers is as follows:
    |-- 1 --||-- ... 2 ... --||-- ... 3 ... --|

    1 - (BufferHeader) Meta-information about the buffer. Its first field is
        a flag indicating the endianness of the file: 0 indicates a big endian
        byte ordering and -1 indicates a little endian byte order.
    2 - ([][3]float32) Contiguous block of x, y, z positions. Hidden points
        are written as (buffer.Sentinel, 0, 0).
    3 - ([][3]float32) Contiguous block of r, g, b colors in [0, 1].
*/
type BufferHeader struct {
	Endianness int64
	HeaderSize int64
	Mode       int64
	Count      int64
	// T is the animation parameter the buffer was built at.
	T float64
}

// endianness converts an endianness flag to a byte order.
func endianness(flag int64) (binary.ByteOrder, error) {
	switch flag {
	case -1:
		return binary.LittleEndian, nil
	case 0:
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("Unrecognized endianness flag, %d.", flag)
}

// WriteBuffer writes a point cloud built at animation parameter t to wr.
func WriteBuffer(pc *buffer.PointCloud, t float64, wr io.Writer) error {
	if len(pc.Colors) != len(pc.Positions) {
		return fmt.Errorf(
			"Buffer has %d position values but %d color values.",
			len(pc.Positions), len(pc.Colors),
		)
	}

	hd := BufferHeader{}
	hd.Endianness = DefaultEndiannessFlag
	hd.HeaderSize = int64(unsafe.Sizeof(hd))
	hd.Mode = int64(pc.Mode)
	hd.Count = int64(pc.Count())
	hd.T = t

	if err := binary.Write(wr, end, &hd); err != nil {
		return err
	}
	if err := binary.Write(wr, end, pc.Positions); err != nil {
		return err
	}
	return binary.Write(wr, end, pc.Colors)
}

// ReadBuffer reads a point cloud written by WriteBuffer. Buffers with more
// than MaxBufferCount points are rejected before anything is allocated.
func ReadBuffer(rd io.Reader) (*buffer.PointCloud, *BufferHeader, error) {
	return readBuffer(rd, MaxBufferCount)
}

func readBuffer(
	rd io.Reader, maxCount int64,
) (*buffer.PointCloud, *BufferHeader, error) {
	hd := &BufferHeader{}

	// The flag is symmetric under byte swaps, so the order used for this
	// read doesn't matter.
	if err := binary.Read(rd, binary.LittleEndian, &hd.Endianness); err != nil {
		return nil, nil, err
	}
	order, err := endianness(hd.Endianness)
	if err != nil {
		return nil, nil, err
	}

	rest := []interface{}{&hd.HeaderSize, &hd.Mode, &hd.Count, &hd.T}
	for _, x := range rest {
		if err := binary.Read(rd, order, x); err != nil {
			return nil, nil, err
		}
	}

	if hd.HeaderSize != int64(unsafe.Sizeof(BufferHeader{})) {
		return nil, nil, fmt.Errorf(
			"Expected BufferHeader size of %d, found %d.",
			unsafe.Sizeof(BufferHeader{}), hd.HeaderSize,
		)
	} else if hd.Count < 0 {
		return nil, nil, fmt.Errorf("Buffer has negative count %d.", hd.Count)
	} else if hd.Count > maxCount {
		return nil, nil, fmt.Errorf(
			"Buffer claims %d points, but at most %d can be read.",
			hd.Count, maxCount,
		)
	}

	mode := buffer.Mode(hd.Mode)
	if mode != buffer.Points && mode != buffer.Segments {
		return nil, nil, fmt.Errorf("Unrecognized draw mode %d.", hd.Mode)
	}

	pc := &buffer.PointCloud{
		Mode:      mode,
		Positions: make([]float32, 3*hd.Count),
		Colors:    make([]float32, 3*hd.Count),
	}
	if err := binary.Read(rd, order, pc.Positions); err != nil {
		return nil, nil, err
	}
	if err := binary.Read(rd, order, pc.Colors); err != nil {
		return nil, nil, err
	}
	return pc, hd, nil
}

// WriteBufferFile writes a buffer to the named file.
func WriteBufferFile(fname string, pc *buffer.PointCloud, t float64) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err = WriteBuffer(pc, t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadBufferFile reads a buffer from the named file. The point count in the
// header must fit in the file.
func ReadBufferFile(fname string) (*buffer.PointCloud, *BufferHeader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	body := info.Size() - int64(unsafe.Sizeof(BufferHeader{}))
	maxCount := MaxBufferCount
	if n := body / pointBytes; n < maxCount {
		maxCount = n
	}
	return readBuffer(f, maxCount)
}

// ReadInitialConditions reads a whitespace-separated table where each row is
// a geodesic's initial position followed by its initial velocity, dim
// columns each.
func ReadInitialConditions(fname string, dim int) (xs, vs [][]float64, err error) {
	if dim <= 0 {
		return nil, nil, fmt.Errorf("Dimension must be positive, got %d.", dim)
	}

	colIdxs := make([]int, 2*dim)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, nil, err
	}

	n := len(cols[0])
	xs, vs = make([][]float64, n), make([][]float64, n)
	for row := 0; row < n; row++ {
		xs[row], vs[row] = make([]float64, dim), make([]float64, dim)
		for k := 0; k < dim; k++ {
			xs[row][k] = cols[k][row]
			vs[row][k] = cols[dim+k][row]
		}
	}
	return xs, vs, nil
}
