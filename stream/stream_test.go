package stream

import (
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/curvature/io"
	"github.com/phil-mansfield/curvature/scene"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	wrap := io.DefaultSceneWrapper()
	wrap.Scene.Visuals = "Grid, Particles, Morph, Geodesic"
	wrap.Particles.Count = 100
	wrap.Grid.Lines = 4
	wrap.Morph.Segments = 4
	require.NoError(t, wrap.Check())

	s := NewServer(wrap)
	return s, httptest.NewServer(NewMux(s))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) *Frame {
	require.NoError(t, conn.WriteJSON(req))
	frame := &Frame{}
	require.NoError(t, conn.ReadJSON(frame))
	return frame
}

func TestFrame(t *testing.T) {
	_, srv := testServer(t)
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	frame := roundTrip(t, conn, Request{Scene: "grid", T: 0.5})
	assert.Empty(t, frame.Error)
	assert.Equal(t, "grid", frame.Scene)
	assert.Equal(t, 0.5, frame.T)
	assert.Equal(t, "segments", frame.Mode)
	assert.True(t, frame.Count > 0)
	assert.Len(t, frame.Positions, 3*frame.Count)
	assert.Len(t, frame.Colors, 3*frame.Count)
}

func TestPoses(t *testing.T) {
	s, srv := testServer(t)
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	frame := roundTrip(t, conn, Request{Scene: "geodesic", T: 1})
	require.Empty(t, frame.Error)
	x0s, _ := scene.FanInitialConditions(2)
	require.Len(t, frame.Poses, len(x0s))
	for _, p := range frame.Poses {
		r := math.Sqrt(p.Position[0]*p.Position[0] +
			p.Position[1]*p.Position[1] + p.Position[2]*p.Position[2])
		assert.InDelta(t, s.wrap.Geodesic.Radius, r, 1e-9)
		assert.Equal(t, [3]float64{1, 1, 1}, p.Scale)
	}

	frame = roundTrip(t, conn, Request{Scene: "grid", T: 1})
	assert.Empty(t, frame.Error)
	assert.Empty(t, frame.Poses)
}

func TestSpring(t *testing.T) {
	_, srv := testServer(t)
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	roundTrip(t, conn, Request{Scene: "morph", T: 0})
	frame := roundTrip(t, conn, Request{Scene: "morph", T: 1})
	assert.True(t, frame.T > 0 && frame.T < 1, "t = %g", frame.T)
	assert.Equal(t, 1.0, frame.Target)

	frame = roundTrip(t, conn, Request{Scene: "morph", T: 1, Snap: true})
	assert.Equal(t, 1.0, frame.T)
}

func TestUnknownScene(t *testing.T) {
	_, srv := testServer(t)
	defer srv.Close()
	conn := dial(t, srv)
	defer conn.Close()

	frame := roundTrip(t, conn, Request{Scene: "teapot", T: 0})
	assert.NotEmpty(t, frame.Error)
	assert.Equal(t, 0, frame.Count)

	// The connection survives a bad request.
	frame = roundTrip(t, conn, Request{Scene: "particles", T: 0})
	assert.Empty(t, frame.Error)
	assert.Equal(t, "points", frame.Mode)
}

func TestIndependentConnections(t *testing.T) {
	s, srv := testServer(t)
	defer srv.Close()
	a, b := dial(t, srv), dial(t, srv)

	hidden := false
	fa := roundTrip(t, a, Request{Scene: "particles", T: 0, Visible: &hidden})
	fb := roundTrip(t, b, Request{Scene: "particles", T: 0, Visible: &hidden})
	// Same seed, separate systems.
	assert.Equal(t, fa.Positions, fb.Positions)

	fa = roundTrip(t, a, Request{Scene: "particles", T: 0})
	fb = roundTrip(t, b, Request{Scene: "particles", T: 0, Visible: &hidden})
	assert.NotEqual(t, fa.Positions, fb.Positions)
	assert.Equal(t, 2, s.Clients())

	a.Close()
	b.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 },
		time.Second, 10*time.Millisecond)
}
