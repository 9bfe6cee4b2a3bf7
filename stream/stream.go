/*package stream serves scene buffers over websockets. A client sends one
Request per animation frame and receives one Frame in reply. Every
connection gets its own Scene and its own spring on the animation
parameter, so clients never see each other's state.
*/
package stream

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/phil-mansfield/curvature/anim"
	"github.com/phil-mansfield/curvature/io"
	"github.com/phil-mansfield/curvature/scene"
)

// Request is sent by the client. T is the animation parameter taken from
// the scroll position. A nil Visible counts as true. Snap skips the spring
// and jumps straight to T.
type Request struct {
	Scene   string  `json:"scene"`
	T       float64 `json:"t"`
	Visible *bool   `json:"visible,omitempty"`
	Snap    bool    `json:"snap,omitempty"`
}

// Frame is the reply to a Request. T is the smoothed animation parameter the
// buffer was built at. Hidden points have their x coordinate set to
// buffer.Sentinel. Poses is only filled in for visuals with markers.
type Frame struct {
	Scene     string    `json:"scene"`
	T         float64   `json:"t"`
	Target    float64   `json:"target"`
	Mode      string    `json:"mode"`
	Count     int       `json:"count"`
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Poses     []Pose    `json:"poses,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Pose places a marker. Rotation holds Euler angles in radians, applied as
// a yaw about y followed by a pitch about x.
type Pose struct {
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	Scale    [3]float64 `json:"scale"`
}

// Server is an http.Handler which upgrades requests to websockets.
type Server struct {
	wrap     *io.SceneWrapper
	upgrader websocket.Upgrader

	clientsMutex sync.RWMutex
	clients      map[*websocket.Conn]*sync.Mutex
}

// NewServer creates a Server whose connections each build a Scene from wrap.
// wrap must already have been checked.
func NewServer(wrap *io.SceneWrapper) *Server {
	return &Server{
		wrap: wrap,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: map[*websocket.Conn]*sync.Mutex{},
	}
}

// Clients returns the number of open connections.
func (s *Server) Clients() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// connection is the state owned by a single client.
type connection struct {
	conn     *websocket.Conn
	mutex    *sync.Mutex
	scene    *scene.Scene
	follower *anim.Follower
	started  bool
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.New(s.wrap)
	if err != nil {
		log.Println("Scene construction error:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	c := &connection{
		conn:  conn,
		mutex: &sync.Mutex{},
		scene: sc,
		follower: anim.NewFollower(
			s.wrap.Spring.FPS, s.wrap.Spring.Frequency, s.wrap.Spring.Damping,
		),
	}
	c.follower.Clamp(s.wrap.Scene.TStart, s.wrap.Scene.TEnd)

	s.clientsMutex.Lock()
	s.clients[conn] = c.mutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	for {
		req := Request{}
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				log.Println("WebSocket read error:", err)
			}
			break
		}

		frame := c.respond(&req)
		c.mutex.Lock()
		err := conn.WriteJSON(frame)
		c.mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			break
		}
	}
}

// respond advances the spring and builds the requested buffer.
func (c *connection) respond(req *Request) *Frame {
	if req.Snap || !c.started {
		c.follower.Snap(req.T)
		c.started = true
	}
	t := c.follower.Update(req.T)

	visible := req.Visible == nil || *req.Visible
	frame := &Frame{Scene: req.Scene, T: t, Target: req.T}

	pc, err := c.scene.Frame(req.Scene, t, visible)
	if err != nil {
		frame.Error = err.Error()
		return frame
	}

	frame.Mode = pc.Mode.String()
	frame.Count = pc.Count()
	frame.Positions = pc.Positions
	frame.Colors = pc.Colors

	poses, err := c.scene.Poses(req.Scene, t)
	if err != nil {
		frame.Error = err.Error()
		return frame
	}
	for _, p := range poses {
		frame.Poses = append(frame.Poses, Pose{
			Position: p.Position, Rotation: p.Rotation, Scale: p.Scale,
		})
	}
	return frame
}

// NewMux routes websocket connections on /ws to s.
func NewMux(s *Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return mux
}
