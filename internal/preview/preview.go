// Package preview serves a parsed airspace set to map clients as a JSON
// projection, over plain HTTP for one-shot consumers and over a WebSocket
// for clients that want the airspaces streamed one by one.
package preview

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/curbz/openair"
	"github.com/curbz/openair/pkg/geometry"
	"github.com/curbz/openair/pkg/util"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// airspaceView is the JSON projection of one airspace, annotated with its
// rough bounding box and area so a map client can frame it without
// understanding the geometry variants.
type airspaceView struct {
	*openair.Airspace
	Bounds    geometry.Bounds `json:"bounds"`
	RoughArea float64         `json:"roughArea"`
}

func viewOf(a *openair.Airspace) airspaceView {
	return airspaceView{
		Airspace:  a,
		Bounds:    geometry.BoundsOf(a.Geom),
		RoughArea: geometry.RoughArea(a.Geom),
	}
}

// Server holds the airspace set being previewed.
type Server struct {
	airspaces []openair.Airspace
}

// Start serves the given airspaces on the given port (e.g. "8087") until
// the returned server is shut down.
func Start(port string, airspaces []openair.Airspace) *http.Server {
	s := &Server{airspaces: airspaces}

	mux := http.NewServeMux()
	mux.HandleFunc("/airspaces", s.airspacesHandler)
	mux.HandleFunc("/ws", s.wsHandler)

	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		log.Infof("preview: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("preview: ListenAndServe error: %v", err)
		}
	}()
	return srv
}

// airspacesHandler returns the whole set as one JSON array.
func (s *Server) airspacesHandler(w http.ResponseWriter, r *http.Request) {
	views := make([]airspaceView, 0, len(s.airspaces))
	for i := range s.airspaces {
		views = append(views, viewOf(&s.airspaces[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		log.Errorf("preview: encode error: %v", err)
	}
}

// wsHandler streams the airspaces to the client one message at a time,
// followed by a terminating summary message. Each client gets independent
// deep copies, so a slow or misbehaving client can never alias the set
// another client is reading.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("preview: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for i := range s.airspaces {
		msg := map[string]any{
			"type": "airspace",
			"data": viewOf(s.airspaces[i].Clone()),
		}
		if err := util.SendJSON(conn, msg); err != nil {
			log.Errorf("preview: send error: %v", err)
			return
		}
	}

	done := map[string]any{"type": "done", "count": len(s.airspaces)}
	if err := util.SendJSON(conn, done); err != nil {
		log.Errorf("preview: send error: %v", err)
	}
}
