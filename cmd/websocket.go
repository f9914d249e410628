package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"servicehub/internal/models"
)

const (
	readLimit     = 512
	readDeadline  = 60 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 25 * time.Second
	sendBuffer    = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type ratingClient struct {
	serviceID int64
	conn      *websocket.Conn
	send      chan models.RatingUpdate
}

// RatingHub fans rating updates out to the websocket subscribers of each
// service. All subscriber bookkeeping happens in Run.
type RatingHub struct {
	log        zerolog.Logger
	clients    map[int64]map[*ratingClient]struct{}
	register   chan *ratingClient
	unregister chan *ratingClient
	broadcast  chan models.RatingUpdate
	done       chan struct{}
}

func NewRatingHub(log zerolog.Logger) *RatingHub {
	return &RatingHub{
		log:        log,
		clients:    make(map[int64]map[*ratingClient]struct{}),
		register:   make(chan *ratingClient),
		unregister: make(chan *ratingClient),
		broadcast:  make(chan models.RatingUpdate, 64),
		done:       make(chan struct{}),
	}
}

func (h *RatingHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[int64]map[*ratingClient]struct{})
			return

		case c := <-h.register:
			set, ok := h.clients[c.serviceID]
			if !ok {
				set = make(map[*ratingClient]struct{})
				h.clients[c.serviceID] = set
			}
			set[c] = struct{}{}

		case c := <-h.unregister:
			h.drop(c)

		case u := <-h.broadcast:
			for c := range h.clients[u.ServiceID] {
				select {
				case c.send <- u:
				default:
					h.log.Warn().Int64("service_id", u.ServiceID).Msg("slow rating subscriber dropped")
					h.drop(c)
				}
			}
		}
	}
}

func (h *RatingHub) drop(c *ratingClient) {
	set, ok := h.clients[c.serviceID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.serviceID)
	}
}

// RatingChanged queues an update for broadcast. It never blocks the caller;
// when the queue is full the update is dropped.
func (h *RatingHub) RatingChanged(u models.RatingUpdate) {
	select {
	case h.broadcast <- u:
	default:
		h.log.Warn().Int64("service_id", u.ServiceID).Msg("rating update dropped")
	}
}

// Subscribe registers conn for serviceID and starts its pumps. A non-nil
// initial update is sent first.
func (h *RatingHub) Subscribe(conn *websocket.Conn, serviceID int64, initial *models.RatingUpdate) {
	c := &ratingClient{
		serviceID: serviceID,
		conn:      conn,
		send:      make(chan models.RatingUpdate, sendBuffer),
	}
	if initial != nil {
		c.send <- *initial
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go h.writePump(c)
	go h.readPump(c)
}

// readPump only watches for close frames and pongs.
func (h *RatingHub) readPump(c *ratingClient) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *RatingHub) writePump(c *ratingClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case u, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(u); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ratingWebSocketHandler streams {service_id, average_rating} for one
// service, starting with the current value.
func (app *application) ratingWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(r.URL.Query().Get(":service_id"), 10, 64)
	if err != nil || serviceID <= 0 {
		http.Error(w, "invalid service_id", http.StatusBadRequest)
		return
	}
	avg, err := app.reviewService.ServiceRating(r.Context(), serviceID)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		app.serverError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade")
		return
	}
	app.ratingHub.Subscribe(conn, serviceID, &models.RatingUpdate{ServiceID: serviceID, AverageRating: avg})
}
