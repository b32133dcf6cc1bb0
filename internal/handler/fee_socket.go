package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/feeboard/internal/feequery"
	"github.com/navid-fn/feeboard/internal/service"
)

const (
	HandshakeTimeout = 5 * time.Second
	ReadTimeout      = 60 * time.Second
	WriteTimeout     = 10 * time.Second
	PingInterval     = 30 * time.Second
)

// Client → server message types.
const (
	msgQuery  = "query"
	msgToggle = "toggle"
	msgSort   = "sort"
)

// socketMessage is a query-state change sent by the client.
// For "query", only the fields present are changed.
type socketMessage struct {
	Type     string  `json:"type"`
	Text     *string `json:"q,omitempty"`
	Notional *string `json:"notional,omitempty"`
	Field    string  `json:"field,omitempty"`
	Dir      string  `json:"dir,omitempty"`
}

type socketReply struct {
	Type   string           `json:"type"`
	Result *feequery.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Socket upgrades to a WebSocket live-query session. The initial state
// comes from the URL query; every client message yields a fresh result.
func (h *FeeHandler) Socket(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q, err = h.feeService.Normalize(q); err != nil {
		c.JSON(queryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	s := &feeSession{
		conn:    conn,
		service: h.feeService,
		query:   q,
		logger:  h.logger.WithField("remote", c.ClientIP()),
	}
	s.run(c.Request.Context())
}

// feeSession owns the query state of one connection. Only run's goroutine
// touches query or writes data frames.
type feeSession struct {
	conn    *websocket.Conn
	service *service.FeesService
	query   feequery.Query
	logger  logrus.FieldLogger
}

func (s *feeSession) run(ctx context.Context) {
	s.logger.Debug("Fee session started")
	defer s.logger.Debug("Fee session closed")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(ReadTimeout))
	})
	go s.keepAlive(ctx)

	if err := s.reply(s.evaluate(s.query)); err != nil {
		return
	}

	for {
		var msg socketMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WithError(err).Debug("Fee session read failed")
			}
			return
		}

		next, err := s.apply(msg)
		if err != nil {
			if err := s.reply(socketReply{Type: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := s.reply(s.evaluate(next)); err != nil {
			return
		}
	}
}

// apply returns the query state after msg; s.query is not changed.
func (s *feeSession) apply(msg socketMessage) (feequery.Query, error) {
	next := s.query

	switch msg.Type {
	case msgQuery:
		if msg.Text != nil {
			next.Text = *msg.Text
		}
		if msg.Notional != nil {
			next.Notional = *msg.Notional
		}
	case msgToggle:
		field, err := feequery.ParseField(msg.Field)
		if err != nil {
			return next, err
		}
		next.Sort = next.Sort.Toggle(field)
	case msgSort:
		field, err := feequery.ParseField(msg.Field)
		if err != nil {
			return next, err
		}
		dir, err := feequery.ParseDirection(msg.Dir)
		if err != nil {
			return next, err
		}
		next.Sort = feequery.SortSpec{Field: field, Dir: dir}
	default:
		return next, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return next, nil
}

// evaluate runs q and, on success, makes it the session state.
func (s *feeSession) evaluate(q feequery.Query) socketReply {
	res, err := s.service.Query(q)
	if err != nil {
		return socketReply{Type: "error", Error: err.Error()}
	}
	s.query = res.Query
	return socketReply{Type: "result", Result: &res}
}

func (s *feeSession) reply(r socketReply) error {
	s.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := s.conn.WriteJSON(r); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			s.logger.WithError(err).Debug("Fee session write failed")
		}
		return err
	}
	return nil
}

// keepAlive pings until ctx ends. WriteControl may run concurrently with
// the data writes in run.
func (s *feeSession) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
				return
			}
		}
	}
}
