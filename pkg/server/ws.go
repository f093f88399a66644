package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"nhooyr.io/websocket"

	"github.com/flowmesh/dataflow/pkg/observer"
	"github.com/flowmesh/dataflow/pkg/types"
)

// wsObserver forwards every notified event to one WebSocket connection
// as JSON, per spec.md §6 ("server->client: events"). Each event is
// written synchronously inside OnEvent, so a slow connection delays the
// scheduler until the write returns; it has no per-client queue. After a
// failed write the connection is marked closed and later events are
// dropped.
type wsObserver struct {
	conn   *websocket.Conn
	ctx    context.Context
	closed atomic.Bool
}

func (o *wsObserver) OnEvent(ev observer.Event) {
	if o.closed.Load() {
		return
	}
	msg := WSEvent{
		Type:          string(ev.Type),
		NodeID:        ev.NodeID,
		NodeType:      ev.NodeType,
		Branch:        ev.Branch,
		Input:         ev.Input,
		ChatID:        ev.ChatID,
		InterfaceType: ev.InterfaceType,
		Participants:  ev.Participants,
		Inputs:        ev.Inputs,
		Outputs:       ev.Outputs,
	}
	if !ev.Value.IsNil() {
		msg.Value = ev.Value.Unwrap()
	}
	if ev.Err != nil {
		msg.Error = ev.Err.Error()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := o.conn.Write(o.ctx, websocket.MessageText, data); err != nil {
		o.closed.Store(true)
	}
}

// handleWS serves /ws/events: an observer stream combined with an
// inbound trigger-input channel (spec.md §6). Each connection registers
// its own wsObserver against the server's shared observer.Manager for
// the life of the socket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	obs := &wsObserver{conn: conn, ctx: ctx}
	s.observers.Register(obs)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			obs.closed.Store(true)
			if errors.Is(err, context.Canceled) {
				return
			}
			return
		}

		var msg WSClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "input_response":
			s.mu.Lock()
			exec := s.exec
			s.mu.Unlock()
			if exec == nil {
				continue
			}
			if err := exec.FireTrigger(msg.NodeID, types.FromAny(msg.Value)); err != nil {
				s.logger.WithError(err).WithField("node_id", msg.NodeID).Warn("FireTrigger failed")
			}
		case "chat_message":
			// Legacy chat interface (spec.md §6 interface_available):
			// routing a chat_message to its participant node is out of
			// scope without a concrete interface-backed example node.
			s.logger.WithField("chat_id", msg.ChatID).Debug("chat_message received, no interface node registered")
		}
	}
}
