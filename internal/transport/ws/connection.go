package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/dealtable/holdem/internal/orchestrator"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Connection adapts one live game, viewed by one seat, to a single
// websocket client. One Connection per player; the human seat drives
// apply_action/next_hand, the Manager drives every AI turn internally.
type Connection struct {
	conn    *websocket.Conn
	send    chan *Message
	logger  *log.Logger
	manager *orchestrator.Manager
	gameID  string
	seatID  int

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded websocket connection bound to one
// game and one viewing seat.
func NewConnection(conn *websocket.Conn, logger *log.Logger, manager *orchestrator.Manager, gameID string, seatID int) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		logger:  logger.WithPrefix("ws"),
		manager: manager,
		gameID:  gameID,
		seatID:  seatID,
		ctx:     ctx,
		cancel:  cancel,
	}
	manager.OnStateChangeFor(gameID, c.broadcastState)
	return c
}

// Start begins the read and write pumps and sends the current state.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
	c.sendCurrentState()
}

// Close tears down the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeApplyAction:
		var data ApplyActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse apply_action")
			return
		}
		c.handleApplyAction(data)

	case MessageTypeNextHand:
		c.handleNextHand()

	default:
		c.sendError("unknown_message_type", string(msg.Type))
	}
}

func (c *Connection) handleApplyAction(data ApplyActionData) {
	action, err := parseAction(data.Action)
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}
	view, err := c.manager.ApplyAction(c.gameID, data.SeatID, action, data.Amount)
	if err != nil {
		c.sendError(codeString(err), err.Error())
		return
	}
	c.emitForView(view)
}

func (c *Connection) handleNextHand() {
	view, err := c.manager.NextHand(c.gameID)
	if err != nil {
		c.sendError(codeString(err), err.Error())
		return
	}
	c.emitForView(view)
}

func (c *Connection) sendCurrentState() {
	view, err := c.manager.GetState(c.gameID, c.seatID)
	if err != nil {
		c.sendError(codeString(err), err.Error())
		return
	}
	c.emitForView(view)
}

// broadcastState is registered with the Manager so auto-advanced hands
// (the orchestrator's own clock-driven next-hand timer) reach the client
// without a round-trip request.
func (c *Connection) broadcastState(view orchestrator.GameStateView) {
	c.emitForView(view)
}

func (c *Connection) emitForView(view orchestrator.GameStateView) {
	if decision := aiActionDataFrom(view.LastAIDecision); decision != nil {
		if msg, err := newMessage(MessageTypeAIAction, decision); err == nil {
			c.enqueue(msg)
		}
	}

	if msg, err := newMessage(MessageTypeStateUpdate, view); err == nil {
		c.enqueue(msg)
	}

	if view.GameOver {
		if msg, err := newMessage(MessageTypeGameOver, GameOverData{HandNumber: view.HandNumber}); err == nil {
			c.enqueue(msg)
		}
	}
}

func (c *Connection) sendError(code, message string) {
	msg, err := newMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("failed to build error frame", "error", err)
		return
	}
	c.enqueue(msg)
}

func (c *Connection) enqueue(msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
	}
}
