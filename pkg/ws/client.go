package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var ErrClosed = errors.New("connection is closed")

type messageInfo struct {
	msg             []byte
	needCompression bool
}

// Client wraps a websocket connection with a reader and a writer goroutine.
// Inbound text messages are delivered on R, which is closed when the peer
// goes away.
type Client struct {
	Conn *websocket.Conn
	R    chan []byte

	w         chan messageInfo
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn: conn,
		R:    make(chan []byte, 128),
		w:    make(chan messageInfo, 128),
		done: make(chan struct{}),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)
	defer c.Close()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		}
	}
}

func (c *Client) runWriter() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.Conn.Close()

	for {
		select {
		case <-c.done:
			c.Conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
			return

		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}

		case info := <-c.w:
			msg, messageType := info.msg, websocket.TextMessage
			if info.needCompression {
				var err error
				msg, err = Compress(info.msg)
				if err != nil {
					continue
				}
				messageType = websocket.BinaryMessage
			}

			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(messageType, msg); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Write queues msg for the writer goroutine. It never blocks on a slow peer:
// a full queue is reported as an error.
func (c *Client) Write(msg []byte, needCompression bool) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.w <- messageInfo{msg: msg, needCompression: needCompression}:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		return errors.New("write queue is full")
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}
