package overlay

import (
	"time"

	"chickenescape/internal/sim"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// client pumps snapshots from the hub to one websocket connection.
type client struct {
	hub   *Hub
	conn  *websocket.Conn
	codec Codec
	id    uint64
	send  <-chan sim.Snapshot
	log   *logrus.Entry
}

// readPump only services control frames; overlays do not send commands.
func (c *client) readPump() {
	defer func() {
		c.hub.Unregister(c.id)
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("close websocket")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("overlay read failed")
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("close websocket in writePump")
		}
	}()

	for {
		select {
		case snap, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			data, err := c.codec.Encode(snap)
			if err != nil {
				c.log.WithError(err).Error("encode snapshot")
				continue
			}
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				c.log.WithError(err).Debug("write snapshot failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
