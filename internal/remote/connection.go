package remote

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendChSize   = 256
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 25 * time.Second
	maxFrameSize = 1 << 20
)

// ClientConfig configures the websocket client.
type ClientConfig struct {
	URL            string
	MaxReconnect   int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.MaxReconnect <= 0 {
		c.MaxReconnect = 10
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = time.Second
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 30 * time.Second
	}
	return c
}

// session is one dialled connection plus the signal that stops its loops.
type session struct {
	conn *ws.Conn
	done chan struct{}
	once sync.Once
}

func (s *session) stop() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// Client is a websocket Transport with a single write goroutine and
// reconnect with exponential backoff.
type Client struct {
	cfg    ClientConfig
	logger zerolog.Logger
	dialer *ws.Dialer

	mu      sync.Mutex
	sess    *session
	inbox   chan<- Event
	started bool
	closed  bool

	sendCh chan []byte
	done   chan struct{}
}

var _ Transport = (*Client)(nil)

// NewClient builds a client; nothing is dialled until Start.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg.withDefaults(),
		logger: logger.With().Str("component", "remote").Logger(),
		dialer: &ws.Dialer{HandshakeTimeout: writeWait},
		sendCh: make(chan []byte, sendChSize),
		done:   make(chan struct{}),
	}
}

// Start dials the server and begins forwarding inbound events to inbox.
func (c *Client) Start(inbox chan<- Event) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return errors.New("remote client already started")
	}
	c.started = true
	c.inbox = inbox
	c.mu.Unlock()

	conn, err := c.dialOnce()
	if err != nil {
		return err
	}
	c.attach(conn)
	c.logger.Info().Str("url", c.cfg.URL).Msg("connected to simulation server")
	return nil
}

// Emit encodes an outbound event and queues it for the write loop. A full
// queue drops the message.
func (c *Client) Emit(eventType string, payload any) error {
	data, err := Encode(eventType, payload)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.sendCh <- data:
	default:
		c.logger.Warn().Str("event", eventType).Msg("send queue full, dropping message")
	}
	return nil
}

// Close sends a close frame and stops all loops.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	s := c.sess
	c.sess = nil
	c.mu.Unlock()

	close(c.done)
	if s == nil {
		return nil
	}
	msg := ws.FormatCloseMessage(ws.CloseNormalClosure, "")
	err := s.conn.WriteControl(ws.CloseMessage, msg, time.Now().Add(time.Second))
	s.stop()
	if err != nil && !errors.Is(err, ws.ErrCloseSent) {
		return fmt.Errorf("websocket close: %w", err)
	}
	return nil
}

func (c *Client) dialOnce() (*ws.Conn, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket URL: %w", err)
	}
	conn, _, err := c.dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

// attach installs conn as the live session and starts its loops.
func (c *Client) attach(conn *ws.Conn) {
	s := &session{conn: conn, done: make(chan struct{})}
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		s.stop()
		return
	}
	c.sess = s
	c.mu.Unlock()

	go c.writeLoop(s)
	go c.readLoop(s)
}

// fail tears down s and schedules a reconnect, once per session.
func (c *Client) fail(s *session, err error) {
	s.stop()
	c.mu.Lock()
	if c.closed || c.sess != s {
		c.mu.Unlock()
		return
	}
	c.sess = nil
	c.mu.Unlock()
	c.logger.Warn().Err(err).Msg("websocket connection lost")
	go c.reconnect()
}

// writeLoop drains sendCh and writes messages to the session's connection.
func (c *Client) writeLoop(s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(ws.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.fail(s, fmt.Errorf("ping: %w", err))
				return
			}
		case data := <-c.sendCh:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.requeue(data)
				c.fail(s, fmt.Errorf("set write deadline: %w", err))
				return
			}
			if err := s.conn.WriteMessage(ws.TextMessage, data); err != nil {
				c.requeue(data)
				c.fail(s, fmt.Errorf("write: %w", err))
				return
			}
		}
	}
}

func (c *Client) requeue(data []byte) {
	select {
	case c.sendCh <- data:
	default:
	}
}

// readLoop decodes inbound frames into the inbox. Malformed frames are
// logged and skipped.
func (c *Client) readLoop(s *session) {
	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				return
			case <-s.done:
				return
			default:
			}
			c.fail(s, fmt.Errorf("read: %w", err))
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		ev, err := DecodeEvent(message)
		if err != nil {
			if errors.Is(err, ErrUnknownEvent) {
				c.logger.Debug().Err(err).Msg("ignoring event")
				continue
			}
			c.logger.Warn().Err(err).Int("bytes", len(message)).Msg("dropping malformed frame")
			continue
		}
		c.mu.Lock()
		inbox := c.inbox
		c.mu.Unlock()
		deliver(inbox, ev, c.logger)
	}
}

// reconnect re-dials with exponential backoff until it succeeds, the client
// closes, or the attempt budget runs out.
func (c *Client) reconnect() {
	backoff := c.cfg.InitialBackoff
	for attempt := 1; attempt <= c.cfg.MaxReconnect; attempt++ {
		c.logger.Info().Int("attempt", attempt).Dur("backoff", backoff).Msg("reconnecting to simulation server")
		select {
		case <-c.done:
			return
		case <-time.After(backoff):
		}

		conn, err := c.dialOnce()
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("reconnect dial failed")
			backoff *= 2
			if backoff > c.cfg.MaxBackoff {
				backoff = c.cfg.MaxBackoff
			}
			continue
		}
		c.attach(conn)
		c.logger.Info().Int("attempt", attempt).Msg("websocket reconnected")
		return
	}
	c.logger.Error().Int("maxAttempts", c.cfg.MaxReconnect).Msg("websocket reconnect failed after max attempts")
}
