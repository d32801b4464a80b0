package player

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"
)

const DefaultPort = 7400

// Clip is one entry in the daemon's media inventory.
type Clip struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Source   string  `json:"source"`
	Duration float64 `json:"duration"`
	Ready    bool    `json:"ready"`
}

// Status describes what the daemon is rendering right now.
type Status struct {
	Playing     int   `json:"playing"`
	Preloaded   []int `json:"preloaded"`
	Crossfading bool  `json:"crossfading"`
}

type Reply struct {
	Address string          `json:"address"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
}

type Update struct {
	Address string
}

// Client speaks the daemon's OSC-over-SLIP protocol on a single TCP
// connection. Requests are correlated to /reply/... messages by address;
// unsolicited /update/... messages surface on the Updates channel.
type Client struct {
	conn    net.Conn
	mu      sync.Mutex
	pending map[string]chan *Reply
	updates chan Update
}

func Dial(host string, port int) (*Client, error) {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", host, port), 5*time.Second)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:    conn,
		pending: make(map[string]chan *Reply),
		updates: make(chan Update, 64),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Updates() <-chan Update {
	return c.updates
}

func (c *Client) readLoop() {
	buf := make([]byte, 0, 65536)
	tmp := make([]byte, 4096)
	for {
		n, err := c.conn.Read(tmp)
		if err != nil {
			return
		}
		buf = append(buf, tmp[:n]...)
		for {
			frame, rest, ok := nextFrame(buf)
			if !ok {
				break
			}
			buf = rest
			c.handleFrame(frame)
		}
	}
}

func (c *Client) handleFrame(frame []byte) {
	addr, args, err := decodeOSC(frame)
	if err != nil {
		return
	}

	if len(addr) > 8 && addr[:8] == "/update/" {
		select {
		case c.updates <- Update{Address: addr}:
		default:
		}
		return
	}

	if len(addr) > 7 && addr[:7] == "/reply/" {
		if len(args) == 0 {
			return
		}
		jsonStr, ok := args[0].(string)
		if !ok {
			return
		}
		var reply Reply
		if err := json.Unmarshal([]byte(jsonStr), &reply); err != nil {
			return
		}
		replyAddr := addr[6:]
		c.mu.Lock()
		ch, exists := c.pending[replyAddr]
		if exists {
			delete(c.pending, replyAddr)
		}
		c.mu.Unlock()
		if exists {
			ch <- &reply
		}
	}
}

func (c *Client) send(addr string, args ...any) error {
	msg := encodeOSC(addr, args...)
	encoded := slipEncode(msg)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.conn.Write(encoded)
	return err
}

func (c *Client) request(addr string, args ...any) (*Reply, error) {
	ch := make(chan *Reply, 1)
	c.mu.Lock()
	c.pending[addr] = ch
	c.mu.Unlock()

	if err := c.send(addr, args...); err != nil {
		c.mu.Lock()
		delete(c.pending, addr)
		c.mu.Unlock()
		return nil, err
	}

	select {
	case reply := <-ch:
		if reply.Status != "ok" {
			return reply, fmt.Errorf("player: %s: %s", addr, reply.Status)
		}
		return reply, nil
	case <-time.After(5 * time.Second):
		c.mu.Lock()
		delete(c.pending, addr)
		c.mu.Unlock()
		return nil, fmt.Errorf("player: %s: timeout", addr)
	}
}

func (c *Client) Version() (string, error) {
	reply, err := c.request("/version")
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(reply.Data, &v); err != nil {
		return "", err
	}
	return v, nil
}

// Clips fetches the daemon's media inventory, ordered by index.
func (c *Client) Clips() ([]Clip, error) {
	reply, err := c.request("/clips")
	if err != nil {
		return nil, err
	}
	var clips []Clip
	if err := json.Unmarshal(reply.Data, &clips); err != nil {
		return nil, err
	}
	return clips, nil
}

func (c *Client) Status() (Status, error) {
	reply, err := c.request("/status")
	if err != nil {
		return Status{}, err
	}
	var st Status
	if err := json.Unmarshal(reply.Data, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// Preload asks the daemon to decode a clip's first frames so a later Play or
// Crossfade starts without a stall. The daemon answers with
// /update/clip/<n>/ready when done.
func (c *Client) Preload(index int) error {
	return c.send(fmt.Sprintf("/clip/%d/preload", index))
}

func (c *Client) Play(index int) error {
	return c.send(fmt.Sprintf("/clip/%d/play", index))
}

func (c *Client) SetLoop(index int, loop bool) error {
	v := int32(0)
	if loop {
		v = 1
	}
	return c.send(fmt.Sprintf("/clip/%d/loop", index), v)
}

// Crossfade swaps the output from one clip to another over durationMs. The
// daemon pushes /update/transition/done when the fade lands.
func (c *Client) Crossfade(from, to int, durationMs int) error {
	return c.send("/crossfade", int32(from), int32(to), int32(durationMs))
}

func (c *Client) Stop() error {
	return c.send("/stop")
}
