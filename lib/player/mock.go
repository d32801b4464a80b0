package player

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
)

// MockDaemon stands in for the playback daemon in tests. It implements the
// request surface over real TCP and lets tests push updates and inspect
// received commands.
type MockDaemon struct {
	listener net.Listener
	mu       sync.Mutex
	conns    []net.Conn

	Version string
	Clips   []Clip
	status  Status

	commands []string
}

func NewMockDaemon() (*MockDaemon, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	m := &MockDaemon{
		listener: ln,
		Version:  "1.4.0",
	}
	go m.serve()
	return m, nil
}

func (m *MockDaemon) Port() int {
	return m.listener.Addr().(*net.TCPAddr).Port
}

func (m *MockDaemon) Close() error {
	err := m.listener.Close()
	m.mu.Lock()
	for _, conn := range m.conns {
		conn.Close()
	}
	m.mu.Unlock()
	return err
}

// Commands returns every command address received so far, in order.
func (m *MockDaemon) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.commands))
	copy(out, m.commands)
	return out
}

func (m *MockDaemon) SendUpdate(addr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	encoded := slipEncode(encodeOSC(addr))
	for _, conn := range m.conns {
		conn.Write(encoded)
	}
}

// ClipReady marks a clip ready and pushes the matching update.
func (m *MockDaemon) ClipReady(index int) {
	m.mu.Lock()
	for i := range m.Clips {
		if m.Clips[i].Index == index {
			m.Clips[i].Ready = true
		}
	}
	m.mu.Unlock()
	m.SendUpdate(fmt.Sprintf("/update/clip/%d/ready", index))
}

func (m *MockDaemon) FinishCrossfade() {
	m.mu.Lock()
	m.status.Crossfading = false
	m.mu.Unlock()
	m.SendUpdate("/update/transition/done")
}

func (m *MockDaemon) serve() {
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			return
		}
		m.mu.Lock()
		m.conns = append(m.conns, conn)
		m.mu.Unlock()
		go m.handleConn(conn)
	}
}

func (m *MockDaemon) handleConn(conn net.Conn) {
	buf := make([]byte, 0, 65536)
	tmp := make([]byte, 4096)
	for {
		n, err := conn.Read(tmp)
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
			addr, args, err := decodeOSC(frame)
			if err != nil {
				continue
			}
			m.handleRequest(conn, addr, args)
		}
	}
}

func (m *MockDaemon) sendReply(conn net.Conn, addr string, status string, data any) {
	jsonData, _ := json.Marshal(data)
	r := Reply{
		Address: addr,
		Status:  status,
		Data:    json.RawMessage(jsonData),
	}
	replyJSON, _ := json.Marshal(r)
	msg := encodeOSC("/reply"+addr, string(replyJSON))
	conn.Write(slipEncode(msg))
}

func (m *MockDaemon) handleRequest(conn net.Conn, addr string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch addr {
	case "/version":
		m.sendReply(conn, addr, "ok", m.Version)
		return
	case "/clips":
		clips := m.Clips
		if clips == nil {
			clips = []Clip{}
		}
		m.sendReply(conn, addr, "ok", clips)
		return
	case "/status":
		m.sendReply(conn, addr, "ok", m.status)
		return
	}

	m.commands = append(m.commands, addr)

	switch {
	case addr == "/crossfade":
		if len(args) == 3 {
			if to, ok := args[1].(int32); ok {
				m.status.Playing = int(to)
				m.status.Crossfading = true
			}
		}
	case addr == "/stop":
		m.status.Playing = 0
	case strings.HasPrefix(addr, "/clip/"):
		parts := strings.SplitN(addr, "/", 4)
		if len(parts) < 4 {
			return
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil || m.findClip(index) == nil {
			m.sendReply(conn, addr, "not found", nil)
			return
		}
		switch parts[3] {
		case "play":
			m.status.Playing = index
		case "preload":
			m.status.Preloaded = append(m.status.Preloaded, index)
		}
	}
}

func (m *MockDaemon) findClip(index int) *Clip {
	for i := range m.Clips {
		if m.Clips[i].Index == index {
			return &m.Clips[i]
		}
	}
	return nil
}
