package web

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/coder/websocket"
	"github.com/creack/pty/v2"
)

// controlMsg is a JSON text frame from the browser. Anything that does not
// decode as one is keystrokes for the TUI.
type controlMsg struct {
	Type string `json:"type"`
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// tuiCommand builds the child process for one browser session. The token is
// passed through the environment so it does not show up in process listings.
func (s *Server) tuiCommand(exe string) *exec.Cmd {
	cmd := exec.Command(exe, "tui", "--server", s.apiURL)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	if s.apiToken != "" {
		cmd.Env = append(cmd.Env, "LEDGERDASH_API_TOKEN="+s.apiToken)
	}
	return cmd
}

// terminal bridges one websocket to one dashboard process on a pty.
type terminal struct {
	conn *websocket.Conn
	ptmx *os.File
	cmd  *exec.Cmd
	log  *slog.Logger

	cancel context.CancelFunc
	once   sync.Once
}

func (t *terminal) shutdown() {
	t.once.Do(func() {
		t.cancel()
		t.ptmx.Close()
		if t.cmd.Process != nil {
			t.cmd.Process.Kill()
			t.cmd.Wait()
		}
		t.log.Info("terminal session ended")
	})
}

// pumpOutput copies pty output to the browser as binary frames, which skip
// the UTF-8 validation text frames would need.
func (t *terminal) pumpOutput(ctx context.Context) {
	defer t.shutdown()
	buf := make([]byte, 32*1024)
	for {
		n, err := t.ptmx.Read(buf)
		if err != nil {
			t.log.Debug("pty read", "error", err)
			t.conn.Close(websocket.StatusNormalClosure, "dashboard exited")
			return
		}
		if err := t.conn.Write(ctx, websocket.MessageBinary, buf[:n]); err != nil {
			t.log.Debug("ws write", "error", err)
			return
		}
	}
}

func (t *terminal) pumpInput(ctx context.Context) {
	defer t.shutdown()
	for {
		_, data, err := t.conn.Read(ctx)
		if err != nil {
			t.log.Debug("ws read", "error", err)
			return
		}
		if t.control(data) {
			continue
		}
		if _, err := t.ptmx.Write(data); err != nil {
			t.log.Debug("pty write", "error", err)
			return
		}
	}
}

func (t *terminal) control(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("{")) {
		return false
	}
	var msg controlMsg
	if json.Unmarshal(data, &msg) != nil || msg.Type != "resize" {
		return false
	}
	if err := pty.Setsize(t.ptmx, &pty.Winsize{Rows: msg.Rows, Cols: msg.Cols}); err != nil {
		t.log.Debug("pty resize", "error", err)
	}
	return true
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log := s.log.With("session", s.sessionID(w, r))

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	exe, err := os.Executable()
	if err != nil {
		log.Error("locate executable", "error", err)
		conn.Close(websocket.StatusInternalError, "cannot find executable")
		return
	}

	size := &pty.Winsize{
		Cols: parseUint16(r.URL.Query().Get("cols"), 80),
		Rows: parseUint16(r.URL.Query().Get("rows"), 24),
	}
	cmd := s.tuiCommand(exe)
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		log.Error("pty start", "error", err)
		conn.Close(websocket.StatusInternalError, "failed to start dashboard")
		return
	}
	log.Info("terminal session started", "cols", size.Cols, "rows", size.Rows)

	ctx, cancel := context.WithCancel(r.Context())
	t := &terminal{conn: conn, ptmx: ptmx, cmd: cmd, log: log, cancel: cancel}
	go t.pumpOutput(ctx)
	t.pumpInput(ctx)
}

func parseUint16(s string, def uint16) uint16 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return def
	}
	return uint16(v)
}
