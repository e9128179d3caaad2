package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"dicehouse/engine"
	"dicehouse/session"
	"dicehouse/store"
	"dicehouse/wire"
)

type stubRoller struct{ face int }

func (s stubRoller) Roll() int { return s.face }

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	s := store.New(1800 * time.Second)
	if err := s.Bootstrap(10, 50, 1000); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	e := engine.New(s, stubRoller{face: 3}, 1, 1000, 10, 600*time.Second)
	d := &Dispatcher{
		Store:       s,
		Engine:      e,
		RateLimiter: session.New(100),
		NewToken:    func() (string, error) { return "test-token", nil },
	}

	srv := httptest.NewServer(http.HandlerFunc(d.Handle))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return srv, wsURL
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return conn
}

func TestLoginRoundTrip(t *testing.T) {
	srv, url := newTestServer(t)
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	req := wire.LoginReq{Username: "testuser1", Password: "password123"}
	w := wire.NewWriter()
	w.WriteString(req.Username)
	w.WriteString(req.Password)
	frame := wire.EncodeFrame(wire.CmdLoginReq, w.Bytes())

	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	cmdID, body, err := wire.DecodeFrame(raw)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if cmdID != wire.CmdLoginRsp {
		t.Fatalf("cmdID = %#x, want LOGIN_RSP", cmdID)
	}

	r := wire.NewReader(body)
	success, _ := r.ReadBool()
	if !success {
		t.Fatal("expected login to succeed")
	}
}

// A frame whose declared length exceeds the received payload fails with
// INVALID_FORMAT and the connection stays open.
func TestFrameCorruptionKeepsConnectionOpen(t *testing.T) {
	srv, url := newTestServer(t)
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	bad := wire.EncodeFrame(wire.CmdSnapshotReq, []byte("x"))
	bad[4] = bad[4] + 50 // declare far more payload than was sent

	if err := conn.WriteMessage(websocket.BinaryMessage, bad); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	cmdID, body, err := wire.DecodeFrame(raw)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if cmdID != wire.CmdErrorRsp {
		t.Fatalf("cmdID = %#x, want ERROR_RSP", cmdID)
	}
	r := wire.NewReader(body)
	code, _ := r.ReadU32()
	if code != wire.ErrCodeInvalidFormat {
		t.Fatalf("error_code = %d, want %d", code, wire.ErrCodeInvalidFormat)
	}

	// The connection must still be usable: a well-formed login now
	// succeeds.
	req := wire.LoginReq{Username: "testuser1", Password: "password123"}
	w := wire.NewWriter()
	w.WriteString(req.Username)
	w.WriteString(req.Password)
	if err := conn.WriteMessage(websocket.BinaryMessage, wire.EncodeFrame(wire.CmdLoginReq, w.Bytes())); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	_, raw2, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage after corrupted frame: %v", err)
	}
	cmdID2, _, _ := wire.DecodeFrame(raw2)
	if cmdID2 != wire.CmdLoginRsp {
		t.Fatalf("cmdID = %#x, want LOGIN_RSP (connection should still work)", cmdID2)
	}
}

func TestAuthRequiredBeforeLogin(t *testing.T) {
	srv, url := newTestServer(t)
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	w := wire.NewWriter()
	w.WriteU32(1)
	if err := conn.WriteMessage(websocket.BinaryMessage, wire.EncodeFrame(wire.CmdRoomJoinReq, w.Bytes())); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	cmdID, body, _ := wire.DecodeFrame(raw)
	if cmdID != wire.CmdErrorRsp {
		t.Fatalf("cmdID = %#x, want ERROR_RSP", cmdID)
	}
	r := wire.NewReader(body)
	code, _ := r.ReadU32()
	if code != wire.ErrCodeAuthRequired {
		t.Fatalf("error_code = %d, want %d", code, wire.ErrCodeAuthRequired)
	}
}
