package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_SetsSessionCookie(t *testing.T) {
	s := NewServer(":0", "http://localhost:5000/api", "", nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xterm")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Regexp(t, uuidRe, cookies[0].Value)
}

func TestIndex_ReusesValidCookie(t *testing.T) {
	s := NewServer(":0", "http://localhost:5000/api", "", nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "0b7e7a4e-6a2b-4c1f-9e55-4f1b1d2b3c4d"})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
}

func TestTUICommand(t *testing.T) {
	s := NewServer(":0", "http://ledger:5000/api", "tok", nil)
	cmd := s.tuiCommand("/bin/ledgerdash")

	assert.Equal(t, []string{"/bin/ledgerdash", "tui", "--server", "http://ledger:5000/api"}, cmd.Args)
	assert.Contains(t, cmd.Env, "LEDGERDASH_API_TOKEN=tok")
	assert.NotContains(t, cmd.Args, "tok")
}

func TestParseUint16(t *testing.T) {
	assert.Equal(t, uint16(120), parseUint16("120", 80))
	assert.Equal(t, uint16(80), parseUint16("", 80))
	assert.Equal(t, uint16(80), parseUint16("70000", 80))
}

func TestTerminalControl_PassesKeystrokes(t *testing.T) {
	term := &terminal{}
	assert.False(t, term.control([]byte("q")))
	assert.False(t, term.control([]byte(`{"type":"ping"}`)))
	assert.False(t, term.control([]byte(`{not json`)))
}
