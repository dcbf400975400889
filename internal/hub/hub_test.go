package hub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return New(logger)
}

// startHubServer exposes the hub over a real websocket endpoint so delivery
// tests exercise the actual read/write pumps.
func startHubServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		s := h.Register(conn, Role(r.URL.Query().Get("role")), r.URL.Query().Get("subject_id"))
		go h.ReadLoop(s, func(Envelope) {})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, role Role, subjectID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?role=" + string(role) + "&subject_id=" + subjectID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func waitForSessions(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		n := len(h.sessions)
		h.mu.RUnlock()
		if n == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d registered sessions", want)
}

func TestSend_Targeted(t *testing.T) {
	h := newTestHub()
	srv := startHubServer(t, h)

	citizen := dial(t, srv, RoleCitizen, "citizen-1")
	other := dial(t, srv, RoleCitizen, "citizen-2")
	waitForSessions(t, h, 2)

	ok := h.Send(RoleCitizen, "citizen-1", "hotspot-alert", map[string]string{"message": "danger"})
	require.True(t, ok)

	env := readEnvelope(t, citizen)
	assert.Equal(t, "hotspot-alert", env.Event)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "danger", payload["message"])

	// The other citizen must not see the targeted event.
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var stray Envelope
	assert.Error(t, other.ReadJSON(&stray))
}

func TestSend_UnknownSubject(t *testing.T) {
	h := newTestHub()

	assert.False(t, h.Send(RoleResponder, "nobody", "new-incident", nil))
}

func TestBroadcastResponders_SkipsExcludedAndCitizens(t *testing.T) {
	h := newTestHub()
	srv := startHubServer(t, h)

	accepting := dial(t, srv, RoleResponder, "resp-1")
	watching := dial(t, srv, RoleResponder, "resp-2")
	citizen := dial(t, srv, RoleCitizen, "citizen-1")
	waitForSessions(t, h, 3)

	h.BroadcastResponders("incident-taken", map[string]string{"incident_id": "abc"}, "resp-1")

	env := readEnvelope(t, watching)
	assert.Equal(t, "incident-taken", env.Event)

	accepting.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var stray Envelope
	assert.Error(t, accepting.ReadJSON(&stray))

	citizen.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	assert.Error(t, citizen.ReadJSON(&stray))
}

func TestUnregister_FiresDisconnectHook(t *testing.T) {
	h := newTestHub()
	srv := startHubServer(t, h)

	gone := make(chan string, 1)
	h.SetDisconnectHook(func(role Role, subjectID string) {
		if role == RoleResponder {
			gone <- subjectID
		}
	})

	conn := dial(t, srv, RoleResponder, "resp-9")
	waitForSessions(t, h, 1)
	conn.Close()

	select {
	case subjectID := <-gone:
		assert.Equal(t, "resp-9", subjectID)
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect hook was not fired")
	}
	assert.Equal(t, 0, h.ResponderCount())
}

func TestSend_AfterUnregisterDropsFrame(t *testing.T) {
	h := newTestHub()
	srv := startHubServer(t, h)

	dial(t, srv, RoleResponder, "resp-1")
	waitForSessions(t, h, 1)

	// Replay the interleaving where delivery snapshots the session, then the
	// session is fully torn down before the frame is handed to the pump.
	h.mu.RLock()
	s := h.sessions[h.bySubj[RoleResponder]["resp-1"]]
	h.mu.RUnlock()
	require.NotNil(t, s)

	h.Unregister(s)

	assert.NotPanics(t, func() {
		assert.False(t, s.enqueue(Envelope{Event: "incident-taken"}))
	})
	assert.False(t, h.Send(RoleResponder, "resp-1", "incident-taken", nil))
}

func TestUnregister_StaleReplacedConnectionSkipsHook(t *testing.T) {
	h := newTestHub()
	srv := startHubServer(t, h)

	gone := make(chan string, 2)
	h.SetDisconnectHook(func(role Role, subjectID string) {
		gone <- subjectID
	})

	stale := dial(t, srv, RoleResponder, "resp-1")
	waitForSessions(t, h, 1)
	replacement := dial(t, srv, RoleResponder, "resp-1")
	waitForSessions(t, h, 2)

	// Dropping the replaced connection must not look like the responder left.
	stale.Close()
	waitForSessions(t, h, 1)

	select {
	case subjectID := <-gone:
		t.Fatalf("disconnect hook fired for %q while a replacement session is live", subjectID)
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, 1, h.ResponderCount())

	replacement.Close()
	select {
	case subjectID := <-gone:
		assert.Equal(t, "resp-1", subjectID)
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect hook was not fired for the last session")
	}
	assert.Equal(t, 0, h.ResponderCount())
}

func TestSession_ShouldAlert(t *testing.T) {
	s := &Session{}
	cooldown := 10 * time.Minute
	now := time.Now()

	assert.True(t, s.ShouldAlert("cluster-a", cooldown, now), "first entry alerts")
	assert.False(t, s.ShouldAlert("cluster-a", cooldown, now.Add(time.Minute)), "repeat inside cooldown is suppressed")
	assert.True(t, s.ShouldAlert("cluster-b", cooldown, now.Add(2*time.Minute)), "different cluster alerts")
	assert.True(t, s.ShouldAlert("cluster-a", cooldown, now.Add(15*time.Minute)), "same cluster after cooldown alerts")
}
