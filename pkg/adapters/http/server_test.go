package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Semihazah/skein/internal/logging"
	skeinhttp "github.com/Semihazah/skein/pkg/adapters/http"
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRuntime records calls and serves canned state.
type stubRuntime struct {
	enqueued  []domain.Request
	status    domain.Status
	held      bool
	choiceErr error
	chosen    []int
}

func (s *stubRuntime) Enqueue(req domain.Request) { s.enqueued = append(s.enqueued, req) }
func (s *stubRuntime) Status() domain.Status      { return s.status }
func (s *stubRuntime) SetHold(hold bool)          { s.held = hold }
func (s *stubRuntime) Held() bool                 { return s.held }
func (s *stubRuntime) QueueLen() int              { return len(s.enqueued) }

func (s *stubRuntime) SelectChoice(index int) error {
	if s.choiceErr != nil {
		return s.choiceErr
	}
	s.chosen = append(s.chosen, index)
	return nil
}

func newServer(stub *stubRuntime) *httptest.Server {
	return httptest.NewServer(skeinhttp.NewHandler(stub, logging.NewNop(), nil))
}

func TestEnqueue(t *testing.T) {
	stub := &stubRuntime{}
	srv := newServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/dialogues", "application/json",
		strings.NewReader(`{"locator": "intro", "start_node": "Chapter2"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Len(t, stub.enqueued, 1)
	assert.Equal(t, domain.Request{Locator: "intro", StartNode: "Chapter2"}, stub.enqueued[0])
}

func TestEnqueue_MissingLocator(t *testing.T) {
	stub := &stubRuntime{}
	srv := newServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/dialogues", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, stub.enqueued)
}

func TestStatus(t *testing.T) {
	stub := &stubRuntime{
		status: domain.Status{
			Phase:    domain.PhaseRunning,
			Substate: domain.SubstateDeliveringLine,
			Script:   "intro",
			Line:     "Hello Ann!",
		},
	}
	srv := newServer(stub)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])
	assert.Contains(t, body, `"phase":"running"`)
	assert.Contains(t, body, `"line":"Hello Ann!"`)
}

func TestChoice(t *testing.T) {
	stub := &stubRuntime{}
	srv := newServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/choice", "application/json", strings.NewReader(`{"index": 1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []int{1}, stub.chosen)
}

func TestChoice_NoPendingChoices(t *testing.T) {
	stub := &stubRuntime{choiceErr: domain.ErrNoChoices}
	srv := newServer(stub)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/choice", "application/json", strings.NewReader(`{"index": 0}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHold(t *testing.T) {
	stub := &stubRuntime{}
	srv := newServer(stub)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/hold", strings.NewReader(`{"held": true}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, stub.held)
}
