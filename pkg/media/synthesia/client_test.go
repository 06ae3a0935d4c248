package synthesia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient("secret", url)
	c.PollInterval = time.Millisecond
	c.MaxPolls = 5
	return c
}

func TestCreateVideo(t *testing.T) {
	var got CreateVideoRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"vid-1","status":"in_progress"}`))
	}))
	defer srv.Close()

	video, err := newTestClient(srv.URL).CreateVideo(context.Background(), NewScriptRequest("Cells - Easy", "Hello students", true))

	require.NoError(t, err)
	assert.Equal(t, "vid-1", video.ID)
	assert.Equal(t, StatusInProgress, video.Status)
	assert.True(t, got.Test)
	require.Len(t, got.Input, 1)
	assert.Equal(t, "Hello students", got.Input[0].ScriptText)
	assert.Equal(t, DefaultAvatar, got.Input[0].Avatar)
}

func TestWaitForVideo_Completes(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos/vid-1", r.URL.Path)
		if atomic.AddInt32(&polls, 1) < 3 {
			_, _ = w.Write([]byte(`{"id":"vid-1","status":"in_progress"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"vid-1","status":"complete","download":"https://cdn/vid-1.mp4"}`))
	}))
	defer srv.Close()

	video, err := newTestClient(srv.URL).WaitForVideo(context.Background(), "vid-1")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/vid-1.mp4", video.Download)
	assert.EqualValues(t, 3, atomic.LoadInt32(&polls))
}

func TestWaitForVideo_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"vid-2","status":"failed"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).WaitForVideo(context.Background(), "vid-2")

	assert.ErrorIs(t, err, ErrVideoFailed)
}

func TestWaitForVideo_PollBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"vid-3","status":"in_progress"}`))
	}))
	defer srv.Close()

	video, err := newTestClient(srv.URL).WaitForVideo(context.Background(), "vid-3")

	assert.ErrorIs(t, err, ErrPollExceeded)
	require.NotNil(t, video)
	assert.Equal(t, StatusInProgress, video.Status)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"context":"bad key"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetVideo(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
