package synthesia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL    = "https://api.synthesia.io/v2"
	DefaultAvatar     = "anna_costume1_cameraA"
	DefaultBackground = "green_screen"

	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
	StatusFailed     = "failed"
)

var (
	ErrVideoFailed  = errors.New("video rendering failed")
	ErrPollExceeded = errors.New("video still rendering after poll budget")
)

type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	// Bounds for WaitForVideo
	PollInterval time.Duration
	MaxPolls     int
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		PollInterval: 10 * time.Second,
		MaxPolls:     30,
	}
}

// --- Request/Response structs ---

type Input struct {
	ScriptText string `json:"scriptText"`
	Avatar     string `json:"avatar"`
	Background string `json:"background"`
}

type CreateVideoRequest struct {
	Test        bool    `json:"test"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Visibility  string  `json:"visibility"`
	Input       []Input `json:"input"`
}

type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Download  string `json:"download,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Thumbnail *struct {
		Image string `json:"image"`
		GIF   string `json:"gif"`
	} `json:"thumbnail,omitempty"`
}

// NewScriptRequest builds a private single-scene video request for a narration script
func NewScriptRequest(title, script string, test bool) CreateVideoRequest {
	return CreateVideoRequest{
		Test:       test,
		Title:      title,
		Visibility: "private",
		Input: []Input{{
			ScriptText: script,
			Avatar:     DefaultAvatar,
			Background: DefaultBackground,
		}},
	}
}

func (c *Client) CreateVideo(ctx context.Context, req CreateVideoRequest) (*Video, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var video Video
	if err := c.do(ctx, http.MethodPost, "/videos", bytes.NewReader(payload), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *Client) GetVideo(ctx context.Context, id string) (*Video, error) {
	var video Video
	if err := c.do(ctx, http.MethodGet, "/videos/"+id, nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// WaitForVideo polls the video status until it completes, fails, or the poll budget runs out.
// The last seen video is returned alongside ErrPollExceeded.
func (c *Client) WaitForVideo(ctx context.Context, id string) (*Video, error) {
	var last *Video
	for i := 0; i < c.MaxPolls; i++ {
		video, err := c.GetVideo(ctx, id)
		if err != nil {
			return nil, err
		}
		last = video

		switch video.Status {
		case StatusComplete:
			return video, nil
		case StatusFailed:
			return video, fmt.Errorf("%w: %s", ErrVideoFailed, id)
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
	return last, ErrPollExceeded
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("synthesia request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("synthesia error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
