package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// Walks the document flow end to end against a running server:
//
//	go run ./scripts/test_ai_api.go path/to/lecture.pdf
var baseURL = envOr("API_BASE_URL", "http://localhost:3000/api")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token, contentType string, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequest(method, baseURL+url, body)
	if err != nil {
		return nil, nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Video generation polls upstream for minutes
	client := &http.Client{Timeout: 15 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func sendJSON(method, url, token string, payload interface{}) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		reader = bytes.NewReader(b)
	}
	return sendRequest(method, url, token, "application/json", reader)
}

func step(title string, resp *http.Response, body []byte, err error) {
	color.Yellow("\n%s", title)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	if json.Valid(body) {
		prettyPrint(body)
	} else {
		fmt.Printf("(%d bytes)\n", len(body))
	}
}

func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: go run ./scripts/test_ai_api.go <document.pdf|document.pptx>")
		os.Exit(2)
	}
	docPath := os.Args[1]

	color.Cyan("🚀 Starting Document Analyzer API Test\n")

	email := fmt.Sprintf("smoke%d@example.com", time.Now().Unix())
	password := "smoke12345"

	resp, body, err := sendJSON("POST", "/auth/register", "", map[string]string{
		"email": email, "password": password, "confirm_password": password,
	})
	step("[AUTH] 1. Register", resp, body, err)

	resp, body, err = sendJSON("POST", "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	step("[AUTH] 2. Login", resp, body, err)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &login)
	token := login.Data.AccessToken
	if token == "" {
		color.Red("No access token in login response")
		os.Exit(1)
	}

	resp, body, err = sendJSON("PUT", "/document/v1/view", token, map[string]string{"view": "Assessment"})
	step("[GATE] 3. Open Assessment before analysis (expect 409)", resp, body, err)

	// Multipart upload
	file, err := os.Open(docPath)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, _ := mw.CreateFormFile("file", filepath.Base(docPath))
	_, _ = io.Copy(part, file)
	_ = file.Close()
	_ = mw.WriteField("level_mode", "true")
	_ = mw.Close()

	resp, body, err = sendRequest("POST", "/document/v1/analyze", token, mw.FormDataContentType(), &form)
	step("[DOC] 4. Analyze", resp, body, err)

	resp, body, err = sendJSON("POST", "/document/v1/doubt", token, map[string]string{
		"question": "What is the single most important idea in this document?",
	})
	step("[DOC] 5. Ask a doubt", resp, body, err)

	resp, body, err = sendJSON("GET", "/document/v1/assessment", token, nil)
	step("[DOC] 6. Assessment", resp, body, err)

	resp, body, err = sendJSON("POST", "/document/v1/assessment", token, map[string]interface{}{
		"answers": map[string]string{"q1": "A", "q2": "B"},
	})
	step("[DOC] 7. Submit answers", resp, body, err)

	resp, body, err = sendJSON("POST", "/document/v1/personalized-pdf", token, nil)
	step("[DOC] 8. Personalized PDF", resp, body, err)

	resp, body, err = sendJSON("PUT", "/document/v1/language", token, map[string]string{"language": "Hindi"})
	step("[LANG] 9. Switch to Hindi", resp, body, err)

	resp, body, err = sendJSON("GET", "/document/v1/conclusion", token, nil)
	step("[DOC] 10. Conclusion (translated)", resp, body, err)

	resp, body, err = sendJSON("POST", "/document/v1/reset", token, nil)
	step("[DOC] 11. Reset", resp, body, err)

	color.Cyan("\n✅ Flow finished")
}
