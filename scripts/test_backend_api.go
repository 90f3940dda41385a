package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:8080"
	apiKey  = ""
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Sync Backend API Test\n")

	color.Yellow("\n[CATALOG] 1. Fetch Tool Catalog")
	resp, body, err := sendRequest("GET", "/tools", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Yellow("\n[SYNC] 2. Replay Usage Log")
	resp, body, err = sendRequest("POST", "/usage/log", map[string]interface{}{
		"event":       "context_changed",
		"detail":      "contract",
		"occurred_at": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Yellow("\n[SYNC] 3. Replay Favorite Toggle")
	resp, _, err = sendRequest("POST", "/tools/clause_extractor/favorite", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	resp, _, err = sendRequest("DELETE", "/tools/clause_extractor/favorite", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Yellow("\n[SYNC] 4. Replay Preferences Update (conflict path)")
	resp, body, err = sendRequest("PUT", "/users/preferences", map[string]interface{}{
		"preferences": map[string]interface{}{"theme": "dark"},
		"updated_at":  time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode == http.StatusConflict {
		color.Magenta("Conflict reported, server copy:")
		prettyPrint(body)
	} else {
		color.Green("Status: %s", resp.Status)
	}

	color.Cyan("\n✅ Done")
}
