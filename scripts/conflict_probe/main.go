// Command conflict-probe drives the booking conflict workflow against a
// running gateway: open a session, apply a time range, run the check, and
// optionally confirm. Useful for smoke-testing a deployment.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type openResponse struct {
	SessionID string `json:"session_id"`
}

type alert struct {
	Level     string `json:"level"`
	Title     string `json:"title"`
	Conflicts []struct {
		Title     string `json:"title"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	} `json:"conflicts"`
}

func main() {
	var (
		base        string
		token       string
		classroomID int64
		preset      string
		start       string
		end         string
		confirm     string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "Gateway API base URL")
	flag.StringVar(&token, "token", os.Getenv("GATEWAY_TOKEN"), "Bearer token")
	flag.Int64Var(&classroomID, "classroom", 0, "Classroom ID to probe")
	flag.StringVar(&preset, "preset", "", "Time preset label, e.g. 第一节课")
	flag.StringVar(&start, "start", "", "Start time (RFC3339), overrides preset")
	flag.StringVar(&end, "end", "", "End time (RFC3339), overrides preset")
	flag.StringVar(&confirm, "confirm", "", "Booking title; confirm when the check passes")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	if classroomID == 0 {
		log.Fatal("-classroom is required")
	}

	client := &http.Client{Timeout: timeout}

	var opened openResponse
	if err := call(client, base, token, http.MethodPost,
		fmt.Sprintf("/classrooms/%d/conflict-sessions", classroomID), nil, &opened); err != nil {
		log.Fatalf("open session: %v", err)
	}
	fmt.Printf("session %s opened for classroom %d\n", opened.SessionID, classroomID)

	update := map[string]interface{}{}
	if preset != "" {
		update["preset_label"] = preset
	}
	if start != "" && end != "" {
		update["start_time"] = start
		update["end_time"] = end
	}
	if len(update) > 0 {
		if err := call(client, base, token, http.MethodPut,
			"/conflict-sessions/"+opened.SessionID, update, nil); err != nil {
			log.Fatalf("update form: %v", err)
		}
	}

	var verdict alert
	if err := call(client, base, token, http.MethodPost,
		"/conflict-sessions/"+opened.SessionID+"/check", nil, &verdict); err != nil {
		log.Fatalf("check: %v", err)
	}

	fmt.Printf("[%s] %s\n", verdict.Level, verdict.Title)
	for _, c := range verdict.Conflicts {
		fmt.Printf("  conflicts with %q %s - %s\n", c.Title, c.StartTime, c.EndTime)
	}

	if verdict.Level != "success" {
		os.Exit(1)
	}
	if confirm == "" {
		return
	}

	if err := call(client, base, token, http.MethodPost,
		"/conflict-sessions/"+opened.SessionID+"/confirm",
		map[string]string{"title": confirm}, nil); err != nil {
		log.Fatalf("confirm: %v", err)
	}
	fmt.Printf("booking %q confirmed\n", confirm)
}

func call(client *http.Client, base, token, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, base+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if env.Error != nil {
		return fmt.Errorf("%s %s: %s (%s)", method, path, env.Error.Message, env.Error.Code)
	}
	if dest != nil && env.Data != nil {
		return json.Unmarshal(env.Data, dest)
	}
	return nil
}
