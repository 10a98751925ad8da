// Command seed loads veterinary hospitals from a JSON file into a running
// server, for bootstrapping a fresh deployment.
//
//	go run ./cmd/seed hospitals.json
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

type hospital struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seed <hospitals.json>")
		os.Exit(1)
	}

	baseURL := os.Getenv("NYANGMAP_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	var hospitals []hospital
	if err := json.Unmarshal(data, &hospitals); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	failed := 0
	for _, h := range hospitals {
		if err := post(baseURL+"/api/v1/hospitals", h); err != nil {
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", h.Name, err)
			failed++
			continue
		}
		fmt.Printf("Seeded %s\n", h.Name)
	}

	fmt.Printf("Done: %d seeded, %d failed\n", len(hospitals)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func post(url string, payload interface{}) error {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
