// Command healthcheck checks a running synthpanel for container health checks.
// It exits 0 only when the API reports healthy and the served route table
// still exposes a public login route, since without one every protected page
// redirects to nowhere.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const defaultAddr = "127.0.0.1:8080"

var errNoLoginRoute = errors.New("route table has no public login route")

func main() {
	os.Exit(check(os.Getenv("SYNTHPANEL_LISTEN_ADDR")))
}

func check(listenAddr string) int {
	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := verify(ctx, client, "http://"+normalizeAddr(listenAddr)); err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		return 1
	}
	return 0
}

func verify(ctx context.Context, client *http.Client, baseURL string) error {
	var health struct {
		Status string `json:"status"`
	}
	if err := getJSON(ctx, client, baseURL+"/api/v1/health", &health); err != nil {
		return err
	}
	if health.Status != "ok" {
		return fmt.Errorf("health status %q", health.Status)
	}

	var routes []struct {
		Name         string `json:"name"`
		RequiresAuth bool   `json:"requires_auth"`
	}
	if err := getJSON(ctx, client, baseURL+"/api/v1/routes", &routes); err != nil {
		return err
	}
	for _, r := range routes {
		if r.Name == "login" && !r.RequiresAuth {
			return nil
		}
	}
	return errNoLoginRoute
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// normalizeAddr ensures the healthcheck connects to loopback rather than the
// bind-all address. Docker containers bind 0.0.0.0 but the healthcheck runs
// inside the same container, so loopback is reachable and more correct.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
