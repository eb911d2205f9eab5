package util

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps how much GetBytes reads from one response.
const MaxBodyBytes = 8 << 20

var client = &http.Client{Timeout: 12 * time.Second}

// GetBytes fetches url and returns the body. Non-2xx responses are errors.
func GetBytes(url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
}
