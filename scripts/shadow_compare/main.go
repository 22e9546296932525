// Command shadow_compare replays read endpoints against both the legacy
// Express API and this service and reports response diffs. Volatile fields
// such as identifiers and timestamps are stripped before comparing so only
// shape and business data count.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Endpoints []endpoint `json:"endpoints"`
}

// volatileKeys are per-record values the two stacks never agree on.
var volatileKeys = map[string]bool{
	"id":             true,
	"_id":            true,
	"requestDate":    true,
	"dateOfIssuance": true,
	"createdAt":      true,
	"updatedAt":      true,
	"__v":            true,
}

var defaultEndpoints = []endpoint{
	{Method: http.MethodGet, Path: "/api/v1/document-requests", Critical: true},
	{Method: http.MethodGet, Path: "/health", Critical: false},
}

type result struct {
	Endpoint     endpoint
	LegacyStatus int
	GoStatus     int
	StatusMatch  bool
	BodyMatch    bool
	Err          error
	GoLatency    time.Duration
}

func main() {
	var (
		goBase      string
		legacyBase  string
		token       string
		legacyToken string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy Express API base URL")
	flag.StringVar(&token, "token", "", "bearer token for the Go API")
	flag.StringVar(&legacyToken, "legacy-cookie", "", "auth cookie value for the legacy API")
	flag.StringVar(&targetsPath, "targets", "", "optional JSON endpoints file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	endpoints := defaultEndpoints
	if targetsPath != "" {
		loaded, err := loadEndpoints(targetsPath)
		if err != nil {
			log.Fatalf("failed to load endpoints: %v", err)
		}
		endpoints = loaded
	}

	client := &http.Client{Timeout: timeout}
	breaking := 0
	var results []result

	for _, ep := range endpoints {
		res := compare(client, ep, goBase, legacyBase, token, legacyToken)
		if ep.Critical && (res.Err != nil || !res.StatusMatch || !res.BodyMatch) {
			breaking++
		}
		results = append(results, res)
	}

	report(results)
	if breaking > 0 {
		fmt.Printf("%d critical endpoint(s) diverged\n", breaking)
		os.Exit(1)
	}
	fmt.Println("parity holds")
}

func loadEndpoints(path string) ([]endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints defined in %s", path)
	}
	return file.Endpoints, nil
}

func compare(client *http.Client, ep endpoint, goBase, legacyBase, token, legacyCookie string) result {
	res := result{Endpoint: ep}

	goStatus, goBody, goLatency, err := fetch(client, goBase, ep, func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	})
	if err != nil {
		res.Err = fmt.Errorf("go request: %w", err)
		return res
	}
	res.GoLatency = goLatency

	legacyStatus, legacyBody, _, err := fetch(client, legacyBase, ep, func(r *http.Request) {
		if legacyCookie != "" {
			r.AddCookie(&http.Cookie{Name: "token", Value: legacyCookie})
		}
	})
	if err != nil {
		res.Err = fmt.Errorf("legacy request: %w", err)
		return res
	}

	res.GoStatus = goStatus
	res.LegacyStatus = legacyStatus
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody)
	return res
}

func fetch(client *http.Client, base string, ep endpoint, decorate func(*http.Request)) (int, []byte, time.Duration, error) {
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ep.Path, "/")
	req, err := http.NewRequest(strings.ToUpper(ep.Method), url, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	decorate(req)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	scrub(&aj)
	scrub(&bj)
	return reflect.DeepEqual(aj, bj)
}

// scrub removes volatile keys and folds integral floats so the two stacks'
// JSON encoders compare equal.
func scrub(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range val {
			if volatileKeys[k] {
				delete(val, k)
			}
		}
		for k, inner := range val {
			scrub(&inner)
			val[k] = inner
		}
	case []interface{}:
		for i, inner := range val {
			scrub(&inner)
			val[i] = inner
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func report(results []result) {
	fmt.Println("Legacy Parity Report")
	fmt.Println("====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Endpoint.Method, res.Endpoint.Path)
		if res.Err != nil {
			fmt.Printf("  %v\n", res.Err)
			continue
		}
		fmt.Printf("  go=%d legacy=%d latency=%s status_match=%t body_match=%t\n",
			res.GoStatus, res.LegacyStatus, res.GoLatency, res.StatusMatch, res.BodyMatch)
	}
}
