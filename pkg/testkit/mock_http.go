package testkit

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// MockTransport implements http.RoundTripper. It answers outgoing requests
// from a scenario's mock steps instead of touching the network.
//
//	mt := testkit.NewMockTransport(scenario)
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
//	// ... run test ...
//	errs := mt.AssertAllCalled()
type MockTransport struct {
	mu      sync.Mutex
	steps   []httpMockEntry
	require bool
	calls   []string
}

type httpMockEntry struct {
	step      MockStep
	callCount int
}

// NewMockTransport builds a MockTransport from s.Mocks.
func NewMockTransport(s *Scenario) *MockTransport {
	mt := &MockTransport{require: s.IsMockRequired}
	for _, step := range s.Mocks {
		mt.steps = append(mt.steps, httpMockEntry{step: step})
	}
	return mt
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, req.Method+" "+req.URL.String())

	for i := range mt.steps {
		entry := &mt.steps[i]
		if entry.step.Method != "" && !strings.EqualFold(entry.step.Method, req.Method) {
			continue
		}
		if !urlMatches(req.URL.String(), entry.step.MatchURL) {
			continue
		}

		entry.callCount++
		if entry.step.ReturnData.Error != "" {
			return nil, errors.New(entry.step.ReturnData.Error)
		}
		return buildHTTPResponse(req, entry.step.ReturnData)
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s %s: no matching mock step", req.Method, req.URL)
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"error":"no mock configured"}`)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// Calls returns every intercepted "METHOD URL" in order.
func (mt *MockTransport) Calls() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]string(nil), mt.calls...)
}

// AssertAllCalled checks every step's call count: exactly Times when set,
// at least once otherwise.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.steps {
		switch {
		case e.step.Times > 0 && e.callCount != e.step.Times:
			errs = append(errs, fmt.Errorf(
				"testkit: mock %s %q called %d times, want %d",
				e.step.Method, e.step.MatchURL, e.callCount, e.step.Times,
			))
		case e.step.Times == 0 && e.callCount == 0:
			errs = append(errs, fmt.Errorf(
				"testkit: mock %s %q was never called",
				e.step.Method, e.step.MatchURL,
			))
		}
	}
	return errs
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// urlMatches reports a prefix match. Empty pattern matches any URL.
func urlMatches(candidate, pattern string) bool {
	if pattern == "" {
		return true
	}
	return strings.HasPrefix(candidate, pattern)
}

func buildHTTPResponse(req *http.Request, rd MockReturnData) (*http.Response, error) {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	var bodyBytes []byte
	switch {
	case len(rd.JSON) > 0:
		bodyBytes = rd.JSON
	case rd.Body != "":
		decoded, err := base64.StdEncoding.DecodeString(rd.Body)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(rd.Body)
			if err != nil {
				return nil, fmt.Errorf("testkit: base64 decode mock body: %w", err)
			}
		}
		bodyBytes = decoded
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(bodyBytes)),
		Request:    req,
	}, nil
}
