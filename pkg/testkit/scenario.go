// Package testkit drives REST API tests from JSON scenario files.
//
// Each scenario describes:
//   - the HTTP request to fire (method, URL, body file, headers)
//   - products to load into the cache before the request (optional)
//   - the expected status code and response body (optional)
//   - mocked responses for outgoing HTTP calls (catalog, order intake)
//
// Scenario files live next to the *_test.go files:
//
//	testdata/
//	  forward_order.json        ← scenario
//	  forward_order_req.json    ← request body
//	  forward_order_res.json    ← expected response body
//	  cache_widget.json         ← products seeded into the cache
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, target, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario dir
	Headers         map[string]string `json:"headers"`

	// State loaded before the request
	SeedFileName string `json:"seedFileName"` // JSON array of products

	// Response assertions
	ResponseFileName string `json:"responseFileName"`
	ExpectedCode     int    `json:"expectedCode"`

	// IsMockRequired fails any outgoing call without a matching mock.
	IsMockRequired bool `json:"isMockRequired"`

	// Mocks intercept outgoing HTTP calls in definition order.
	Mocks []MockStep `json:"mocks"`

	dir string
}

// MockStep describes one intercepted outgoing call.
type MockStep struct {
	// Method is the HTTP method to match. Empty matches any.
	Method string `json:"method"`

	// MatchURL is matched as a prefix of the outgoing URL. Empty matches any.
	MatchURL string `json:"matchUrl"`

	// Times is the exact number of calls expected. 0 means at least once.
	Times int `json:"times"`

	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic response for a mock step.
type MockReturnData struct {
	// StatusCode defaults to 200.
	StatusCode int `json:"statusCode"`

	// JSON is returned verbatim as the body.
	JSON json.RawMessage `json:"json"`

	// Body is a base64-encoded body, used when JSON is empty.
	Body string `json:"body"`

	// Error, when set, fails the call at the transport level.
	Error string `json:"error"`
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	for i, step := range s.Mocks {
		if step.Times < 0 {
			return fmt.Errorf("mocks[%d].times must not be negative", i)
		}
	}
	return nil
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// RequestBodyPath returns the absolute path to the request body file, or "".
func (s *Scenario) RequestBodyPath() string { return s.resolve(s.RequestFileName) }

// ResponseBodyPath returns the absolute path to the expected response file, or "".
func (s *Scenario) ResponseBodyPath() string { return s.resolve(s.ResponseFileName) }

// SeedPath returns the absolute path to the seed file, or "".
func (s *Scenario) SeedPath() string { return s.resolve(s.SeedFileName) }

// LoadAllFromDir loads every *.json file in dir that parses as a Scenario.
// Files without a requestUrl (bodies, seeds, expected responses) are skipped.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if !looksLikeScenario(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func looksLikeScenario(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var probe struct {
		RequestURL string `json:"requestUrl"`
	}
	return json.Unmarshal(data, &probe) == nil && probe.RequestURL != ""
}
