// Run executes a single scenario against a Target.
// RunDir discovers all scenario files in a directory and runs them as subtests.

package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	produtoshttp "github.com/lojas7/produtos/pkg/http"
)

// Target is the system under test.
type Target struct {
	Handler http.Handler

	// Seed loads the raw contents of a scenario's seedFileName into the
	// cache store. Required only when scenarios use seedFileName.
	Seed func(t *testing.T, raw []byte)

	// Reset clears state between scenarios. Optional.
	Reset func(t *testing.T)
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Run executes the scenario at scenarioPath.
//
// Lifecycle per scenario:
//  1. Reset state and load the seed file.
//  2. Install the mock transport on pkg/http.DefaultClient.
//  3. Fire the request with httptest.
//  4. Assert status code and response body.
//  5. Verify mock call counts and restore the transport.
func Run(t *testing.T, target Target, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, target, s)
	})
}

// RunDir runs every scenario file in dir as a t.Run subtest. Request, seed
// and response files in the same directory are recognised and skipped.
func RunDir(t *testing.T, target Target, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}
	if len(scenarios) == 0 {
		t.Fatalf("testkit: no scenarios in %q", dir)
	}

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, target, s)
		})
	}
}

// ─── Internal execution ───────────────────────────────────────────────────────

func runScenario(t *testing.T, target Target, s *Scenario) {
	t.Helper()

	if target.Reset != nil {
		target.Reset(t)
	}
	if p := s.SeedPath(); p != "" {
		if target.Seed == nil {
			t.Fatalf("[%s] seedFileName set but Target.Seed is nil", s.Name)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read seed file %q: %v", s.Name, p, err)
		}
		target.Seed(t, data)
	}

	var reqBody io.Reader
	if p := s.RequestBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read request file %q: %v", s.Name, p, err)
		}
		reqBody = bytes.NewReader(data)
	}

	mt := NewMockTransport(s)
	originalTransport := produtoshttp.DefaultClient.Transport
	produtoshttp.DefaultClient.Transport = mt
	defer func() {
		produtoshttp.DefaultClient.Transport = originalTransport
	}()

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	target.Handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, expected, rec.Body.Bytes())
		}
	}

	AssertMocksAllCalled(t, s, mt)
}
