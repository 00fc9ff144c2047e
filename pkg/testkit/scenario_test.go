package testkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	produtoshttp "github.com/lojas7/produtos/pkg/http"
	"github.com/lojas7/produtos/pkg/testkit"
)

// testHandler answers /healthz and proxies /proxy to the catalog through
// pkg/http, so the scenarios exercise the mock transport.
var testHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/healthz":
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	case "/proxy":
		resp, err := produtoshttp.Get("http://catalog.test/products").WithContext(r.Context()).Send()
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Raw) //nolint:errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`)) //nolint:errcheck
	}
})

func TestRunDir(t *testing.T) {
	testkit.RunDir(t, testkit.Target{Handler: testHandler}, "testdata")
}

func TestLoadAllFromDirSkipsBodies(t *testing.T) {
	scenarios, errs := testkit.LoadAllFromDir("testdata")
	require.Empty(t, errs)
	assert.Len(t, scenarios, 2)
}

func TestMockTransport_JSONBody(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "json body",
		IsMockRequired: true,
		Mocks: []testkit.MockStep{{
			Method:     http.MethodGet,
			MatchURL:   "https://fakestoreapi.com/products",
			ReturnData: testkit.MockReturnData{JSON: []byte(`{"ok":true}`)},
		}},
	}
	mt := testkit.NewMockTransport(s)

	resp, err := mt.RoundTrip(httptest.NewRequest(http.MethodGet, "https://fakestoreapi.com/products/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestMockTransport_Base64Body(t *testing.T) {
	s := &testkit.Scenario{
		Mocks: []testkit.MockStep{{
			// base64(`{"ok":true}`)
			ReturnData: testkit.MockReturnData{StatusCode: 201, Body: "eyJvayI6dHJ1ZX0="},
		}},
	}
	mt := testkit.NewMockTransport(s)

	resp, err := mt.RoundTrip(httptest.NewRequest(http.MethodPost, "http://pedidos/criar", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestMockTransport_TransportErrorAndTimes(t *testing.T) {
	s := &testkit.Scenario{
		Mocks: []testkit.MockStep{{
			Method:     http.MethodPost,
			MatchURL:   "http://pedidos_lojas7:5003/",
			Times:      1,
			ReturnData: testkit.MockReturnData{Error: "connection refused"},
		}},
	}
	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodPost, "http://pedidos_lojas7:5003/pedidos/criar", nil)
	_, err := mt.RoundTrip(req)
	assert.EqualError(t, err, "connection refused")
	assert.Empty(t, mt.AssertAllCalled())

	_, _ = mt.RoundTrip(req)
	assert.Len(t, mt.AssertAllCalled(), 1, "second call breaks times=1")
	assert.Len(t, mt.Calls(), 2)
}

func TestMockTransport_UnmatchedCallFails(t *testing.T) {
	s := &testkit.Scenario{
		IsMockRequired: true,
		Mocks: []testkit.MockStep{{
			MatchURL:   "https://expected.com/",
			ReturnData: testkit.MockReturnData{StatusCode: 200},
		}},
	}
	mt := testkit.NewMockTransport(s)

	_, err := mt.RoundTrip(httptest.NewRequest(http.MethodGet, "https://unexpected.com/api", nil))
	assert.Error(t, err)
	assert.Len(t, mt.AssertAllCalled(), 1)
}

func TestAssertJSONBody(t *testing.T) {
	s := &testkit.Scenario{Name: "json assert"}
	testkit.AssertJSONBody(t, s, []byte(`{"produtos":[],"x":1}`), []byte(`{"x": 1, "produtos": []}`))
}

func TestOpenDB(t *testing.T) {
	db := testkit.OpenDB(t)
	assert.True(t, db.Migrator().HasTable("products"))
}
