package http_test

import (
	"context"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/pkg/http"
	"github.com/lojas7/produtos/pkg/reqid"
)

func TestPostJSONForwardsRequestID(t *testing.T) {
	var gotBody, gotCT, gotRID string
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody, gotCT, gotRID = string(b), r.Header.Get("Content-Type"), r.Header.Get(reqid.Header)
		w.WriteHeader(gohttp.StatusCreated)
	}))
	defer srv.Close()

	ctx := reqid.WithValue(context.Background(), "rid-7")
	resp, err := http.Post(srv.URL).WithContext(ctx).Body(map[string]int{"id_pedido": 0}).Send()
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.NoError(t, resp.Throw())
	assert.JSONEq(t, `{"id_pedido":0}`, gotBody)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "rid-7", gotRID)
}

func TestThrowCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		gohttp.Error(w, "down", gohttp.StatusBadGateway)
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL).Send()
	require.NoError(t, err)

	err = resp.Throw()
	require.Error(t, err)
	var se *http.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, gohttp.StatusBadGateway, se.StatusCode)
	assert.Contains(t, err.Error(), "status 502")
}

func TestSingleAttemptOnTransportError(t *testing.T) {
	var calls int32
	client := &gohttp.Client{Transport: roundTripFunc(func(*gohttp.Request) (*gohttp.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, assert.AnError
	})}

	_, err := http.Get("http://catalog.invalid/products").Using(client).Retry(1, 0).Send()
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Contains(t, err.Error(), "GET http://catalog.invalid/products")
}

func TestRetriesTransportErrors(t *testing.T) {
	var calls int32
	client := &gohttp.Client{Transport: roundTripFunc(func(*gohttp.Request) (*gohttp.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, assert.AnError
	})}

	_, err := http.Get("http://catalog.invalid").Using(client).Retry(3, time.Millisecond).Send()
	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestEmpty(t *testing.T) {
	for _, body := range []string{"", "  ", "null", "null\n"} {
		assert.True(t, (&http.Response{Raw: []byte(body)}).Empty(), body)
	}
	assert.False(t, (&http.Response{Raw: []byte(`{"id":1}`)}).Empty())
}

type roundTripFunc func(*gohttp.Request) (*gohttp.Response, error)

func (f roundTripFunc) RoundTrip(r *gohttp.Request) (*gohttp.Response, error) { return f(r) }
