package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/pkg/bind"
)

type input struct {
	ProductIDs *[]int64 `json:"product_ids" validate:"required"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/produtos_enviar", strings.NewReader(body))
}

func TestJSONDecodes(t *testing.T) {
	var in input
	errs, err := bind.JSON(post(`{"product_ids":[1,2,3],"extra":true}`), &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, []int64{1, 2, 3}, *in.ProductIDs)
}

func TestJSONRejects(t *testing.T) {
	cases := map[string]string{
		"empty":        ``,
		"malformed":    `{"product_ids":`,
		"string entry": `{"product_ids":["a"]}`,
		"not a list":   `{"product_ids":5}`,
		"float entry":  `{"product_ids":[1.5]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var in input
			_, err := bind.JSON(post(body), &in)
			assert.Error(t, err)
		})
	}
}

func TestJSONValidation(t *testing.T) {
	var in input
	errs, err := bind.JSON(post(`{}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "The product_ids field is required.", errs["product_ids"])
}
