package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `[]`)
	}))
	defer mockServer.Close()

	c := NewClient(mockServer.URL, WithTokenSource(staticToken("tok-123")))
	_, err := c.ListProducts(context.Background(), ListParams{})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprintln(w, `[]`)
	}))
	defer mockServer.Close()

	c := NewClient(mockServer.URL, WithTokenSource(staticToken("")))
	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
}

func TestUnauthorizedOnProtectedRequestTriggersHandler(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mockServer.Close()

	var forced bool
	c := NewClient(mockServer.URL, WithUnauthorizedHandler(func() { forced = true }))
	_, err := c.Profile(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, forced, "a 401 on a non-login request must invoke the unauthorized handler")
}

func TestUnauthorizedOnLoginDoesNotTriggerHandler(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"message":"Unauthorized"}`)
	}))
	defer mockServer.Close()

	var forced bool
	c := NewClient(mockServer.URL, WithUnauthorizedHandler(func() { forced = true }))
	_, err := c.Login(context.Background(), "a@b.com", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, forced, "bad login credentials are not a session expiry")
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"message":"EntityNotFoundError"}`)
	}))
	defer mockServer.Close()

	c := NewClient(mockServer.URL)
	_, err := c.GetProduct(context.Background(), 99999)

	assert.ErrorIs(t, err, ErrNotFound)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Message, "EntityNotFoundError")
}

func TestTransportErrorIsNotAnAPIError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := c.ListCategories(context.Background())

	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "transport failures propagate as wrapped errors, not *Error")
}

func TestListParamsValuesOmitsUnsetFields(t *testing.T) {
	q := ListParams{Offset: 0, Limit: 12}.Values()
	assert.Empty(t, q.Get("title"))
	assert.Empty(t, q.Get("categoryId"))
	assert.Empty(t, q.Get("price_min"))
	assert.Empty(t, q.Get("price_max"))
	assert.Equal(t, "0", q.Get("offset"))
	assert.Equal(t, "12", q.Get("limit"))
}

func TestListProductsForwardsParams(t *testing.T) {
	var gotQuery string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Product{{ID: 1, Title: "Shirt"}})
	}))
	defer mockServer.Close()

	c := NewClient(mockServer.URL)
	products, err := c.ListProducts(context.Background(), ListParams{Title: "shirt", PriceMin: 1, PriceMax: 50, Offset: 12, Limit: 12})
	require.NoError(t, err)

	assert.Len(t, products, 1)
	assert.Contains(t, gotQuery, "title=shirt")
	assert.Contains(t, gotQuery, "price_min=1")
	assert.Contains(t, gotQuery, "price_max=50")
	assert.Contains(t, gotQuery, "offset=12")
}

func TestDeleteProductDecodesBoolean(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		fmt.Fprintln(w, `true`)
	}))
	defer mockServer.Close()

	c := NewClient(mockServer.URL)
	ok, err := c.DeleteProduct(context.Background(), 626)
	require.NoError(t, err)
	assert.True(t, ok)
}
