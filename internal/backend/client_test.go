package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestProductsDecodesCatalog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"p1","name":"iPhone XR","category":"Phones","cost":100,"rating":4,"image":"https://i.imgur.com/lulqWzW.jpg"}]`))
	})

	products, err := client.Products(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.Product{
		ID:       "p1",
		Name:     "iPhone XR",
		Category: "Phones",
		Cost:     100,
		Rating:   4,
		ImageURL: "https://i.imgur.com/lulqWzW.jpg",
	}, products[0])
}

func TestSearchProductsNotFoundMeansEmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "zzz", r.URL.Query().Get("value"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"No products found"}`))
	})

	products, err := client.SearchProducts(context.Background(), "zzz")

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBusinessErrorCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Product doesn't exist"}`))
	})

	_, err := client.UpdateCart(context.Background(), "tok", "ghost", 1)

	require.Error(t, err)
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Equal(t, "Product doesn't exist", be.Message)
}

func TestServerErrorIsTransportNotBusiness(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
	})

	_, err := client.Cart(context.Background(), "tok")

	require.Error(t, err)
	_, ok := AsBusiness(err)
	assert.False(t, ok, "5xx must never surface as a business error")
}

func TestMalformedBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.Products(context.Background())

	require.Error(t, err)
	_, ok := AsBusiness(err)
	assert.False(t, ok)
}

func TestUpdateCartSendsBearerTokenAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			ProductID string `json:"productId"`
			Qty       int    `json:"qty"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body.ProductID)
		assert.Equal(t, 3, body.Qty)

		_, _ = w.Write([]byte(`[{"productId":"p1","qty":3}]`))
	})

	entries, err := client.UpdateCart(context.Background(), "jwt-token", "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, []models.CartEntry{{ProductID: "p1", Qty: 3}}, entries)
}

func TestLoginMapsResponseToSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"token":"jwt-token","username":"crio-user","balance":5000}`))
	})

	sess, err := client.Login(context.Background(), "crio-user", "learnbydoing")

	require.NoError(t, err)
	assert.Equal(t, models.Session{Token: "jwt-token", Username: "crio-user", Balance: 5000}, sess)
}

func TestCheckoutReportsSuccessFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/checkout", r.URL.Path)
		var body struct {
			AddressID string `json:"addressId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a1", body.AddressID)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	ok, err := client.Checkout(context.Background(), "jwt-token", "a1")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteAddressReturnsRemainingList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/user/addresses/a1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"a2","address":"4 Privet Drive"}]`))
	})

	addresses, err := client.DeleteAddress(context.Background(), "jwt-token", "a1")

	require.NoError(t, err)
	assert.Equal(t, []models.Address{{ID: "a2", Text: "4 Privet Drive"}}, addresses)
}

func TestUnreachableBackendIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, 500*time.Millisecond)

	_, err := client.Products(context.Background())

	require.Error(t, err)
	_, ok := AsBusiness(err)
	assert.False(t, ok)
}
