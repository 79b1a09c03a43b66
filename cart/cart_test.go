package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourin/storefront/activity"
	"github.com/tourin/storefront/internal/api"
	"github.com/tourin/storefront/internal/config"
	"github.com/tourin/storefront/internal/session"
)

// fakeCartAPI serves /carts and its mutation endpoints, counting requests.
type fakeCartAPI struct {
	items    []Item
	requests int
}

func (f *fakeCartAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /carts", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "OK", "data": f.items})
	})
	mux.HandleFunc("POST /add-cart", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		payload := struct {
			ActivityID string `json:"activityId"`
		}{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.items = append(f.items, Item{
			ID:       "cart-" + payload.ActivityID,
			Quantity: 1,
			Activity: activity.Activity{ID: payload.ActivityID},
		})
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})
	mux.HandleFunc("POST /update-cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		payload := struct {
			Quantity int `json:"quantity"`
		}{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		for i, item := range f.items {
			if item.ID == r.PathValue("id") {
				f.items[i].Quantity = payload.Quantity
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})
	mux.HandleFunc("DELETE /delete-cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.requests++
		kept := f.items[:0]
		for _, item := range f.items {
			if item.ID != r.PathValue("id") {
				kept = append(kept, item)
			}
		}
		f.items = kept
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})
	return mux
}

func cartItem(id string, price int64, discount int64, quantity int) Item {
	return Item{
		ID:       id,
		Quantity: quantity,
		Activity: activity.Activity{
			ID:            "activity-" + id,
			Title:         "activity " + id,
			Price:         decimal.NewFromInt(price),
			PriceDiscount: decimal.NewFromInt(discount),
		},
	}
}

func newTestService(t *testing.T, fake *fakeCartAPI) (*Service, *Counter) {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), token))

	client := api.NewClient(config.Api{BaseUrl: server.URL, Key: "test-key"}, store)
	counter := NewCounter(client)
	return NewService(client, counter), counter
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{name: "given quantity zero should reject without network call", quantity: 0},
		{name: "given negative quantity should reject without network call", quantity: -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCartAPI{items: []Item{cartItem("a", 100, 80, 2)}}
			svc, _ := newTestService(t, fake)
			require.NoError(t, svc.Load(context.Background()))
			before := fake.requests

			result := svc.UpdateQuantity(context.Background(), "a", tt.quantity)

			assert.False(t, result.Success)
			assert.Equal(t, before, fake.requests)
			assert.Equal(t, 2, svc.Items()[0].Quantity)
		})
	}

	t.Run("given valid quantity should persist and refresh item", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{cartItem("a", 100, 80, 2)}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		result := svc.UpdateQuantity(context.Background(), "a", 5)

		assert.True(t, result.Success)
		assert.Equal(t, 5, svc.Items()[0].Quantity)
	})
}

func TestSelectedTotal(t *testing.T) {
	t.Run("given selection should sum price times quantity ignoring discount", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{
			cartItem("a", 100, 10, 2),
			cartItem("b", 50, 5, 1),
			cartItem("c", 999, 1, 7),
		}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		svc.ToggleItem("a")
		svc.ToggleItem("b")

		assert.True(t, decimal.NewFromInt(250).Equal(svc.SelectedTotal()))
	})

	t.Run("given empty selection should return zero", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{cartItem("a", 100, 10, 2)}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		assert.True(t, svc.SelectedTotal().IsZero())
	})
}

func TestToggleAll(t *testing.T) {
	t.Run("given toggle all on then off should empty selection", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{
			cartItem("a", 100, 10, 1),
			cartItem("b", 50, 5, 1),
			cartItem("c", 25, 2, 1),
		}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		svc.ToggleAll(true)
		assert.Len(t, svc.Selected(), 3)
		assert.True(t, svc.AllSelected())

		svc.ToggleAll(false)
		assert.Empty(t, svc.Selected())
		assert.False(t, svc.AllSelected())
	})

	t.Run("given empty cart should never report all selected", func(t *testing.T) {
		fake := &fakeCartAPI{}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		svc.ToggleAll(true)
		assert.False(t, svc.AllSelected())
	})
}

func TestToggleItem(t *testing.T) {
	t.Run("given toggle twice should return to unselected", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{cartItem("a", 100, 10, 1)}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		svc.ToggleItem("a")
		assert.True(t, svc.IsSelected("a"))
		svc.ToggleItem("a")
		assert.False(t, svc.IsSelected("a"))
	})

	t.Run("given unknown id should keep selection a subset of the list", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{cartItem("a", 100, 10, 1)}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		svc.ToggleItem("ghost")
		assert.Empty(t, svc.Selected())
	})
}

func TestRemove(t *testing.T) {
	t.Run("given removed item should vanish from list and selection", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{
			cartItem("a", 100, 10, 1),
			cartItem("b", 50, 5, 1),
		}}
		svc, _ := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))
		svc.ToggleAll(true)

		result := svc.Remove(context.Background(), "a")

		assert.True(t, result.Success)
		assert.Equal(t, []string{"b"}, svc.Selected())
		for _, item := range svc.Items() {
			assert.NotEqual(t, "a", item.ID)
		}
		// the select-all checkbox state stays consistent with the shrunk list
		assert.True(t, svc.AllSelected())
	})

	t.Run("given removed item should refresh shared cart count", func(t *testing.T) {
		fake := &fakeCartAPI{items: []Item{
			cartItem("a", 100, 10, 1),
			cartItem("b", 50, 5, 1),
		}}
		svc, counter := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))
		require.NoError(t, counter.Refresh(context.Background()))
		require.Equal(t, 2, counter.Count())

		result := svc.Remove(context.Background(), "b")

		assert.True(t, result.Success)
		assert.Equal(t, 1, counter.Count())
	})
}

func TestAdd(t *testing.T) {
	t.Run("given added activity should appear after refetch and bump count", func(t *testing.T) {
		fake := &fakeCartAPI{}
		svc, counter := newTestService(t, fake)
		require.NoError(t, svc.Load(context.Background()))

		result := svc.Add(context.Background(), "surf-lesson")

		assert.True(t, result.Success)
		require.Len(t, svc.Items(), 1)
		assert.Equal(t, "surf-lesson", svc.Items()[0].Activity.ID)
		assert.Equal(t, 1, counter.Count())
	})
}
