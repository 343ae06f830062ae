package service

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReconcileJoinsEntriesWithCatalog(t *testing.T) {
	catalog := []models.Product{
		{ID: "A", Name: "iPhone XR", Cost: 100},
		{ID: "B", Name: "Basketball", Cost: 50},
	}
	entries := []models.CartEntry{
		{ProductID: "A", Qty: 2},
		{ProductID: "B", Qty: 1},
	}

	lines, missing := Reconcile(entries, catalog)

	assert.Empty(t, missing)
	assert.Len(t, lines, 2)
	assert.Equal(t, "iPhone XR", lines[0].Product.Name)
	assert.Equal(t, float64(200), lines[0].LineTotal)
	assert.Equal(t, float64(50), lines[1].LineTotal)
	assert.Equal(t, float64(250), TotalValue(lines))
	assert.Equal(t, 3, TotalItems(lines))
}

func TestReconcileEmptyCart(t *testing.T) {
	catalog := []models.Product{{ID: "A", Cost: 100}}

	lines, missing := Reconcile(nil, catalog)

	assert.Empty(t, missing)
	assert.NotNil(t, lines)
	assert.Len(t, lines, 0)
	assert.Equal(t, float64(0), TotalValue(lines))
	assert.Equal(t, 0, TotalItems(lines))
}

func TestReconcileDropsEntriesMissingFromCatalog(t *testing.T) {
	catalog := []models.Product{{ID: "A", Cost: 100}}
	entries := []models.CartEntry{
		{ProductID: "A", Qty: 1},
		{ProductID: "gone", Qty: 4},
	}

	lines, missing := Reconcile(entries, catalog)

	assert.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].Product.ID)
	assert.Equal(t, []string{"gone"}, missing)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	catalog := []models.Product{{ID: "A", Cost: 10}}
	entries := []models.CartEntry{{ProductID: "A", Qty: 3}}

	_, _ = Reconcile(entries, catalog)

	assert.Equal(t, models.CartEntry{ProductID: "A", Qty: 3}, entries[0])
	assert.Equal(t, models.Product{ID: "A", Cost: 10}, catalog[0])
}

func TestSummarize(t *testing.T) {
	lines := []models.CartLine{
		{Qty: 2, LineTotal: 200},
		{Qty: 1, LineTotal: 50},
	}

	summary := Summarize(lines)

	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, float64(250), summary.TotalValue)
}

func TestHasProduct(t *testing.T) {
	entries := []models.CartEntry{
		{ProductID: "A", Qty: 2},
		{ProductID: "B", Qty: 0},
	}

	assert.True(t, hasProduct(entries, "A"))
	assert.False(t, hasProduct(entries, "B"), "zero qty does not count as present")
	assert.False(t, hasProduct(entries, "C"))
}
