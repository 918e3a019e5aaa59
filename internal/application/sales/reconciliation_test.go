package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciliationLog_DropsOldestWhenFull(t *testing.T) {
	log := NewReconciliationLog(2)
	first := log.Add(Entry{SaleID: "s1", Kind: EffectStockShortfall})
	log.Add(Entry{SaleID: "s2", Kind: EffectStockShortfall})
	log.Add(Entry{SaleID: "s3", Kind: EffectStockShortfall})

	pending := log.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "s2", pending[0].SaleID)
	assert.Equal(t, "s3", pending[1].SaleID)
	assert.False(t, log.Dismiss(first.ID))

	recorded, _, dropped := log.Metrics()
	assert.Equal(t, uint64(3), recorded)
	assert.Equal(t, uint64(1), dropped)
}

func TestReconciliationLog_TakeOnlyRetryable(t *testing.T) {
	log := NewReconciliationLog(0)
	log.Add(Entry{SaleID: "s1", Kind: EffectStockDecrement, Retryable: true})
	log.Add(Entry{SaleID: "s2", Kind: EffectStockShortfall})

	taken := log.take()
	require.Len(t, taken, 1)
	assert.Equal(t, "s1", taken[0].SaleID)
	require.Len(t, log.Pending(), 1)

	log.restore(taken)
	assert.Len(t, log.Pending(), 2)
}
