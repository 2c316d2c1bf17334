package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryLedger_AddMerges(t *testing.T) {
	split := NewInventoryLedger()
	require.NoError(t, split.Add("Soma", 5))
	require.NoError(t, split.Add("Soma", 7))

	whole := NewInventoryLedger()
	require.NoError(t, whole.Add("Soma", 12))

	assert.Equal(t, 12, split.Quantity("Soma"))
	assert.Equal(t, whole.Lines(), split.Lines())
	assert.Equal(t, 1, split.Len())
}

func TestInventoryLedger_AddRejectsNonPositive(t *testing.T) {
	l := NewInventoryLedger()
	assert.True(t, errors.Is(l.Add("Soma", 0), ErrInvalidParameter))
	assert.True(t, errors.Is(l.Add("Soma", -3), ErrInvalidParameter))
	assert.True(t, l.IsEmpty())
}

func TestInventoryLedger_KeepsInsertionOrder(t *testing.T) {
	l := NewInventoryLedger()
	require.NoError(t, l.Add("Weed", 1))
	require.NoError(t, l.Add("Acid", 2))
	require.NoError(t, l.Add("Weed", 3))

	assert.Equal(t, []InventoryLine{{Name: "Weed", Quantity: 4}, {Name: "Acid", Quantity: 2}}, l.Lines())
}

func TestInventoryLedger_Remove(t *testing.T) {
	l := NewInventoryLedger()
	require.NoError(t, l.Add("Soma", 10))

	_, err := l.Remove("Soma", 12, 55)
	assert.True(t, errors.Is(err, ErrInsufficientQuantity))
	assert.Equal(t, 10, l.Quantity("Soma"))

	proceeds, err := l.Remove("Soma", 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, proceeds)
	assert.Equal(t, 6, l.Quantity("Soma"))

	proceeds, err = l.Remove("Soma", 6, 10)
	require.NoError(t, err)
	assert.Equal(t, 60, proceeds)
	assert.False(t, l.Has("Soma"), "selling everything removes the line")
	assert.True(t, l.IsEmpty())
}

func TestInventoryLedger_RemoveInvalid(t *testing.T) {
	l := NewInventoryLedger()
	require.NoError(t, l.Add("Soma", 10))

	_, err := l.Remove("Coffee", 1, 5)
	assert.True(t, errors.Is(err, ErrUnknownCommodity))

	_, err = l.Remove("Soma", -5, 5)
	assert.True(t, errors.Is(err, ErrInsufficientQuantity))

	_, err = l.Remove("Soma", 0, 5)
	assert.True(t, errors.Is(err, ErrInsufficientQuantity))

	_, err = l.Remove("Soma", 5, -12)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	assert.Equal(t, 10, l.Quantity("Soma"))
}

func TestInventoryLedger_Confiscate(t *testing.T) {
	l := NewInventoryLedger()
	require.NoError(t, l.Add("Soma", 3))

	require.NoError(t, l.Confiscate("Soma", 1))
	assert.Equal(t, 2, l.Quantity("Soma"))

	require.NoError(t, l.Confiscate("Soma", 2))
	assert.False(t, l.Has("Soma"))
}

func TestInventoryLedger_LinesIsCopy(t *testing.T) {
	l := NewInventoryLedger()
	require.NoError(t, l.Add("Soma", 3))
	lines := l.Lines()
	lines[0].Quantity = 100
	assert.Equal(t, 3, l.Quantity("Soma"))
}
