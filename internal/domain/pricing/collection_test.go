package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(name, qty, price string) LineItemInput {
	return LineItemInput{Name: name, Quantity: d(qty), UnitPrice: d(price)}
}

func names(c *Collection) []string {
	out := make([]string, 0, c.Len())
	for _, item := range c.Items() {
		out = append(out, item.Name)
	}
	return out
}

func assertDenseOrder(t *testing.T, c *Collection) {
	t.Helper()
	for i, item := range c.Items() {
		assert.Equal(t, i, item.SortOrder, "item %q", item.Name)
	}
}

func newFilled(t *testing.T, itemNames ...string) *Collection {
	t.Helper()
	c, err := NewCollection(nil)
	require.NoError(t, err)
	for _, n := range itemNames {
		require.NoError(t, c.Add(input(n, "1", "10")))
	}
	return c
}

func TestCollection_AddComputesAndAppends(t *testing.T) {
	c := newFilled(t, "first")

	err := c.Add(LineItemInput{
		ItemType:        enum.ItemTypeService,
		Name:            "  Installation  ",
		Quantity:        d("10"),
		UnitPrice:       d("100"),
		DiscountPercent: d("10"),
	})
	require.NoError(t, err)

	item, err := c.At(1)
	require.NoError(t, err)
	assert.Equal(t, "Installation", item.Name)
	assert.Equal(t, enum.ItemTypeService, item.ItemType)
	assert.Equal(t, 1, item.SortOrder)
	assert.True(t, item.DiscountAmount.Equal(d("100")))
	assert.True(t, item.LineTotal.Equal(d("900")))
	assert.False(t, item.IsPersisted())
}

func TestCollection_AddDefaultsItemType(t *testing.T) {
	c := newFilled(t, "widget")
	item, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, enum.ItemTypeProduct, item.ItemType)
}

func TestCollection_AddValidation(t *testing.T) {
	tests := []struct {
		name  string
		input LineItemInput
		field string
	}{
		{"empty name", input("", "1", "1"), "name"},
		{"blank name", input("   ", "1", "1"), "name"},
		{"zero quantity", input("a", "0", "1"), "quantity"},
		{"negative quantity", input("a", "-2", "1"), "quantity"},
		{"zero price", input("a", "1", "0"), "unit_price"},
		{"discount below range", LineItemInput{Name: "a", Quantity: d("1"), UnitPrice: d("1"), DiscountPercent: d("-1")}, "discount_percent"},
		{"discount above range", LineItemInput{Name: "a", Quantity: d("1"), UnitPrice: d("1"), DiscountPercent: d("100.01")}, "discount_percent"},
		{"unknown item type", LineItemInput{ItemType: "bundle", Name: "a", Quantity: d("1"), UnitPrice: d("1")}, "item_type"},
		{"quantity finer than storage", input("a", "0.0000004", "1"), "quantity"},
		{"price with seven decimals", input("a", "1", "9.9999999"), "unit_price"},
		{"price above storage range", input("a", "1", "1000000000000000"), "unit_price"},
		{"discount finer than storage", LineItemInput{Name: "a", Quantity: d("1"), UnitPrice: d("1"), DiscountPercent: d("10.1234567")}, "discount_percent"},
		{"line total above storage range", input("a", "10000000", "10000000000"), "line_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFilled(t, "existing")

			err := c.Add(tt.input)

			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			appErr := apperror.GetAppError(err)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
			assert.Equal(t, 1, c.Len(), "collection must be unchanged")
		})
	}
}

func TestCollection_AddReportsEveryFailingField(t *testing.T) {
	c := newFilled(t)

	err := c.Add(LineItemInput{})

	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"name", "quantity", "unit_price"}, fields)
}

func TestCollection_AddStorageBoundaries(t *testing.T) {
	c := newFilled(t)
	require.NoError(t, c.Add(input("smallest", "0.000001", "0.000001")))
	require.NoError(t, c.Add(input("largest", "1", "99999999999999.999999")))
	assert.Equal(t, 2, c.Len())
}

func TestCollection_AddBoundaryDiscounts(t *testing.T) {
	c := newFilled(t)
	require.NoError(t, c.Add(LineItemInput{Name: "free", Quantity: d("1"), UnitPrice: d("5"), DiscountPercent: d("100")}))
	require.NoError(t, c.Add(LineItemInput{Name: "full price", Quantity: d("1"), UnitPrice: d("5"), DiscountPercent: d("0")}))
	assert.Equal(t, 2, c.Len())
}

func TestCollection_AddRejectsDuplicateID(t *testing.T) {
	id := uuid.New()
	c := newFilled(t)
	in := input("a", "1", "1")
	in.ID = id
	require.NoError(t, c.Add(in))

	err := c.Add(in)

	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_UpdateInPlace(t *testing.T) {
	id := uuid.New()
	c, err := NewCollection([]entity.LineItem{
		{ID: id, Name: "old", Quantity: d("1"), UnitPrice: d("10"), SortOrder: 0},
		{ID: uuid.New(), Name: "other", Quantity: d("1"), UnitPrice: d("10"), SortOrder: 1},
	})
	require.NoError(t, err)

	err = c.Update(0, LineItemInput{Name: "new", Quantity: d("4"), UnitPrice: d("25"), DiscountPercent: d("50")})
	require.NoError(t, err)

	item, _ := c.At(0)
	assert.Equal(t, id, item.ID)
	assert.Equal(t, "new", item.Name)
	assert.Equal(t, 0, item.SortOrder)
	assert.True(t, item.LineTotal.Equal(d("50")))
	assert.Equal(t, []string{"new", "other"}, names(c))
}

func TestCollection_UpdateErrors(t *testing.T) {
	c := newFilled(t, "a")

	err := c.Update(5, input("b", "1", "1"))
	assert.True(t, apperror.IsNotFound(err))

	err = c.Update(-1, input("b", "1", "1"))
	assert.True(t, apperror.IsNotFound(err))

	err = c.Update(0, input("b", "0", "1"))
	assert.True(t, apperror.IsValidation(err))

	item, _ := c.At(0)
	assert.Equal(t, "a", item.Name, "failed update must not mutate")
}

func TestCollection_RemoveRenumbers(t *testing.T) {
	c := newFilled(t, "a", "b", "c", "d")

	require.NoError(t, c.Remove(1))

	assert.Equal(t, []string{"a", "c", "d"}, names(c))
	assertDenseOrder(t, c)

	err := c.Remove(3)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 3, c.Len())
}

func TestCollection_Move(t *testing.T) {
	c := newFilled(t, "a", "b", "c")

	require.NoError(t, c.Move(2, enum.MoveUp))
	assert.Equal(t, []string{"a", "c", "b"}, names(c))
	assertDenseOrder(t, c)

	require.NoError(t, c.Move(0, enum.MoveDown))
	assert.Equal(t, []string{"c", "a", "b"}, names(c))
	assertDenseOrder(t, c)
}

func TestCollection_MoveOutOfBoundsIsNoop(t *testing.T) {
	c := newFilled(t, "a", "b")

	require.NoError(t, c.Move(0, enum.MoveUp))
	require.NoError(t, c.Move(1, enum.MoveDown))

	assert.Equal(t, []string{"a", "b"}, names(c))
	assertDenseOrder(t, c)
}

func TestCollection_MoveErrors(t *testing.T) {
	c := newFilled(t, "a", "b")

	assert.True(t, apperror.IsNotFound(c.Move(2, enum.MoveUp)))
	assert.True(t, apperror.IsValidation(c.Move(0, "sideways")))
	assert.Equal(t, []string{"a", "b"}, names(c))
}

func TestCollection_MoveRoundTrip(t *testing.T) {
	c := newFilled(t, "a", "b", "c", "d")
	before := c.Items()

	require.NoError(t, c.Move(2, enum.MoveUp))
	require.NoError(t, c.Move(1, enum.MoveDown))

	after := c.Items()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Name, after[i].Name)
		assert.Equal(t, before[i].SortOrder, after[i].SortOrder)
	}
}

func TestCollection_OrderInvariantAcrossMutations(t *testing.T) {
	c := newFilled(t)
	ops := []func() error{
		func() error { return c.Add(input("a", "1", "1")) },
		func() error { return c.Add(input("b", "1", "1")) },
		func() error { return c.Add(input("c", "1", "1")) },
		func() error { return c.Move(0, enum.MoveDown) },
		func() error { return c.Remove(0) },
		func() error { return c.Add(input("d", "1", "1")) },
		func() error { return c.Move(2, enum.MoveUp) },
		func() error { return c.Move(0, enum.MoveUp) },
		func() error { return c.Remove(2) },
		func() error { return c.Add(input("e", "1", "1")) },
		func() error { return c.Remove(0) },
		func() error { return c.Remove(0) },
		func() error { return c.Remove(0) },
	}

	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)
		assertDenseOrder(t, c)
	}
	assert.Equal(t, 0, c.Len())
}

func TestNewCollection_SeedsFromSnapshot(t *testing.T) {
	c, err := NewCollection([]entity.LineItem{
		{Name: "third", Quantity: d("1"), UnitPrice: d("3"), SortOrder: 7},
		{Name: "first", Quantity: d("1"), UnitPrice: d("1"), SortOrder: 0},
		{Name: "second", Quantity: d("2"), UnitPrice: d("1"), SortOrder: 3, LineTotal: d("999")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, names(c))
	assertDenseOrder(t, c)
	item, _ := c.At(1)
	assert.True(t, item.LineTotal.Equal(d("2")), "derived fields are recomputed on seed")
}

func TestNewCollection_RejectsDuplicateIDs(t *testing.T) {
	id := uuid.New()
	_, err := NewCollection([]entity.LineItem{
		{ID: id, Name: "a", Quantity: d("1"), UnitPrice: d("1")},
		{ID: id, Name: "b", Quantity: d("1"), UnitPrice: d("1")},
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestCollection_ItemsReturnsCopy(t *testing.T) {
	c := newFilled(t, "a")
	items := c.Items()
	items[0].Name = "mutated"

	item, _ := c.At(0)
	assert.Equal(t, "a", item.Name)
}

func TestCollection_IndexOf(t *testing.T) {
	id := uuid.New()
	c := newFilled(t, "a")
	in := input("b", "1", "1")
	in.ID = id
	require.NoError(t, c.Add(in))

	idx, ok := c.IndexOf(id)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = c.IndexOf(uuid.Nil)
	assert.False(t, ok)
}
