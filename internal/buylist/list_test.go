package buylist

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buylist/internal/model"
	"buylist/internal/persist"
	"buylist/internal/storage"
)

func newTestList(t *testing.T) (*List, *persist.Adapter, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	adapter := persist.New(kv, "", nil)
	return New(adapter, nil), adapter, kv
}

func bootstrapped(t *testing.T) (*List, *persist.Adapter) {
	t.Helper()
	l, adapter, _ := newTestList(t)
	require.NoError(t, l.Bootstrap(DefaultSeed()))
	return l, adapter
}

func idOf(t *testing.T, l *List, name string) string {
	t.Helper()
	for _, e := range l.Entries() {
		if e.Name == name {
			return e.ID
		}
	}
	t.Fatalf("no entry named %q", name)
	return ""
}

func TestBootstrap_SeedOnly(t *testing.T) {
	l, adapter := bootstrapped(t)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []Line{{"Tomatoes", 2}}, l.Stats().Remaining)
	assert.Equal(t, []Line{{"Cookies", 3}, {"Cheese", 1}}, l.Stats().Purchased)
	assert.Equal(t, DefaultSeed(), adapter.Load())
}

func TestBootstrap_SeedControls(t *testing.T) {
	l, _ := bootstrapped(t)

	tomatoes, _ := l.At(0)
	assert.True(t, tomatoes.Deletable())
	assert.True(t, tomatoes.Renamable())
	assert.Equal(t, "Purchased", tomatoes.ToggleLabel())

	cookies, _ := l.At(1)
	assert.False(t, cookies.Deletable())
	assert.False(t, cookies.Renamable())
	assert.Equal(t, "Not purchased", cookies.ToggleLabel())
	assert.Equal(t, "Mark as not purchased", cookies.ToggleTooltip())
}

func TestBootstrap_StoredOverridesSeed(t *testing.T) {
	l, adapter, _ := newTestList(t)
	require.NoError(t, adapter.Save([]model.Item{
		{Name: "Bread", Quantity: 2},
		{Name: "Cookies", Quantity: 5, Purchased: false},
	}))

	require.NoError(t, l.Bootstrap(DefaultSeed()))

	assert.Equal(t, []model.Item{
		{Name: "Tomatoes", Quantity: 2},
		{Name: "Cookies", Quantity: 5},
		{Name: "Cheese", Quantity: 1, Purchased: true},
		{Name: "Bread", Quantity: 2},
	}, l.Items())
}

func TestBootstrap_MalformedStoreFallsBackToSeed(t *testing.T) {
	l, _, kv := newTestList(t)
	require.NoError(t, kv.Set(persist.DefaultKey, "not json"))

	require.NoError(t, l.Bootstrap(DefaultSeed()))
	assert.Equal(t, DefaultSeed(), l.Items())
}

func TestMerge(t *testing.T) {
	seed := []model.Item{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 2}}
	stored := []model.Item{{Name: "C", Quantity: 0}, {Name: "A", Quantity: 4, Purchased: true}, {Name: "b", Quantity: 9}}

	got := Merge(seed, stored)
	assert.Equal(t, []model.Item{
		{Name: "A", Quantity: 4, Purchased: true},
		{Name: "B", Quantity: 2},
		{Name: "C", Quantity: 1},
		{Name: "b", Quantity: 9},
	}, got)

	assert.Empty(t, Merge(nil, nil))
}

func TestSubmit_Duplicate(t *testing.T) {
	l, _ := bootstrapped(t)

	for _, name := range []string{"Tomatoes", "  tomatoes ", "CHEESE"} {
		_, err := l.Submit(name)
		var dup *DuplicateError
		require.True(t, errors.As(err, &dup), "submit %q: %v", name, err)
		assert.Contains(t, dup.Error(), "already on the list")
		assert.Equal(t, 3, l.Len())
	}
}

func TestSubmit_Empty(t *testing.T) {
	l, _ := bootstrapped(t)

	_, err := l.Submit("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, 3, l.Len())
}

func TestSubmit_NewItem(t *testing.T) {
	l, adapter := bootstrapped(t)

	e, err := l.Submit("  Milk ")
	require.NoError(t, err)

	assert.Equal(t, "Milk", e.Name)
	assert.Equal(t, 1, e.Quantity)
	assert.False(t, e.Purchased)
	assert.True(t, e.Deletable())
	assert.True(t, e.Renamable())
	assert.Equal(t, "Purchased", e.ToggleLabel())
	assert.Equal(t, "Mark as purchased", e.ToggleTooltip())
	assert.False(t, e.CanDecrement())

	assert.Equal(t, []Line{{"Tomatoes", 2}, {"Milk", 1}}, l.Stats().Remaining)
	assert.Len(t, adapter.Load(), 4)
}

func TestToggle_MovesBetweenPanels(t *testing.T) {
	l, adapter := bootstrapped(t)
	id := idOf(t, l, "Tomatoes")

	require.NoError(t, l.Toggle(id))

	e, _ := l.Get(id)
	assert.True(t, e.Purchased)
	assert.False(t, e.Deletable())
	assert.Empty(t, l.Stats().Remaining)
	assert.Equal(t, []Line{{"Tomatoes", 2}, {"Cookies", 3}, {"Cheese", 1}}, l.Stats().Purchased)
	assert.True(t, adapter.Load()[0].Purchased)

	assert.ErrorIs(t, l.Delete(id), ErrPurchased)
	assert.Equal(t, 3, l.Len())

	require.NoError(t, l.Toggle(id))
	e, _ = l.Get(id)
	assert.True(t, e.Deletable())
	assert.Equal(t, []Line{{"Tomatoes", 2}}, l.Stats().Remaining)
}

func TestToggle_AbandonsRename(t *testing.T) {
	l, _ := bootstrapped(t)
	id := idOf(t, l, "Tomatoes")

	_, err := l.BeginRename(id)
	require.NoError(t, err)
	require.NoError(t, l.Toggle(id))

	e, _ := l.Get(id)
	assert.False(t, e.Editing)
	_, err = l.CommitRename(id, "Potatoes")
	assert.ErrorIs(t, err, ErrPurchased)
	e, _ = l.Get(id)
	assert.Equal(t, "Tomatoes", e.Name)
}

func TestStepper(t *testing.T) {
	l, adapter := bootstrapped(t)
	id := idOf(t, l, "Tomatoes")

	changed, err := l.Decrement(id)
	require.NoError(t, err)
	assert.True(t, changed)
	e, _ := l.Get(id)
	assert.Equal(t, 1, e.Quantity)
	assert.False(t, e.CanDecrement())

	changed, err = l.Decrement(id)
	require.NoError(t, err)
	assert.False(t, changed)
	e, _ = l.Get(id)
	assert.Equal(t, 1, e.Quantity)

	changed, err = l.Increment(id)
	require.NoError(t, err)
	assert.True(t, changed)
	e, _ = l.Get(id)
	assert.Equal(t, 2, e.Quantity)
	assert.True(t, e.CanDecrement())
	assert.Equal(t, 2, adapter.Load()[0].Quantity)
}

func TestStepper_FrozenWhilePurchased(t *testing.T) {
	l, _ := bootstrapped(t)
	id := idOf(t, l, "Cookies")

	changed, err := l.Increment(id)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = l.Decrement(id)
	require.NoError(t, err)
	assert.False(t, changed)

	e, _ := l.Get(id)
	assert.Equal(t, 3, e.Quantity)
}

func TestRename(t *testing.T) {
	l, _ := bootstrapped(t)
	id := idOf(t, l, "Cheese")

	_, err := l.BeginRename(id)
	assert.ErrorIs(t, err, ErrPurchased)

	require.NoError(t, l.Toggle(id))
	current, err := l.BeginRename(id)
	require.NoError(t, err)
	assert.Equal(t, "Cheese", current)

	e, err := l.CommitRename(id, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Cheese", e.Name)
	assert.False(t, e.Editing)

	_, err = l.BeginRename(id)
	require.NoError(t, err)
	e, err = l.CommitRename(id, "  Brie ")
	require.NoError(t, err)
	assert.Equal(t, "Brie", e.Name)
	assert.Equal(t, []Line{{"Tomatoes", 2}, {"Brie", 1}}, l.Stats().Remaining)
}

func TestRename_AllowsCaseDuplicates(t *testing.T) {
	l, _ := bootstrapped(t)
	milk, err := l.Submit("Milk")
	require.NoError(t, err)
	_, err = l.Submit("Bread")
	require.NoError(t, err)

	bread := idOf(t, l, "Bread")
	_, err = l.CommitRename(bread, "milk")
	require.NoError(t, err)

	assert.Equal(t, []Line{{"Tomatoes", 2}, {"Milk", 1}, {"milk", 1}}, l.Stats().Remaining)

	require.NoError(t, l.Toggle(bread))
	_, err = l.CommitRename(milk.ID, "milk")
	require.NoError(t, err)
	assert.Equal(t, []Line{{"Tomatoes", 2}, {"milk", 1}}, l.Stats().Remaining)
}

func TestCancelRename(t *testing.T) {
	l, _ := bootstrapped(t)
	id := idOf(t, l, "Tomatoes")

	_, err := l.BeginRename(id)
	require.NoError(t, err)
	l.CancelRename(id)

	e, _ := l.Get(id)
	assert.False(t, e.Editing)
	assert.Equal(t, "Tomatoes", e.Name)
}

func TestDelete(t *testing.T) {
	l, adapter := bootstrapped(t)
	id := idOf(t, l, "Tomatoes")

	require.NoError(t, l.Delete(id))
	assert.Equal(t, 2, l.Len())
	assert.Empty(t, l.Stats().Remaining)
	assert.Len(t, adapter.Load(), 2)

	assert.ErrorIs(t, l.Delete(id), ErrNotFound)
	_, ok := l.Get(id)
	assert.False(t, ok)
}

func TestUnknownID(t *testing.T) {
	l, _ := bootstrapped(t)

	_, err := l.Increment("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, l.Toggle("nope"), ErrNotFound)
	_, err = l.BeginRename("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.CommitRename("nope", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	l.CancelRename("nope")
}

func TestSaveFailure_KeepsMutation(t *testing.T) {
	l, _, kv := newTestList(t)
	require.NoError(t, l.Bootstrap(DefaultSeed()))
	kv.SetErr = errors.New("quota exceeded")

	_, err := l.Submit("Milk")
	require.Error(t, err)
	assert.ErrorIs(t, err, kv.SetErr)
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []Line{{"Tomatoes", 2}, {"Milk", 1}}, l.Stats().Remaining)
}

func TestIDsAreStable(t *testing.T) {
	l, _ := bootstrapped(t)
	first, _ := l.At(0)
	id := first.ID

	require.NoError(t, l.Delete(idOf(t, l, "Tomatoes")))
	_, err := l.Submit("Tomatoes")
	require.NoError(t, err)

	again, _ := l.At(2)
	assert.NotEqual(t, id, again.ID)
	_, ok := l.At(3)
	assert.False(t, ok)
}

func TestPanelsAccountForEveryItem(t *testing.T) {
	names := []string{"Milk", "Bread", "Eggs", "milk", "Tea"}
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		l, _ := bootstrapped(t)
		for step := 0; step < 40; step++ {
			entries := l.Entries()
			var id string
			if len(entries) > 0 {
				id = entries[rng.Intn(len(entries))].ID
			}
			switch op := rng.Intn(5); {
			case op == 0 || id == "":
				_, _ = l.Submit(names[rng.Intn(len(names))])
			case op == 1:
				_, err := l.Increment(id)
				require.NoError(t, err)
			case op == 2:
				_, err := l.Decrement(id)
				require.NoError(t, err)
			case op == 3:
				require.NoError(t, l.Toggle(id))
			case op == 4:
				err := l.Delete(id)
				if err != nil {
					require.ErrorIs(t, err, ErrPurchased)
				}
			}

			total := 0
			for _, e := range l.Entries() {
				require.GreaterOrEqual(t, e.Quantity, 1)
				require.Equal(t, e.Quantity > 1, e.CanDecrement())
				total += e.Quantity
			}
			require.Equal(t, total, l.Stats().Total())
		}
	}
}
