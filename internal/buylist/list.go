// Package buylist holds the shopping list state and every operation a user
// can perform on it. Each mutating operation ends with Refresh, which
// recomputes the statistics panels and rewrites the persisted list.
//
// A List is driven from a single event loop and is not safe for concurrent use.
package buylist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buylist/internal/model"
)

var (
	ErrNotFound  = errors.New("buylist: no such item")
	ErrPurchased = errors.New("buylist: item is purchased")
	ErrEmptyName = errors.New("buylist: empty name")
)

// DuplicateError is returned by Submit when the name is already listed.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Item %q is already on the list!", e.Name)
}

// Store persists the list. persist.Adapter implements it.
type Store interface {
	Save(items []model.Item) error
	Load() []model.Item
}

type List struct {
	store  Store
	logger *zap.Logger

	entries []*Entry
	byID    map[string]*Entry
	stats   Stats
	newID   func() string
}

func New(store Store, logger *zap.Logger) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List{
		store:  store,
		logger: logger,
		byID:   map[string]*Entry{},
		newID:  uuid.NewString,
	}
}

// Bootstrap fills an empty list from seed merged with the stored items.
func (l *List) Bootstrap(seed []model.Item) error {
	stored := l.store.Load()
	merged := Merge(seed, stored)
	for _, it := range merged {
		if _, err := l.create(it.Name, it.Quantity, it.Purchased); err != nil {
			l.logger.Warn("skip stored item", zap.String("name", it.Name), zap.Error(err))
		}
	}
	l.logger.Info("list bootstrapped",
		zap.Int("seed", len(seed)),
		zap.Int("stored", len(stored)),
		zap.Int("items", len(l.entries)))
	return l.Refresh()
}

// Merge combines seed and stored items keyed by exact name. Stored items win
// but keep the seed's position; names only present in stored are appended.
// Quantities below 1 become 1.
func Merge(seed, stored []model.Item) []model.Item {
	var out []model.Item
	pos := map[string]int{}
	put := func(it model.Item) {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if i, ok := pos[it.Name]; ok {
			out[i] = it
			return
		}
		pos[it.Name] = len(out)
		out = append(out, it)
	}
	for _, it := range seed {
		put(it)
	}
	for _, it := range stored {
		put(it)
	}
	return out
}

// Submit adds a new, not yet purchased item with quantity 1.
func (l *List) Submit(raw string) (Entry, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	if l.hasName(name) {
		l.logger.Debug("duplicate item rejected", zap.String("name", name))
		return Entry{}, &DuplicateError{Name: name}
	}
	return l.Create(name, 1, false)
}

func (l *List) hasName(name string) bool {
	want := strings.ToLower(name)
	for _, e := range l.entries {
		if strings.ToLower(strings.TrimSpace(e.Name)) == want {
			return true
		}
	}
	return false
}

// Create appends an entry and refreshes. The entry is returned even when
// persisting fails.
func (l *List) Create(name string, quantity int, purchased bool) (Entry, error) {
	e, err := l.create(name, quantity, purchased)
	if err != nil {
		return Entry{}, err
	}
	return *e, l.Refresh()
}

func (l *List) create(name string, quantity int, purchased bool) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if quantity < 1 {
		quantity = 1
	}
	e := &Entry{ID: l.newID(), Name: name, Quantity: quantity, Purchased: purchased}
	l.entries = append(l.entries, e)
	l.byID[e.ID] = e
	l.logger.Debug("item created",
		zap.String("id", e.ID),
		zap.String("name", name),
		zap.Int("quantity", quantity),
		zap.Bool("purchased", purchased))
	return e, nil
}

// Increment raises the quantity by one. It reports false without refreshing
// when the item is purchased.
func (l *List) Increment(id string) (bool, error) {
	return l.step(id, 1)
}

// Decrement lowers the quantity by one, never below 1.
func (l *List) Decrement(id string) (bool, error) {
	return l.step(id, -1)
}

func (l *List) step(id string, delta int) (bool, error) {
	e, ok := l.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if !e.Steppable() {
		return false, nil
	}
	n := e.Quantity + delta
	if n < 1 {
		return false, nil
	}
	e.Quantity = n
	return true, l.Refresh()
}

// Toggle flips the purchase state. Marking an item purchased abandons any
// rename in progress.
func (l *List) Toggle(id string) error {
	e, ok := l.byID[id]
	if !ok {
		return ErrNotFound
	}
	e.Purchased = !e.Purchased
	if e.Purchased {
		e.Editing = false
	}
	l.logger.Debug("item toggled", zap.String("name", e.Name), zap.Bool("purchased", e.Purchased))
	return l.Refresh()
}

// BeginRename puts the entry in edit mode and returns the text to pre-fill.
func (l *List) BeginRename(id string) (string, error) {
	e, ok := l.byID[id]
	if !ok {
		return "", ErrNotFound
	}
	if !e.Renamable() {
		return "", ErrPurchased
	}
	e.Editing = true
	return e.Name, nil
}

// CommitRename stores the trimmed value, keeping the old name when the value
// is blank. Duplicates are not checked.
func (l *List) CommitRename(id, value string) (Entry, error) {
	e, ok := l.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	if !e.Editing && !e.Renamable() {
		return *e, ErrPurchased
	}
	if name := strings.TrimSpace(value); name != "" {
		e.Name = name
	}
	e.Editing = false
	return *e, l.Refresh()
}

func (l *List) CancelRename(id string) {
	if e, ok := l.byID[id]; ok {
		e.Editing = false
	}
}

// Delete removes an entry that is not purchased.
func (l *List) Delete(id string) error {
	e, ok := l.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !e.Deletable() {
		return ErrPurchased
	}
	for i, cur := range l.entries {
		if cur == e {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	delete(l.byID, id)
	l.logger.Debug("item deleted", zap.String("name", e.Name))
	return l.Refresh()
}

// Refresh recomputes the statistics and persists the whole list.
func (l *List) Refresh() error {
	items := l.Items()
	l.stats = Aggregate(items)
	if err := l.store.Save(items); err != nil {
		l.logger.Error("save items", zap.Error(err))
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Items returns the records in display order.
func (l *List) Items() []model.Item {
	out := make([]model.Item, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Record())
	}
	return out
}

// Entries returns a snapshot of the entries in display order.
func (l *List) Entries() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, *e)
	}
	return out
}

func (l *List) Get(id string) (Entry, bool) {
	e, ok := l.byID[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// At returns the entry at a zero-based display position.
func (l *List) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return *l.entries[i], true
}

func (l *List) Len() int { return len(l.entries) }

// Stats returns the panels computed by the last Refresh.
func (l *List) Stats() Stats { return l.stats }
