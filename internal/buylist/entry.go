package buylist

import "buylist/internal/model"

// Entry is the live state of one row of the list.
//
// Controls available on an entry follow its purchase state: while an item is
// still to buy it can be stepped, renamed and deleted; once purchased it is
// frozen until toggled back.
type Entry struct {
	ID        string
	Name      string
	Quantity  int
	Purchased bool

	// Editing is set between BeginRename and CommitRename/CancelRename.
	Editing bool
}

func (e Entry) Record() model.Item {
	return model.Item{Name: e.Name, Quantity: e.Quantity, Purchased: e.Purchased}
}

func (e Entry) Steppable() bool { return !e.Purchased }
func (e Entry) Deletable() bool { return !e.Purchased }
func (e Entry) Renamable() bool { return !e.Purchased }

// CanDecrement reports whether the decrement control is enabled.
func (e Entry) CanDecrement() bool { return e.Quantity > 1 }

// ToggleLabel names the state the toggle switches to.
func (e Entry) ToggleLabel() string {
	if e.Purchased {
		return "Not purchased"
	}
	return "Purchased"
}

func (e Entry) ToggleTooltip() string {
	if e.Purchased {
		return "Mark as not purchased"
	}
	return "Mark as purchased"
}
