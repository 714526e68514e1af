package buylist

import "buylist/internal/model"

// DefaultSeed is the built-in list shown on first launch.
func DefaultSeed() []model.Item {
	return []model.Item{
		{Name: "Tomatoes", Quantity: 2, Purchased: false},
		{Name: "Cookies", Quantity: 3, Purchased: true},
		{Name: "Cheese", Quantity: 1, Purchased: true},
	}
}
