package model

// Item is one entry of the buy list as it is persisted.
type Item struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Purchased bool   `json:"purchased"`
}
