package dto

type DiscoveryPage struct {
	Items      []Pet  `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
