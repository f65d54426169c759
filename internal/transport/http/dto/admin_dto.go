package dto

type ReconcileResponse struct {
	Created int `json:"created"`
}
