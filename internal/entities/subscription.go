package entities

type CheckoutResponse struct {
	URL string `json:"url"`
}
