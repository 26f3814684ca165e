package entities

type ProfileUpdateRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	Phone             string `json:"phone"`
	Company           string `json:"company"`
	BillingAddress    string `json:"billingAddress"`
	BillingCity       string `json:"billingCity"`
	BillingCountry    string `json:"billingCountry"`
	BillingPostalCode string `json:"billingPostalCode"`
}

type UserResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	Company            string `json:"company,omitempty"`
	BillingAddress     string `json:"billingAddress,omitempty"`
	BillingCity        string `json:"billingCity,omitempty"`
	BillingCountry     string `json:"billingCountry,omitempty"`
	BillingPostalCode  string `json:"billingPostalCode,omitempty"`
	SubscriptionStatus string `json:"subscriptionStatus"`
}
