package dto

type ToggleItemRequest struct {
	ProductID string `json:"product_id"`
}

type QuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type ItemImageRequest struct {
	Image string `json:"image"`
}

type ImageEditRequest struct {
	Prompt string `json:"prompt"`
}

type CustomerRequest struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PINumber   string `json:"pi_number"`
	Date       string `json:"date"`
	ValidUntil string `json:"valid_until"`
}
