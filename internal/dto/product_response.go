package dto

type ProductResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Manufacturer string   `json:"manufacturer"`
	Price        string   `json:"price"`
	Unit         string   `json:"unit"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
}
