package model

type Address struct {
	Street      string `json:"street"`
	Postcode    string `json:"postcode"`
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type Customer struct {
	Email string `json:"email"`
}
