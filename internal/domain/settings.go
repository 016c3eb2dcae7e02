package domain

// AppSettings is the flat configuration blob consumed by the UI. The core
// stores never read it.
type AppSettings struct {
	Currency       string `json:"currency"`
	DateFormat     string `json:"dateFormat"`
	Theme          string `json:"theme"`
	CompanyName    string `json:"companyName"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyAddress string `json:"companyAddress"`
}
