package identity

import "time"

type Address struct {
	Street         string `json:"street,omitempty"`
	ExteriorNumber string `json:"exteriorNumber,omitempty"`
	InteriorNumber string `json:"interiorNumber,omitempty"`
	Neighborhood   string `json:"neighborhood,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Municipality   string `json:"municipality,omitempty"`
	State          string `json:"state,omitempty"`
	Full           string `json:"full,omitempty"`
}

func (a Address) empty() bool {
	return a.Street == "" && a.ExteriorNumber == "" && a.Neighborhood == "" &&
		a.PostalCode == "" && a.Municipality == "" && a.State == ""
}

// Result is the best-effort outcome of reading one OCR text. Every field is
// optional; absent values are zero and usually accompanied by a warning.
type Result struct {
	CURP            string   `json:"curp,omitempty"`
	CURPValid       bool     `json:"curpValid"`
	ElectorKey      string   `json:"electorKey,omitempty"`
	INENumber       string   `json:"ineNumber,omitempty"`
	FullName        string   `json:"fullName,omitempty"`
	GivenNames      string   `json:"givenNames,omitempty"`
	PaternalSurname string   `json:"paternalSurname,omitempty"`
	MaternalSurname string   `json:"maternalSurname,omitempty"`
	BirthDate       string   `json:"birthDate,omitempty"`
	Sex             Sex      `json:"sex,omitempty"`
	BirthState      string   `json:"birthState,omitempty"`
	Address         *Address `json:"address,omitempty"`
	ValidityYear    int      `json:"validityYear,omitempty"`
	Section         string   `json:"section,omitempty"`
	ConfidenceScore int      `json:"confidenceScore"`
	Warnings        []string `json:"warnings"`
	Side            Side     `json:"side"`
}

type Claimed struct {
	Name      string `json:"name,omitempty"`
	CURP      string `json:"curp,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

type Validation struct {
	IsValid    bool     `json:"isValid"`
	Matches    []string `json:"matches"`
	Mismatches []string `json:"mismatches"`
}

// Format of the OCR payload handed to the service.
type Format string

const (
	FormatText Format = "text"
	FormatHOCR Format = "hocr"
)

func (f Format) Valid() bool {
	return f == FormatText || f == FormatHOCR
}

type Extraction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Side      Side      `json:"side"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

type ExtractionSummary struct {
	ID              string    `json:"id"`
	Side            Side      `json:"side"`
	ConfidenceScore int       `json:"confidenceScore"`
	HasCURP         bool      `json:"hasCurp"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Actor struct {
	TenantID  string
	UserID    string
	RequestID string
	IP        string
}

func (a Actor) Authenticated() bool {
	return a.TenantID != "" && a.UserID != ""
}
