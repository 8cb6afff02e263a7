package identity

import (
	"strings"
	"testing"
)

func TestExtractAddress(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Address
	}{
		{
			name: "labelled number and alcaldia",
			text: "DOMICILIO AV INSURGENTES SUR NUM 1602 INT 5\nCOL. CRÉDITO CONSTRUCTOR C.P. 03940\nALCALDÍA BENITO JUÁREZ, CIUDAD DE MÉXICO",
			want: Address{
				Street:         "AV INSURGENTES SUR",
				ExteriorNumber: "1602",
				InteriorNumber: "5",
				Neighborhood:   "CREDITO CONSTRUCTOR",
				PostalCode:     "03940",
				Municipality:   "BENITO JUAREZ",
				State:          "CIUDAD DE MEXICO",
				Full:           "AV INSURGENTES SUR #1602 INT 5, COL. CREDITO CONSTRUCTOR, C.P. 03940, BENITO JUAREZ, CIUDAD DE MEXICO",
			},
		},
		{
			name: "state trimmed from municipality",
			text: "DOMICILIO\nCALLE HIDALGO NO. 45\nCOL AMERICANA\nMUNICIPIO DE GUADALAJARA JALISCO",
			want: Address{
				Street:         "CALLE HIDALGO",
				ExteriorNumber: "45",
				Neighborhood:   "AMERICANA",
				Municipality:   "GUADALAJARA",
				State:          "JALISCO",
				Full:           "CALLE HIDALGO #45, COL. AMERICANA, GUADALAJARA, JALISCO",
			},
		},
		{
			name: "longest state name wins",
			text: "DOMICILIO\nCOL CENTRO\nLA PAZ, BAJA CALIFORNIA SUR",
			want: Address{
				Neighborhood: "CENTRO",
				State:        "BAJA CALIFORNIA SUR",
				Full:         "COL. CENTRO, BAJA CALIFORNIA SUR",
			},
		},
		{
			name: "municipality and state lines",
			text: "DOMICILIO\nAV JUAREZ 10\nCOL CENTRO 50000\nMUNICIPIO TOLUCA\nESTADO DE MEXICO",
			want: Address{
				Street:         "AV JUAREZ",
				ExteriorNumber: "10",
				Neighborhood:   "CENTRO",
				PostalCode:     "50000",
				Municipality:   "TOLUCA",
				State:          "ESTADO DE MEXICO",
				Full:           "AV JUAREZ #10, COL. CENTRO, C.P. 50000, TOLUCA, ESTADO DE MEXICO",
			},
		},
		{
			name: "street named after a state",
			text: "DOMICILIO\nCALLE HIDALGO 45\nCOL CENTRO C.P. 44100",
			want: Address{
				Street:         "CALLE HIDALGO",
				ExteriorNumber: "45",
				Neighborhood:   "CENTRO",
				PostalCode:     "44100",
				Full:           "CALLE HIDALGO #45, COL. CENTRO, C.P. 44100",
			},
		},
		{
			name: "aguascalientes postal code without label",
			text: "DOMICILIO\nCALLE MADERO 12\nCOL CENTRO 20000\nAGUASCALIENTES, AGS.",
			want: Address{
				Street:         "CALLE MADERO",
				ExteriorNumber: "12",
				Neighborhood:   "CENTRO",
				PostalCode:     "20000",
				State:          "AGUASCALIENTES",
				Full:           "CALLE MADERO #12, COL. CENTRO, C.P. 20000, AGUASCALIENTES",
			},
		},
		{
			name: "postal code only",
			text: "DOMICILIO\nC.P. 64000",
			want: Address{PostalCode: "64000", Full: "C.P. 64000"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := ExtractIdentityFields(tc.text)
			if r.Address == nil {
				t.Fatalf("expected address, warnings %v", r.Warnings)
			}
			if *r.Address != tc.want {
				t.Fatalf("unexpected address\n got: %+v\nwant: %+v", *r.Address, tc.want)
			}
		})
	}
}

func TestExtractAddressIgnoresHeaderCountry(t *testing.T) {
	r := ExtractIdentityFields("INSTITUTO NACIONAL ELECTORAL\nMÉXICO")
	if r.Address != nil {
		t.Fatalf("expected no address from card header, got %+v", r.Address)
	}
}

func TestPostalCodeSkipsYears(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"REGISTRO 20301 44100", "44100"},
		{"ANO DE REGISTRO 20101", ""},
		{"VIGENCIA 20332\nCOL CENTRO 21000", "21000"},
		{"COL CENTRO 20000", "20000"},
		{"CP 20100", "20100"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.text, func(t *testing.T) {
			if got := postalCode(tc.text); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAddressBlockKeepsAddressParts(t *testing.T) {
	doc := newDocument("DOMICILIO\nCOL CENTRO\nMUNICIPIO TOLUCA\nESTADO DE MEXICO\nESTADO 15 MUNICIPIO 106")
	block, labelled := addressBlock(doc)
	if !labelled {
		t.Fatal("expected labelled block")
	}
	want := []string{"COL CENTRO", "MUNICIPIO TOLUCA", "ESTADO DE MEXICO"}
	if strings.Join(block, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected block %q", block)
	}
}
