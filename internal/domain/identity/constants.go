package identity

type Side string

const (
	SideFront   Side = "front"
	SideBack    Side = "back"
	SideUnknown Side = "unknown"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Confidence points per extracted field group.
const (
	pointsCURP         = 30
	pointsElectorKey   = 15
	pointsINENumber    = 10
	pointsBirthDate    = 15
	pointsSex          = 5
	pointsBirthState   = 5
	pointsName         = 10
	pointsAddress      = 10
	penaltyInvalidCURP = 10
	maxConfidence      = 100
)

const (
	WarningCURPNotFound        = "curp not found"
	WarningCURPStructure       = "curp failed structural validation"
	WarningCURPCheckDigit      = "curp check digit mismatch"
	WarningCURPBirthDate       = "curp birth date is not a valid calendar date"
	WarningCURPState           = "curp state code is unknown"
	WarningElectorKeyNotFound  = "elector key not found"
	WarningINENumberNotFound   = "id number not found"
	WarningBirthDateNotFound   = "birth date not found"
	WarningBirthDateConflict   = "birth date printed on card differs from curp"
	WarningNameNotFound        = "name not found"
	WarningNameIncomplete      = "name has fewer than three parts"
	WarningAddressNotFound     = "address not found"
	WarningSideUndetermined    = "could not determine card side"
	WarningMultipleCURPMatches = "multiple curp candidates found"
)

const BornAbroadCode = "NE"

// stateCodes maps the two-letter CURP birth-state code to the state name.
var stateCodes = map[string]string{
	"AS": "AGUASCALIENTES",
	"BC": "BAJA CALIFORNIA",
	"BS": "BAJA CALIFORNIA SUR",
	"CC": "CAMPECHE",
	"CL": "COAHUILA",
	"CM": "COLIMA",
	"CS": "CHIAPAS",
	"CH": "CHIHUAHUA",
	"DF": "CIUDAD DE MEXICO",
	"DG": "DURANGO",
	"GT": "GUANAJUATO",
	"GR": "GUERRERO",
	"HG": "HIDALGO",
	"JC": "JALISCO",
	"MC": "ESTADO DE MEXICO",
	"MN": "MICHOACAN",
	"MS": "MORELOS",
	"NT": "NAYARIT",
	"NL": "NUEVO LEON",
	"OC": "OAXACA",
	"PL": "PUEBLA",
	"QT": "QUERETARO",
	"QR": "QUINTANA ROO",
	"SP": "SAN LUIS POTOSI",
	"SL": "SINALOA",
	"SR": "SONORA",
	"TC": "TABASCO",
	"TS": "TAMAULIPAS",
	"TL": "TLAXCALA",
	"VZ": "VERACRUZ",
	"YN": "YUCATAN",
	"ZS": "ZACATECAS",
	"NE": "NACIDO EN EL EXTRANJERO",
}

// stateAliases maps spellings found in printed addresses to the canonical
// state name. Canonical names map to themselves.
var stateAliases = map[string]string{
	"AGUASCALIENTES":      "AGUASCALIENTES",
	"BAJA CALIFORNIA":     "BAJA CALIFORNIA",
	"BAJA CALIFORNIA SUR": "BAJA CALIFORNIA SUR",
	"CAMPECHE":            "CAMPECHE",
	"COAHUILA":            "COAHUILA",
	"COLIMA":              "COLIMA",
	"CHIAPAS":             "CHIAPAS",
	"CHIHUAHUA":           "CHIHUAHUA",
	"CIUDAD DE MEXICO":    "CIUDAD DE MEXICO",
	"CDMX":                "CIUDAD DE MEXICO",
	"DISTRITO FEDERAL":    "CIUDAD DE MEXICO",
	"D.F.":                "CIUDAD DE MEXICO",
	"DURANGO":             "DURANGO",
	"GUANAJUATO":          "GUANAJUATO",
	"GUERRERO":            "GUERRERO",
	"HIDALGO":             "HIDALGO",
	"JALISCO":             "JALISCO",
	"ESTADO DE MEXICO":    "ESTADO DE MEXICO",
	"EDO. DE MEXICO":      "ESTADO DE MEXICO",
	"EDO. MEX.":           "ESTADO DE MEXICO",
	"EDO MEX":             "ESTADO DE MEXICO",
	"MEXICO":              "ESTADO DE MEXICO",
	"MICHOACAN":           "MICHOACAN",
	"MORELOS":             "MORELOS",
	"NAYARIT":             "NAYARIT",
	"NUEVO LEON":          "NUEVO LEON",
	"OAXACA":              "OAXACA",
	"PUEBLA":              "PUEBLA",
	"QUERETARO":           "QUERETARO",
	"QUINTANA ROO":        "QUINTANA ROO",
	"SAN LUIS POTOSI":     "SAN LUIS POTOSI",
	"SINALOA":             "SINALOA",
	"SONORA":              "SONORA",
	"TABASCO":             "TABASCO",
	"TAMAULIPAS":          "TAMAULIPAS",
	"TLAXCALA":            "TLAXCALA",
	"VERACRUZ":            "VERACRUZ",
	"YUCATAN":             "YUCATAN",
	"ZACATECAS":           "ZACATECAS",
}

var frontKeywords = []string{
	`\bNOMBRE\b`,
	`\bDOMICILIO\b`,
	`FECHA DE NACIMIENTO`,
	`\bSEXO\b`,
	`CREDENCIAL PARA VOTAR`,
	`ANO DE REGISTRO`,
	`CLAVE DE ELECTOR`,
	`\bSECCION\b`,
	`\bVIGENCIA\b`,
}

var backKeywords = []string{
	`\bIDMEX`,
	`\bFIRMA\b`,
	`\bHUELLA\b`,
	`\bCIC\b`,
	`\bOCR\b`,
	`\bQR\b`,
	`ESTE DOCUMENTO`,
	`\bCODIGO\b`,
	`\bCIUDADANO\b`,
}

// fieldLabels end a multi-line name or address block.
var fieldLabels = []string{
	"NOMBRE", "DOMICILIO", "CLAVE", "CURP", "FECHA", "SEXO", "SECCION",
	"VIGENCIA", "ANO", "REGISTRO", "LOCALIDAD", "EMISION", "ESTADO",
	"MUNICIPIO", "ELECTOR",
}
