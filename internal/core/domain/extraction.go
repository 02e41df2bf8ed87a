package domain

// Field names produced by extraction and used as rule table keys.
const (
	FieldDocumentName        = "document_name"
	FieldDocumentType        = "document_type"
	FieldRegistrationNumber  = "registration_number"
	FieldRegulationNumber    = "regulation_number"
	FieldRegulationName      = "regulation_name"
	FieldClassificationCode  = "classification_code"
	FieldManufacturerName    = "manufacturer_name"
	FieldManufacturerAddress = "manufacturer_address"
	FieldProductCodes        = "product_codes"
	FieldIndicationsForUse   = "indications_for_use"
	FieldFullText            = "full_text"
)

// RequiredFields must be present and non-empty for a document to be stored.
var RequiredFields = []string{
	FieldDocumentName,
	FieldRegistrationNumber,
	FieldClassificationCode,
	FieldManufacturerName,
	FieldProductCodes,
	FieldIndicationsForUse,
	FieldFullText,
}

// ExtractionRule extracts one field from document text.
// Pattern must contain a named capture group "value".
// Rules for the same field are tried in ascending Priority order.
type ExtractionRule struct {
	ID        int64
	ClientID  int64
	FieldName string
	Pattern   string
	Priority  int
}

// FieldMap maps field names to extracted values.
type FieldMap map[string]string

// Fields converts the map into typed document fields, applying the
// DocumentType and ManufacturerAddress fallbacks.
func (m FieldMap) Fields() DocumentFields {
	f := DocumentFields{
		DocumentName:        m[FieldDocumentName],
		DocumentType:        m[FieldDocumentType],
		RegistrationNumber:  m[FieldRegistrationNumber],
		RegulationNumber:    m[FieldRegulationNumber],
		RegulationName:      m[FieldRegulationName],
		ClassificationCode:  m[FieldClassificationCode],
		ManufacturerName:    m[FieldManufacturerName],
		ManufacturerAddress: m[FieldManufacturerAddress],
		ProductCodes:        m[FieldProductCodes],
		IndicationsForUse:   m[FieldIndicationsForUse],
	}
	if f.DocumentType == "" {
		f.DocumentType = f.DocumentName
	}
	if f.ManufacturerAddress == "" {
		f.ManufacturerAddress = UnknownManufacturerAddress
	}
	return f
}
