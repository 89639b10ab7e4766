package models

// EntityLabel is the normalized category of an EntitySpan.
type EntityLabel string

const (
	LabelPerson       EntityLabel = "PERSON"
	LabelOrganization EntityLabel = "ORGANIZATION"
	LabelLocation     EntityLabel = "LOCATION"
	LabelDate         EntityLabel = "DATE"
	LabelTime         EntityLabel = "TIME"
	LabelEvent        EntityLabel = "EVENT"
	LabelProduct      EntityLabel = "PRODUCT"
	LabelNORP         EntityLabel = "NORP"
	LabelFacility     EntityLabel = "FACILITY"
	LabelMoney        EntityLabel = "MONEY"
	LabelPercent      EntityLabel = "PERCENT"
	LabelQuantity     EntityLabel = "QUANTITY"
	LabelOrdinal      EntityLabel = "ORDINAL"
	LabelCardinal     EntityLabel = "CARDINAL"
	LabelWorkOfArt    EntityLabel = "WORK_OF_ART"
	LabelLaw          EntityLabel = "LAW"
	LabelLanguage     EntityLabel = "LANGUAGE"
	LabelOther        EntityLabel = "OTHER"
)

// EntitySpan is a recognized entity as returned to API clients. Start and End
// are rune offsets into the (trimmed) input text, when known.
type EntitySpan struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start *int        `json:"start,omitempty"`
	End   *int        `json:"end,omitempty"`
}

// RecognizedSpan is a span as produced by a Recognizer, before label
// normalization. Start and End are -1 when the backend does not report offsets.
type RecognizedSpan struct {
	Text  string
	Label string
	Start int
	End   int
}

// HasOffsets reports whether the span carries character offsets.
func (s RecognizedSpan) HasOffsets() bool {
	return s.Start >= 0 && s.End >= s.Start
}
