package nlp

import (
	"strings"

	"github.com/getzep/zep-extract/pkg/models"
)

// labelAliases maps backend label sets (spaCy/OntoNotes, prose, CoNLL) onto
// the normalized label enumeration.
var labelAliases = map[string]models.EntityLabel{
	"PERSON":       models.LabelPerson,
	"PER":          models.LabelPerson,
	"ORG":          models.LabelOrganization,
	"ORGANIZATION": models.LabelOrganization,
	"GPE":          models.LabelLocation,
	"LOC":          models.LabelLocation,
	"LOCATION":     models.LabelLocation,
	"DATE":         models.LabelDate,
	"TIME":         models.LabelTime,
	"EVENT":        models.LabelEvent,
	"PRODUCT":      models.LabelProduct,
	"NORP":         models.LabelNORP,
	"FAC":          models.LabelFacility,
	"FACILITY":     models.LabelFacility,
	"MONEY":        models.LabelMoney,
	"PERCENT":      models.LabelPercent,
	"QUANTITY":     models.LabelQuantity,
	"ORDINAL":      models.LabelOrdinal,
	"CARDINAL":     models.LabelCardinal,
	"WORK_OF_ART":  models.LabelWorkOfArt,
	"LAW":          models.LabelLaw,
	"LANGUAGE":     models.LabelLanguage,
	"MISC":         models.LabelOther,
	"OTHER":        models.LabelOther,
}

// NormalizeLabel maps a backend label onto the fixed label enumeration.
// Unknown labels become OTHER.
func NormalizeLabel(label string) models.EntityLabel {
	if l, ok := labelAliases[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return l
	}
	return models.LabelOther
}

// ParseLabels normalizes a configured label allow-list. Unknown entries are
// returned separately so callers can report them.
func ParseLabels(labels []string) (map[models.EntityLabel]struct{}, []string) {
	if len(labels) == 0 {
		return nil, nil
	}
	allowed := make(map[models.EntityLabel]struct{}, len(labels))
	var unknown []string
	for _, l := range labels {
		key := strings.ToUpper(strings.TrimSpace(l))
		normalized, ok := labelAliases[key]
		if !ok {
			unknown = append(unknown, l)
			continue
		}
		allowed[normalized] = struct{}{}
	}
	return allowed, unknown
}
