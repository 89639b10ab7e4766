package extractors

const tagPromptTemplate = `
You are an intelligent tag generator.

Read the text below and create between {{ min 3 .MaxTags }} and {{ .MaxTags }} short descriptive tags,
each one to three words, that capture the context, purpose or theme of the text.

Do not repeat any of these entity names:
{{ .Entities | join ", " | default "None" }}

Prefer tags about intent or activity. A text about travel plans and meetings might get
"business trip", "meeting", "schedule". A text about a product launch might get
"product launch", "marketing", "announcement".

Return ONLY a JSON array of lowercase strings, for example:
["business trip", "meeting", "schedule"]

Text:
{{ .Text }}
`

type TagPromptTemplateData struct {
	MaxTags  int
	Entities []string
	Text     string
}
