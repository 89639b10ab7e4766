package models

type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
}

type ExtractResponse struct {
	Entities []EntitySpan `json:"entities"`
	Tags     []string     `json:"tags"`
	Meta     ExtractMeta  `json:"meta"`
}

type ExtractMeta struct {
	// LenText is the rune length of the trimmed input text.
	LenText int `json:"len_text"`
	// TagsDegraded is set when tag generation failed and an empty tag list was returned.
	TagsDegraded bool   `json:"tags_degraded"`
	Model        string `json:"model,omitempty"`
}
