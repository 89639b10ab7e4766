package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"sort"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/getzep/zep-extract/pkg/models"
)

const (
	DefaultServerTimeout = 10 * time.Second
	serverAttempts       = 3
	serverRetryDelay     = time.Second
)

var _ models.Recognizer = &ServerRecognizer{}

// ServerRecognizer calls the /entities endpoint of a zep-nlp-server compatible
// service (spaCy behind HTTP).
type ServerRecognizer struct {
	url        string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

func NewServerRecognizer(serverURL string, timeout time.Duration) *ServerRecognizer {
	return &ServerRecognizer{
		url: strings.TrimRight(serverURL, "/") + "/entities",
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(
				http.DefaultTransport,
				otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
					return otelhttptrace.NewClientTrace(ctx)
				}),
			),
		},
		attempts: serverAttempts,
		delay:    serverRetryDelay,
	}
}

func (s *ServerRecognizer) Name() string {
	return "nlp-server"
}

type entityMatch struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type entity struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Matches []entityMatch `json:"matches"`
}

type entityRequestRecord struct {
	UUID     string `json:"uuid"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type entityResponseRecord struct {
	UUID     string   `json:"uuid"`
	Entities []entity `json:"entities"`
}

type entityRequest struct {
	Texts []entityRequestRecord `json:"texts"`
}

type entityResponse struct {
	Texts []entityResponseRecord `json:"texts"`
}

// errClientStatus marks 4xx responses, which are not retried.
var errClientStatus = errors.New("nlp server rejected request")

func (s *ServerRecognizer) Recognize(ctx context.Context, text string) ([]models.RecognizedSpan, error) {
	recordID := uuid.New().String()
	requestBody := entityRequest{Texts: []entityRequestRecord{{
		UUID:     recordID,
		Text:     text,
		Language: "en",
	}}}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request body: %w", err)
	}

	var response entityResponse

	// Retry POST request to entity extractor with a fixed delay.
	err = retry.Do(
		func() error {
			response = entityResponse{}
			return s.post(ctx, jsonBody, &response)
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, errClientStatus)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("nlp server request attempt #%d failed: %s", n+1, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	for _, r := range response.Texts {
		if r.UUID == recordID {
			return flattenEntities(r.Entities), nil
		}
	}

	return nil, fmt.Errorf("nlp server response did not contain record %s", recordID)
}

func (s *ServerRecognizer) post(ctx context.Context, body []byte, out *entityResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making POST request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("%w: status %d: %s", errClientStatus, resp.StatusCode, bodyBytes)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nlp server returned status %d: %s", resp.StatusCode, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("error unmarshaling response body: %w", err)
	}
	return nil
}

// flattenEntities turns grouped entities (one per name, many matches) into
// one span per mention, in text order. Entities without matches go last.
func flattenEntities(entities []entity) []models.RecognizedSpan {
	located := make([]models.RecognizedSpan, 0, len(entities))
	var unlocated []models.RecognizedSpan
	for _, e := range entities {
		if len(e.Matches) == 0 {
			unlocated = append(unlocated, models.RecognizedSpan{Text: e.Name, Label: e.Label, Start: -1, End: -1})
			continue
		}
		for _, m := range e.Matches {
			located = append(located, models.RecognizedSpan{
				Text:  m.Text,
				Label: e.Label,
				Start: m.Start,
				End:   m.End,
			})
		}
	}

	sort.SliceStable(located, func(i, j int) bool {
		return located[i].Start < located[j].Start
	})

	return append(located, unlocated...)
}
