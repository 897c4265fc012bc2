package sentimentsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"

	"github.com/nkamau/elimu/core"
	"github.com/nkamau/elimu/core/comment"
)

type (
	document struct {
		ID       string `json:"id"`
		Language string `json:"language,omitempty"`
		Text     string `json:"text"`
	}

	request struct {
		Documents []document `json:"documents"`
	}

	documentResult struct {
		ID        string `json:"id"`
		Sentiment string `json:"sentiment"`
	}

	response struct {
		Documents []documentResult `json:"documents"`
	}
)

// azureClassifier labels text via the Azure Text Analytics sentiment API.
// It is fail-open: missing configuration or any call failure resolves to
// comment.SentimentNeutral, so callers never see an error.
type azureClassifier struct {
	endpoint string
	apiKey   string
	language string
	client   *rest.Client
	logger   core.Logger
}

var _ comment.Classifier = (*azureClassifier)(nil)

func NewAzureClassifier(conf *core.Config, logger core.Logger) *azureClassifier {
	return &azureClassifier{
		endpoint: conf.Sentiment.Endpoint,
		apiKey:   conf.Sentiment.ApiKey,
		language: conf.Sentiment.Language,
		client:   &rest.Client{HTTPClient: &http.Client{Timeout: conf.Sentiment.Timeout}},
		logger:   logger,
	}
}

func (c *azureClassifier) enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

func (c *azureClassifier) Classify(ctx context.Context, text string) comment.Sentiment {
	if !c.enabled() {
		return comment.SentimentNeutral
	}

	body, err := json.Marshal(request{Documents: []document{
		{ID: "1", Language: c.language, Text: text},
	}})
	if err != nil {
		c.logger.Debug(fmt.Sprintf("classifying text: %v", err))
		return comment.SentimentNeutral
	}

	res, err := c.client.SendWithContext(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: c.endpoint,
		Headers: map[string]string{
			"Ocp-Apim-Subscription-Key": c.apiKey,
			"Content-Type":              "application/json",
		},
		Body: body,
	})
	if err != nil {
		c.logger.Debug(fmt.Sprintf("classifying text: %v", err))
		return comment.SentimentNeutral
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug(fmt.Sprintf("classifying text - status: %d - Body: %s", res.StatusCode, res.Body))
		return comment.SentimentNeutral
	}

	var parsed response
	if err = json.Unmarshal([]byte(res.Body), &parsed); err != nil || len(parsed.Documents) == 0 {
		c.logger.Debug(fmt.Sprintf("classifying text - malformed response: %q", res.Body))
		return comment.SentimentNeutral
	}

	label := comment.Sentiment(parsed.Documents[0].Sentiment)
	if !label.Valid() {
		return comment.SentimentNeutral
	}
	return label
}
