package sentimentsvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nkamau/elimu/core"
	"github.com/nkamau/elimu/core/comment"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newClassifier(endpoint, apiKey string) *azureClassifier {
	conf := &core.Config{}
	conf.Sentiment.Endpoint = endpoint
	conf.Sentiment.ApiKey = apiKey
	conf.Sentiment.Language = "en"
	conf.Sentiment.Timeout = 2 * time.Second
	return NewAzureClassifier(conf, nopLogger{})
}

func Test_azureClassifier_Unconfigured(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	tests := []struct {
		name             string
		endpoint, apiKey string
	}{
		{"no endpoint", "", "key"},
		{"no api key", srv.URL, ""},
		{"nothing at all", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClassifier(tt.endpoint, tt.apiKey)
			if got := c.Classify(context.Background(), "what a course!"); got != comment.SentimentNeutral {
				t.Errorf("Classify() = %q; want %q", got, comment.SentimentNeutral)
			}
		})
	}
	// an unconfigured classifier never goes out on the wire
	if calls != 0 {
		t.Errorf("upstream calls = %d; want 0", calls)
	}
}

func Test_azureClassifier_Classify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   comment.Sentiment
	}{
		{"positive", http.StatusOK, `{"documents":[{"id":"1","sentiment":"positive"}]}`, comment.SentimentPositive},
		{"negative", http.StatusOK, `{"documents":[{"id":"1","sentiment":"negative"}]}`, comment.SentimentNegative},
		{"mixed", http.StatusOK, `{"documents":[{"id":"1","sentiment":"mixed"}]}`, comment.SentimentMixed},
		{"unknown label", http.StatusOK, `{"documents":[{"id":"1","sentiment":"confused"}]}`, comment.SentimentNeutral},
		{"empty documents", http.StatusOK, `{"documents":[]}`, comment.SentimentNeutral},
		{"malformed body", http.StatusOK, `{"documents":`, comment.SentimentNeutral},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":"401"}}`, comment.SentimentNeutral},
		{"server error", http.StatusInternalServerError, ``, comment.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if key := r.Header.Get("Ocp-Apim-Subscription-Key"); key != "s3cret" {
					t.Errorf("subscription key = %q; want %q", key, "s3cret")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newClassifier(srv.URL, "s3cret")
			if got := c.Classify(context.Background(), "what a course!"); got != tt.want {
				t.Errorf("Classify() = %q; want %q", got, tt.want)
			}
		})
	}
}

func Test_azureClassifier_UpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // kill it; the classifier should swallow the connection error

	c := newClassifier(srv.URL, "s3cret")
	if got := c.Classify(context.Background(), "what a course!"); got != comment.SentimentNeutral {
		t.Errorf("Classify() = %q; want %q", got, comment.SentimentNeutral)
	}
}
