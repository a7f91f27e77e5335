// services/translator.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Translator converts a name between the Marathi and English channels.
// Implementations are best-effort: callers always fall back to the original
// text, and a failing translator must never fail the surrounding save.
type Translator interface {
	Translate(text, source, target string) (string, error)
}

// HTTPTranslator talks to a LibreTranslate-compatible endpoint
// (TRANSLATOR_URL, e.g. http://localhost:5000).
type HTTPTranslator struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTranslator() *HTTPTranslator {
	return &HTTPTranslator{
		baseURL: strings.TrimRight(os.Getenv("TRANSLATOR_URL"), "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *HTTPTranslator) Translate(text, source, target string) (string, error) {
	if t.baseURL == "" {
		return text, fmt.Errorf("TRANSLATOR_URL not set")
	}

	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	})
	if err != nil {
		return text, err
	}

	resp, err := t.client.Post(t.baseURL+"/translate", "application/json", bytes.NewReader(payload))
	if err != nil {
		return text, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return text, fmt.Errorf("translator returned status %d", resp.StatusCode)
	}

	var body struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return text, err
	}
	if strings.TrimSpace(body.TranslatedText) == "" {
		return text, fmt.Errorf("translator returned empty text")
	}
	return body.TranslatedText, nil
}

// translateBestEffort returns the translated text, or the original on any
// failure. Failures are logged and otherwise ignored.
func translateBestEffort(tr Translator, text, source, target string) string {
	if tr == nil || strings.TrimSpace(text) == "" {
		return text
	}
	out, err := tr.Translate(text, source, target)
	if err != nil {
		log.Printf("Translation %s->%s failed for %q: %v", source, target, text, err)
		return text
	}
	return out
}
