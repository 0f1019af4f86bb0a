package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/solstanik/emberbot/internal/modules/games/domain"
)

const defaultBaseURL = "https://opentdb.com/api.php"

// OpenTDBClient fetches trivia questions from the Open Trivia Database.
type OpenTDBClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenTDBClient creates a client with sane timeouts.
func NewOpenTDBClient() *OpenTDBClient {
	return &OpenTDBClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

type opentdbResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Type             string   `json:"type"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// Fetch retrieves one question. Difficulty and qtype are optional; empty
// values let the API pick.
func (c *OpenTDBClient) Fetch(ctx context.Context, difficulty, qtype string) (domain.Question, error) {
	params := url.Values{"amount": {"1"}}
	if difficulty != "" {
		params.Set("difficulty", difficulty)
	}
	if qtype != "" {
		params.Set("type", qtype)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Question{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Question{}, fmt.Errorf("opentdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Question{}, fmt.Errorf("opentdb status %d", resp.StatusCode)
	}

	var body opentdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Question{}, fmt.Errorf("opentdb decode: %w", err)
	}
	if body.ResponseCode != 0 || len(body.Results) == 0 {
		return domain.Question{}, fmt.Errorf("opentdb response code %d", body.ResponseCode)
	}

	raw := body.Results[0]
	incorrect := make([]string, len(raw.IncorrectAnswers))
	for i, a := range raw.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(a)
	}

	// Answer shuffling gets a per-call source; rand.Rand is not safe for
	// concurrent fetches.
	q := domain.NewQuestion(
		html.UnescapeString(raw.Question),
		html.UnescapeString(raw.CorrectAnswer),
		incorrect,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	q.Category = html.UnescapeString(raw.Category)
	q.Difficulty = raw.Difficulty
	return q, nil
}
