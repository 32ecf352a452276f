package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"quizdeck/internal/logger"
	"quizdeck/internal/models"
)

// Response codes returned by the Open Trivia DB API. Anything other than
// codeSuccess means the request produced no usable questions.
const (
	codeSuccess = 0
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("opentdb"),
	}
}

// RawQuestion mirrors one entry of the Open Trivia DB question payload.
// Text fields are HTML-entity encoded.
type RawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionsResp struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

type categoriesResp struct {
	TriviaCategories []models.Category `json:"trivia_categories"`
}

// FetchQuestions requests multiple-choice questions. category is an optional
// numeric category id; difficulty is one of "easy", "medium", "hard" or empty.
func (c *Client) FetchQuestions(ctx context.Context, amount int, category *int, difficulty string) ([]RawQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("opentdb").WithField("amount", amount)

	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	if category != nil {
		params.Set("category", strconv.Itoa(*category))
	}
	if difficulty != "" {
		params.Set("difficulty", difficulty)
	}
	reqURL := c.baseURL + "/api.php?" + params.Encode()

	log.Debug("fetching questions from: %s", reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch questions: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("questions response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("questions request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("opentdb status %d: %s", resp.StatusCode, string(body))
	}

	var out questionsResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode questions response: %v", err)
		return nil, err
	}

	// Non-zero codes cover no-results, invalid parameters and token issues.
	if out.ResponseCode != codeSuccess {
		log.Warn("opentdb returned response_code=%d", out.ResponseCode)
		return nil, fmt.Errorf("opentdb response_code=%d", out.ResponseCode)
	}
	if len(out.Results) == 0 {
		log.Warn("opentdb returned an empty result set")
		return nil, fmt.Errorf("opentdb returned no questions")
	}

	log.Info("fetched %d questions", len(out.Results))
	return out.Results, nil
}

// FetchCategories requests the list of selectable trivia categories.
func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx).WithPrefix("opentdb")
	reqURL := c.baseURL + "/api_category.php"

	log.Debug("fetching categories from: %s", reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch categories: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("categories response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("categories request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("opentdb categories status %d: %s", resp.StatusCode, string(body))
	}

	var out categoriesResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode categories response: %v", err)
		return nil, err
	}

	log.Info("fetched %d categories", len(out.TriviaCategories))
	return out.TriviaCategories, nil
}
