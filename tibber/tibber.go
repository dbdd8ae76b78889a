// Package tibber is a minimal client for the Tibber GraphQL API. Every
// operation is a single POST round trip, including the subscription-shaped
// live measurement query.
package tibber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type queryRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type queryResponse[T any] struct {
	Data   T `json:"data"`
	Errors []struct {
		Message string   `json:"message"`
		Path    []string `json:"path"`
	} `json:"errors,omitempty"`
}

type Tibber struct {
	ApiUrl   string
	ApiToken string
}

func New(apiUrl string, apiToken string) *Tibber {
	return &Tibber{ApiUrl: apiUrl, ApiToken: apiToken}
}

func doQuery[T any](ctx context.Context, t *Tibber, query string, variables map[string]any) (*queryResponse[T], error) {
	reqBody, err := json.Marshal(queryRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.ApiUrl, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.ApiToken))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	client := http.Client{Timeout: 10 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got status %s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	resBody := new(queryResponse[T])
	if err = json.Unmarshal(body, resBody); err != nil {
		return nil, err
	}

	if resBody.Errors != nil {
		messages := make([]string, len(resBody.Errors))
		for i, err := range resBody.Errors {
			messages[i] = err.Message
		}
		return nil, fmt.Errorf("graphql error: %s", strings.Join(messages, "; "))
	}

	return resBody, nil
}
