// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package adminclient is the editor-side half of the project workflow.

A [Form] holds an editable project and checks it locally, an [AssetResolver]
uploads pending images, and a [Submitter] runs the two in order before
calling the aggregate endpoint. The CLI drives these types; they carry no
terminal or browser concerns of their own.
*/
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/respond"
)

const defaultHTTPTimeout = 60 * time.Second

// Config describes how to reach the studio API.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Client performs authenticated JSON and multipart calls against the API.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("adminclient: base url is required")
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("adminclient: parse base url: %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{baseURL: baseURL, token: strings.TrimSpace(cfg.Token), http: client}, nil
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("adminclient: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("adminclient: %s (status %d)", e.Message, e.Status)
}

// Project loads the editable aggregate stored under slug.
func (c *Client) Project(ctx context.Context, slug string) (*project.Aggregate, error) {
	aggregate := &project.Aggregate{}
	if err := c.doJSON(ctx, http.MethodGet, projectsPath+"/"+url.PathEscape(slug), nil, aggregate); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// FormOptions loads the artist, category and role choices of the form.
func (c *Client) FormOptions(ctx context.Context) (project.FormOptions, error) {
	var options project.FormOptions
	err := c.doJSON(ctx, http.MethodGet, projectsPath+"/form-options", nil, &options)
	return options, err
}

// doJSON sends body (when non-nil) as JSON and decodes a 2xx response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("adminclient: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("adminclient: build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return c.do(request, out)
}

func (c *Client) do(request *http.Request, out any) error {
	request.Header.Set("Accept", "application/json")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("adminclient: %s %s: %w", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		return decodeError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("adminclient: decode response: %w", err)
	}
	return nil
}

func decodeError(response *http.Response) error {
	apiErr := &APIError{Status: response.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))
	var envelope respond.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
		apiErr.Fields = envelope.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
