package client

import (
	"context"
	"net/http"
	"net/url"
)

// Ping checks connectivity and returns the raw response body.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "api/ping", nil, nil, http.StatusOK)
	if err != nil {
		return "", err
	}

	return string(resp.body), nil
}

// ListKeywords lists keywords matching filter.
func (c *Client) ListKeywords(ctx context.Context, filter KeywordFilter) ([]Keyword, error) {
	query := url.Values{}
	if filter.ShortNumberID != "" {
		query.Set("shortNumberId", filter.ShortNumberID)
	}
	if filter.KeywordText != "" {
		query.Set("keywordText", filter.KeywordText)
	}
	if filter.Mode != "" {
		query.Set("mode", string(filter.Mode))
	}
	if filter.Tag != "" {
		query.Set("tag", filter.Tag)
	}

	var keywords []Keyword
	if err := c.getJSON(ctx, "api/keywords", query, &keywords); err != nil {
		return nil, err
	}

	return keywords, nil
}

// CreateKeyword creates a keyword and returns its id.
func (c *Client) CreateKeyword(ctx context.Context, keyword *Keyword) (string, error) {
	if err := validateKeyword(keyword); err != nil {
		return "", err
	}

	return c.create(ctx, "api/keywords", keyword)
}

// GetKeyword returns the keyword with keywordID, or ErrNotFound.
func (c *Client) GetKeyword(ctx context.Context, keywordID string) (*Keyword, error) {
	var v validator
	v.notBlank("keywordId", keywordID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var keyword Keyword
	if err := c.getResource(ctx, "api/keywords/"+segment(keywordID), nil, &keyword); err != nil {
		return nil, err
	}

	return &keyword, nil
}

// UpdateKeyword replaces the keyword identified by keyword.KeywordID.
func (c *Client) UpdateKeyword(ctx context.Context, keyword *Keyword) error {
	if err := validateKeyword(keyword); err != nil {
		return err
	}

	var v validator
	v.notBlank("keyword.keywordId", keyword.KeywordID)
	if err := v.err(); err != nil {
		return err
	}

	return c.send(ctx, http.MethodPut, "api/keywords/"+segment(keyword.KeywordID), keyword, http.StatusNoContent)
}

// DeleteKeyword deletes the keyword with keywordID.
func (c *Client) DeleteKeyword(ctx context.Context, keywordID string) error {
	var v validator
	v.notBlank("keywordId", keywordID)
	if err := v.err(); err != nil {
		return err
	}

	return c.send(ctx, http.MethodDelete, "api/keywords/"+segment(keywordID), nil, http.StatusNoContent)
}

func validateKeyword(keyword *Keyword) error {
	var v validator
	v.notNil("keyword", keyword == nil)
	if keyword != nil {
		v.notBlank("keyword.shortNumberId", keyword.ShortNumberID)
		v.notBlank("keyword.keywordText", keyword.KeywordText)
		v.notBlank("keyword.mode", string(keyword.Mode))
		v.notBlank("keyword.forwardUrl", keyword.ForwardURL)
	}

	return v.err()
}
