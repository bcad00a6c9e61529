package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
)

// IsXPath reports whether an HTML expression is XPath rather than a CSS
// selector. XPath expressions start with "/" or "(".
func IsXPath(expression string) bool {
	expression = strings.TrimSpace(expression)
	return strings.HasPrefix(expression, "/") || strings.HasPrefix(expression, "(")
}

// QueryHTML evaluates a CSS selector or, when IsXPath, an XPath expression
// against an HTML report output (the HTMLFragment format). Values are the
// trimmed text of every match, empty texts skipped.
func (e *Engine) QueryHTML(data []byte, expression string, maxResults int) (*Result, error) {
	if err := e.ValidateHTML(expression); err != nil {
		return nil, err
	}

	var texts []string
	if IsXPath(expression) {
		doc, err := htmlquery.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid HTML data: %w", err)
		}
		nodes, err := htmlquery.QueryAll(doc, expression)
		if err != nil {
			return nil, fmt.Errorf("invalid XPath expression: %w", err)
		}
		for _, node := range nodes {
			texts = append(texts, htmlquery.InnerText(node))
		}
	} else {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid HTML data: %w", err)
		}
		doc.Find(expression).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, s.Text())
		})
	}

	result := &Result{
		Values: make([]any, 0),
	}
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		result.RawCount++
		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			continue
		}
		result.Values = append(result.Values, text)
	}

	return result, nil
}

// ValidateHTML checks that a CSS selector or XPath expression compiles.
func (e *Engine) ValidateHTML(expression string) error {
	if IsXPath(expression) {
		return e.ValidateXPath(expression)
	}
	if _, err := cascadia.Compile(expression); err != nil {
		return fmt.Errorf("invalid CSS selector: %w", err)
	}
	return nil
}
