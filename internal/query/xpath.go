package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// QueryXPath evaluates an XPath expression against an XML report output
// (the DataSet format) and returns the trimmed inner text of every matching
// node, empty texts skipped. maxResults works as in Query.
func (e *Engine) QueryXPath(data []byte, expression string, maxResults int) (*Result, error) {
	expr, err := compileXPath(expression)
	if err != nil {
		return nil, err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid XML data: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
	}
	for _, node := range xmlquery.QuerySelectorAll(doc, expr) {
		text := strings.TrimSpace(node.InnerText())
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

// ValidateXPath checks that expression compiles.
func (e *Engine) ValidateXPath(expression string) error {
	_, err := compileXPath(expression)
	return err
}

func compileXPath(expression string) (*xpath.Expr, error) {
	expr, err := xpath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}
	return expr, nil
}
