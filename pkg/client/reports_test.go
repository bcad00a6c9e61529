package client

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReportData(t *testing.T) {
	ft := newFakeTransport()
	ft.onJSON(http.MethodGet, reportDataPath+"iREPORT", `{"dataSet":{"dataTable":[{"row":[1,2]}]}}`)
	c := NewClient(ft, false)

	data, err := c.GetReportData(context.Background(), "iREPORT")
	require.NoError(t, err)
	assert.JSONEq(t, `{"dataSet":{"dataTable":[{"row":[1,2]}]}}`, string(data))

	calls := ft.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "DataSetJSON", calls[0].Query.Get("fmt"))
	assert.Equal(t, "100", calls[0].Query.Get("rowLimit"))
}

func TestGetReportOutput_XML(t *testing.T) {
	ft := newFakeTransport()
	ft.onJSON(http.MethodGet, reportDataPath+"iREPORT", `<dataset><row><Region>North</Region></row></dataset>`)
	c := NewClient(ft, false)

	data, err := c.GetReportOutput(context.Background(), "iREPORT", FormatDataSet, 10)
	require.NoError(t, err)
	assert.Equal(t, `<dataset><row><Region>North</Region></row></dataset>`, string(data))

	calls := ft.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "DataSet", calls[0].Query.Get("fmt"))
	assert.Equal(t, "10", calls[0].Query.Get("rowLimit"))
}

func TestGetReportOutput_Defaults(t *testing.T) {
	ft := newFakeTransport()
	ft.onJSON(http.MethodGet, reportDataPath+"iREPORT", ``)
	c := NewClient(ft, false)

	data, err := c.GetReportOutput(context.Background(), "iREPORT", "", 0)
	require.NoError(t, err)
	assert.Nil(t, data)

	calls := ft.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "DataSetJSON", calls[0].Query.Get("fmt"))
	assert.Equal(t, "100", calls[0].Query.Get("rowLimit"))
}

func TestGetReportData_Error(t *testing.T) {
	ft := newFakeTransport()
	apiErr := &APIError{StatusCode: http.StatusNotFound, Message: "no such report"}
	ft.onError(http.MethodGet, reportDataPath+"iMISSING", apiErr)
	c := NewClient(ft, false)

	data, err := c.GetReportData(context.Background(), "iMISSING")
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), `"iMISSING"`)
}

func TestUploadExtension(t *testing.T) {
	ft := newFakeTransport()
	ft.caps.SupportsPut = true
	ft.onJSON(http.MethodPut, extensionsPath+"my_ext", ``)
	c := NewClient(ft, false)

	ok := c.UploadExtension(context.Background(), "my_ext", strings.NewReader("PK\x03\x04"))
	assert.True(t, ok)

	calls := ft.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, []byte("PK\x03\x04"), calls[0].Body)
}

func TestUploadExtension_Unsupported(t *testing.T) {
	ft := newFakeTransport()
	c := NewClient(ft, false)

	assert.False(t, c.UploadExtension(context.Background(), "my_ext", strings.NewReader("zip")))
	assert.Empty(t, ft.recorded())
}

func TestUploadExtension_Failure(t *testing.T) {
	ft := newFakeTransport()
	ft.caps.SupportsPut = true
	ft.onError(http.MethodPut, extensionsPath+"my_ext", errUnavailable)
	c := NewClient(ft, false)

	assert.False(t, c.UploadExtension(context.Background(), "my_ext", strings.NewReader("zip")))
}
