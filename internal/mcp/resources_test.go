package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{uri: "cognos://folder/i5C0B9D", want: "i5C0B9D"},
		{uri: "cognos://report/iABC", want: "iABC"},
		{uri: "cognos://report/i%2FODD", want: "i/ODD"},
		{uri: "http://folder/i1", wantErr: true},
		{uri: "cognos://", wantErr: true},
		{uri: "cognos://folder/", wantErr: true},
		{uri: "cognos://folder/a/b", wantErr: true},
		{uri: "cognos://dashboard/i1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			params, err := parseResourceURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params["id"])
		})
	}
}
