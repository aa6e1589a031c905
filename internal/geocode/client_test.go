package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client := NewClient("https://geocode.test", time.Hour, zap.NewNop())
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestClient_ResolveCity(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "city present",
			body:     `{"address":{"city":"Paris","town":"","village":""}}`,
			expected: "Paris",
		},
		{
			name:     "falls back to town",
			body:     `{"address":{"town":"Giverny"}}`,
			expected: "Giverny",
		},
		{
			name:     "falls back to village",
			body:     `{"address":{"village":"Oia"}}`,
			expected: "Oia",
		},
		{
			name:     "falls back to municipality",
			body:     `{"address":{"municipality":"Utsjoki"}}`,
			expected: "Utsjoki",
		},
		{
			name:     "no locality at all",
			body:     `{"address":{}}`,
			expected: UnknownLocality,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)

			httpmock.RegisterResponder("GET", `=~^https://geocode\.test/reverse`,
				httpmock.NewStringResponder(200, tt.body))

			city, err := client.ResolveCity(context.Background(), 48.85, 2.35)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, city)
		})
	}
}

func TestClient_ResolveCity_ServerError(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", `=~^https://geocode\.test/reverse`,
		httpmock.NewStringResponder(503, "unavailable"))

	city, err := client.ResolveCity(context.Background(), 48.85, 2.35)
	assert.Error(t, err)
	assert.Empty(t, city)
}

func TestClient_ResolveCity_MalformedBody(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", `=~^https://geocode\.test/reverse`,
		httpmock.NewStringResponder(200, "not json"))

	city, err := client.ResolveCity(context.Background(), 48.85, 2.35)
	assert.Error(t, err)
	assert.Empty(t, city)
}

func TestClient_ResolveCity_CachesResult(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", `=~^https://geocode\.test/reverse`,
		httpmock.NewStringResponder(200, `{"address":{"city":"Paris"}}`))

	city, err := client.ResolveCity(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, "Paris", city)

	// Second call for the same coordinate hits the cache, not the network
	city, err = client.ResolveCity(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, "Paris", city)

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_ResolveCity_ErrorsAreNotCached(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", `=~^https://geocode\.test/reverse`,
		httpmock.NewStringResponder(500, "boom"))

	_, err := client.ResolveCity(context.Background(), 48.85, 2.35)
	require.Error(t, err)

	httpmock.RegisterResponder("GET", `=~^https://geocode\.test/reverse`,
		httpmock.NewStringResponder(200, `{"address":{"city":"Paris"}}`))

	city, err := client.ResolveCity(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, "Paris", city)
}
