package revgeo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pergazuz/thai-map/pkg/anthropic"
)

// fakeMessenger implements anthropic.Client with canned responses.
type fakeMessenger struct {
	resp    *anthropic.MessageResponse
	err     error
	lastReq anthropic.MessageRequest
}

func (f *fakeMessenger) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func TestAnthropicResolveBatch(t *testing.T) {
	fake := &fakeMessenger{resp: textResponse(`["Chonburi", "Chonburi", "Phuket"]`)}
	p := NewAnthropicProvider(fake, "claude-sonnet-4-20250514")

	got, err := p.ResolveBatch(context.Background(), []Coord{
		{13.361143, 100.984673},
		{13.5, 101.1},
		{7.8804, 98.3923},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Chonburi", "Chonburi", "Phuket"}, got)

	assert.Equal(t, "claude-sonnet-4-20250514", fake.lastReq.Model)
	require.Len(t, fake.lastReq.Messages, 1)
	assert.Contains(t, fake.lastReq.Messages[0].Content, "1. 13.361143, 100.984673")
	assert.Contains(t, fake.lastReq.Messages[0].Content, "3. 7.880400, 98.392300")
	assert.Contains(t, fake.lastReq.System, "JSON array")
}

func TestAnthropicResolveBatchTolerantOfFences(t *testing.T) {
	fake := &fakeMessenger{resp: textResponse("```json\n[\"Phuket\"]\n```")}
	p := NewAnthropicProvider(fake, "claude-sonnet-4-20250514")

	got, err := p.ResolveBatch(context.Background(), []Coord{{7.88, 98.39}})

	require.NoError(t, err)
	assert.Equal(t, []string{"Phuket"}, got)
}

func TestAnthropicResolveBatchLengthMismatch(t *testing.T) {
	fake := &fakeMessenger{resp: textResponse(`["Phuket"]`)}
	p := NewAnthropicProvider(fake, "claude-sonnet-4-20250514")

	_, err := p.ResolveBatch(context.Background(), []Coord{{7.88, 98.39}, {13.7, 100.5}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 provinces for 2 coordinates")
}

func TestAnthropicResolveBatchClientError(t *testing.T) {
	fake := &fakeMessenger{err: assert.AnError}
	p := NewAnthropicProvider(fake, "claude-sonnet-4-20250514")

	_, err := p.ResolveBatch(context.Background(), []Coord{{7.88, 98.39}})

	assert.Error(t, err)
}

func TestAnthropicAvailable(t *testing.T) {
	assert.True(t, NewAnthropicProvider(&fakeMessenger{}, "claude-sonnet-4-20250514").Available())
	assert.False(t, NewAnthropicProvider(nil, "claude-sonnet-4-20250514").Available())
	assert.False(t, NewAnthropicProvider(&fakeMessenger{}, "").Available())
}

func TestParseProvinceArray(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{name: "bare array", text: `["Bangkok","Krabi"]`, want: []string{"Bangkok", "Krabi"}},
		{name: "surrounded by prose", text: `Here you go: ["Bangkok"] hope that helps`, want: []string{"Bangkok"}},
		{name: "no array", text: "I cannot determine the provinces.", wantErr: true},
		{name: "malformed json", text: `["Bangkok",`, wantErr: true},
		{name: "empty array", text: `[]`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProvinceArray(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
