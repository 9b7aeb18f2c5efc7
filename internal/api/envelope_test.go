package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int `json:"id"`
}

func TestUnwrapList(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []item
	}{
		{
			name: "bare array",
			body: `[{"id":1}]`,
			want: []item{{ID: 1}},
		},
		{
			name: "wrapped array",
			body: `{"data":[{"id":1}]}`,
			want: []item{{ID: 1}},
		},
		{
			name: "unexpected shape",
			body: `{"foo":1}`,
			want: []item{},
		},
		{
			name: "null",
			body: `null`,
			want: []item{},
		},
		{
			name: "wrapped null",
			body: `{"data":null}`,
			want: []item{},
		},
		{
			name: "empty array",
			body: `[]`,
			want: []item{},
		},
		{
			name: "garbage",
			body: `notjson`,
			want: []item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unwrapList[item]([]byte(tt.body))
			require.NotNil(t, got, "list reads never return nil")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnwrapItem(t *testing.T) {
	got, ok := unwrapItem[item]([]byte(`{"id":7}`))
	require.True(t, ok)
	assert.Equal(t, 7, got.ID)

	got, ok = unwrapItem[item]([]byte(`{"data":{"id":7}}`))
	require.True(t, ok)
	assert.Equal(t, 7, got.ID)

	_, ok = unwrapItem[item]([]byte(`{"data":"not-an-object"}`))
	assert.False(t, ok)

	_, ok = unwrapItem[item]([]byte(`garbage`))
	assert.False(t, ok)
}
