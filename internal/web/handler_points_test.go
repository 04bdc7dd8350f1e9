package web

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointFilter(t *testing.T) {
	f := pointFilter(url.Values{})
	assert.Nil(t, f.City)
	assert.Nil(t, f.Region)
	assert.Nil(t, f.Items)

	f = pointFilter(url.Values{"city": {""}, "uf": {"RJ"}, "items": {"1, 2,x"}})
	require.NotNil(t, f.City)
	assert.Equal(t, "", *f.City)
	require.NotNil(t, f.Region)
	assert.Equal(t, "RJ", *f.Region)
	require.NotNil(t, f.Items)
	assert.Equal(t, []int64{1, 2}, *f.Items)

	f = pointFilter(url.Values{"items": {""}})
	assert.Nil(t, f.Items)

	f = pointFilter(url.Values{"items": {","}})
	require.NotNil(t, f.Items)
	assert.Empty(t, *f.Items)
}
