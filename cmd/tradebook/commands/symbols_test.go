package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

func TestAssetTypeOptions(t *testing.T) {
	opts := assetTypeOptions()
	require.NotEmpty(t, opts)

	seen := map[string]bool{}
	for _, opt := range opts {
		assert.True(t, models.AssetType(opt.Value).IsValid(), "option %q", opt.Value)
		assert.NotEmpty(t, opt.Label, "option %q", opt.Value)
		assert.NotEmpty(t, opt.Description, "option %q", opt.Value)
		assert.False(t, seen[opt.Value], "duplicate option %q", opt.Value)
		seen[opt.Value] = true
	}

	// Every asset class the model accepts is selectable.
	all := []models.AssetType{
		models.AssetStock, models.AssetCrypto, models.AssetForex,
		models.AssetCommodity, models.AssetOption, models.AssetFuture,
		models.AssetOther,
	}
	for _, at := range all {
		assert.True(t, seen[string(at)], "asset class %s missing from prompt", at)
	}
}
