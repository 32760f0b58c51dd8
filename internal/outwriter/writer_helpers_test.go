package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "166.35", fmtFloat(166.3501))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "166", fmtFloat(166.35))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]int{"runs": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"runs\": 3\n}\n", buf.String())
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"site_id", "aadv"}, func(w *csv.Writer) error {
		return w.Write([]string{"greenway", "166.35"})
	})
	require.NoError(t, err)
	assert.Equal(t, "site_id,aadv\ngreenway,166.35\n", buf.String())
}

func TestTruncateSiteID(t *testing.T) {
	assert.Equal(t, "greenway", truncateSiteID("greenway", 12))
	assert.Equal(t, "greenway-...", truncateSiteID("greenway-main-street-bridge", 12))
	assert.Equal(t, "gre", truncateSiteID("greenway", 3))
}

func TestGetMaxTableSiteWidth(t *testing.T) {
	t.Run("width override", func(t *testing.T) {
		assert.Equal(t, 25, getMaxTableSiteWidth(&contract.Config{Width: 80}))
	})

	t.Run("narrow terminals clamp to the minimum", func(t *testing.T) {
		assert.Equal(t, 12, getMaxTableSiteWidth(&contract.Config{Width: 40}))
	})

	t.Run("wide terminals cap the site column", func(t *testing.T) {
		assert.Equal(t, 40, getMaxTableSiteWidth(&contract.Config{Width: 300}))
	})
}
