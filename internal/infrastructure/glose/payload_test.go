package glose

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"缺失", ``, nil},
		{"null", `null`, nil},
		{"数字", `9.5`, float(9.5)},
		{"分为单位的对象", `{"amount":2500}`, float(25)},
		{"amount为0的对象", `{"amount":0}`, nil},
		{"字符串", `"free"`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePrice(json.RawMessage(tt.raw))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestDecodeList(t *testing.T) {
	t.Run("空响应体", func(t *testing.T) {
		items, err := decodeList[formRef](json.RawMessage(" "), "forms")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("标量响应", func(t *testing.T) {
		items, err := decodeList[formRef](json.RawMessage(`"nope"`), "forms")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("资源键优先于data", func(t *testing.T) {
		items, err := decodeList[formRef](json.RawMessage(`{"forms":["a"],"data":["b"]}`), "forms")
		require.NoError(t, err)
		assert.Equal(t, []formRef{"a"}, items)
	})

	t.Run("资源键类型错误", func(t *testing.T) {
		_, err := decodeList[formRef](json.RawMessage(`{"forms":{"a":1}}`), "forms")
		assert.Error(t, err)
	})
}

func TestToForm_IDFallback(t *testing.T) {
	f := toForm(formPayload{Title: "T"}, "requested")
	assert.Equal(t, "requested", f.ID)
	assert.NotNil(t, f.Authors)
}

func float(v float64) *float64 { return &v }
