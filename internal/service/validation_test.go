package service

import (
	"math"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	cases := map[string]string{
		"plain":                     "plain",
		"<script>alert(1)</script>": "&lt;script&gt;alert(1)&lt;&#x2F;script&gt;",
		`a & "b" 'c'`:               "a &amp; &quot;b&quot; &#x27;c&#x27;",
		"&amp;":                     "&amp;amp;",
	}

	for in, want := range cases {
		assert.Equal(t, want, escapeHTML(in), in)
	}
}

func TestNameRule(t *testing.T) {
	valid := []string{"a", "Алиса", "名前", "thirty characters exactly ok!!"}
	for _, name := range valid {
		assert.NoError(t, validation.Validate(name, NameRule...), name)
	}

	invalid := []string{"", "thirty-one characters is too long", "tab\there", "nul\x00"}
	for _, name := range invalid {
		assert.Error(t, validation.Validate(name, NameRule...), name)
	}
}

func TestSessionIdRule(t *testing.T) {
	assert.NoError(t, validation.Validate("aB3-xY9z", SessionIdRule...))

	for _, id := range []string{"", "short", "toolong123", "abc_defg", "abc defg"} {
		assert.Error(t, validation.Validate(id, SessionIdRule...), id)
	}
}

func TestPositionRule(t *testing.T) {
	// live streams with a long DVR window report positions past a day
	for _, v := range []float64{0, 1.5, 86400, 3 * 86400.5} {
		assert.NoError(t, validation.Validate(ptr(v), PositionRule...), v)
	}

	for _, v := range []float64{-0.1, math.NaN(), math.Inf(-1), math.Inf(1)} {
		assert.Error(t, validation.Validate(ptr(v), PositionRule...), v)
	}

	var missing *float64
	assert.Error(t, validation.Validate(missing, PositionRule...))
}

func TestMediaRefParamsNormalize(t *testing.T) {
	p := MediaRefParams{Provider: "youtube", Id: "\tdQw4w9WgXcQ\n", Title: " Song ", Thumbnail: ptr(" https://i.ytimg.com/x.jpg ")}
	require.NoError(t, p.normalize())

	assert.Equal(t, "dQw4w9WgXcQ", p.Id)
	assert.Equal(t, "Song", p.Title)
	require.NotNil(t, p.Thumbnail)
	assert.Equal(t, "https://i.ytimg.com/x.jpg", *p.Thumbnail)
	assert.Nil(t, p.Artist)

	bad := MediaRefParams{Provider: "YouTube", Id: "x", Title: "x"}
	assert.Error(t, bad.normalize(), "provider is case sensitive")
}
