package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(""))
	assert.Equal(t, "Water leak in bathroom", Text("  Water leak in bathroom "))
	assert.Equal(t, "Hello", Text("<p>Hello</p><script>alert('x')</script>"))
	assert.Equal(t, "click", Text(`<a href="javascript:alert(1)">click</a>`))
}

func TestSlice(t *testing.T) {
	assert.Equal(t, []string{"WiFi", "Fan"}, Slice([]string{"WiFi", "<b></b>", " Fan "}))
	assert.Empty(t, Slice(nil))
}
