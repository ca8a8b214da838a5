// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantsDefined(t *testing.T) {
	for name, v := range map[string]string{
		"Version":      Version,
		"Product":      Product,
		"Manufacturer": Manufacturer,
	} {
		assert.NotEmpty(t, v, name)
		assert.Less(t, len(v), 100, name)
		for _, placeholder := range []string{"TODO", "FIXME", "XXX", "placeholder"} {
			assert.NotEqual(t, placeholder, v, name)
		}
	}
}

func TestVersionIsSemver(t *testing.T) {
	parts := strings.Split(Version, ".")
	assert.Len(t, parts, 3)
}

func TestString(t *testing.T) {
	assert.Equal(t, Product+" "+Version, String())
}
