package openair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		input string
		want  Class
	}{
		{"A", ClassA},
		{"B", ClassB},
		{"C", ClassC},
		{"D", ClassD},
		{"E", ClassE},
		{"F", ClassF},
		{"G", ClassG},
		{"CTR", ClassCTR},
		{"R", ClassRestricted},
		{"Q", ClassDanger},
		{"P", ClassProhibited},
		{"GP", ClassGliderProhibited},
		{"W", ClassWaveWindow},
		{"RMZ", ClassRadioMandatoryZone},
		{"TMZ", ClassTransponderMandatoryZone},
		{"UNC", ClassUnclassified},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			class, err := ParseClass(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, class)
			assert.Equal(t, test.input, class.Code())
		})
	}
}

// The class mapping is exact: no case folding, no trimming, no guessing.
func TestParseClassInvalid(t *testing.T) {
	for _, input := range []string{"", "X", "a", "ctr", " D", "D ", "Restricted"} {
		_, err := ParseClass(input)
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "invalid class")
	}
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "D", ClassD.String())
	assert.Equal(t, "CTR", ClassCTR.String())
	assert.Equal(t, "Restricted", ClassRestricted.String())
	assert.Equal(t, "Danger", ClassDanger.String())
	assert.Equal(t, "TransponderMandatoryZone", ClassTransponderMandatoryZone.String())
	assert.Equal(t, "Class(99)", Class(99).String())
}
