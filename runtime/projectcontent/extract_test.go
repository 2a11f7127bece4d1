package projectcontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBuckets_SplitsByIndicator(t *testing.T) {
	text := "We are currently using a 12V battery. You should upgrade to a 24V system for more headroom. The enclosure is blue."
	b := ExtractBuckets(text, StructuredResult{})

	assert.Contains(t, b.CurrentState, "12V battery")
	assert.Contains(t, b.NewPlans, "upgrade to a 24V system")
	assert.Contains(t, b.General, "enclosure is blue")
}

func TestExtractBuckets_StructuredComponents(t *testing.T) {
	b := ExtractBuckets("", StructuredResult{
		Components: []ComponentSpec{
			{Name: "Resistor R1", Type: "resistor", Value: "220 ohm", Purpose: "current limiting"},
		},
	})
	assert.Contains(t, b.Components, "Resistor R1")
	assert.Contains(t, b.Components, "220 ohm")
}

func TestExtractBuckets_Recommendations(t *testing.T) {
	b := ExtractBuckets("Everything looks fine today.", StructuredResult{
		Recommendations: []string{"Add a fuse", "Increase wire gauge"},
	})
	require.Contains(t, b.NewPlans, "Add a fuse")
	assert.Contains(t, b.NewPlans, "Increase wire gauge")
}

func TestFormatAsReference_StripsConversationalMarkers(t *testing.T) {
	content := "I think you should replace the fuse. Would you like to increase the wire gauge? Thanks so much for asking, this should help a great deal going forward."
	out := FormatAsReference(content)
	assert.NotContains(t, out, "Would you like")
	assert.Contains(t, out, "increase the wire gauge is recommended")
}

func TestFormatAsReference_ShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "short", FormatAsReference("short"))
}

func TestClassifyContentType(t *testing.T) {
	cases := map[string]string{
		"The resistor and capacitor values for this IC are listed below":     "component",
		"Communication uses I2C serial protocol between the microcontrollers": "protocol",
		"The schematic shows the wiring and pinout layout on the PCB":         "schematic",
		"The voltage and current rating requirement is 5V at 2A":             "specification",
		"This is the high-level system architecture and block diagram":       "architecture",
		"Here is the Arduino firmware function in C++":                       "code",
	}
	for text, want := range cases {
		assert.Equal(t, want, classifyContentType(text), text)
	}
}

func TestClassifyContentType_NoMatch(t *testing.T) {
	assert.Equal(t, "", classifyContentType("hello there, how are you doing today"))
}
