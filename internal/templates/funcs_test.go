package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	cases := map[string]string{
		"ON_OFF":        "OnOff",
		"LEVEL_CONTROL": "LevelControl",
		"level-control": "LevelControl",
		"On/Off":        "OnOff",
		"basic":         "Basic",
		"CurrentLevel":  "CurrentLevel",
	}
	for in, want := range cases {
		assert.Equal(t, want, Pascal(in), "Pascal(%q)", in)
	}
}

func TestSnake(t *testing.T) {
	cases := map[string]string{
		"On/Off":        "on_off",
		"LevelControl":  "level_control",
		"LEVEL_CONTROL": "level_control",
		"Basic":         "basic",
		"already_snake": "already_snake",
	}
	for in, want := range cases {
		assert.Equal(t, want, Snake(in), "Snake(%q)", in)
	}
}
