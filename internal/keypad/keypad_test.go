package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name    string
		want    uint8
		wantErr bool
	}{
		{name: "0", want: 0x0},
		{name: "9", want: 0x9},
		{name: "a", want: 0xA},
		{name: "F", want: 0xF},
		{name: " c ", want: 0xC},
		{name: "g", wantErr: true},
		{name: "10", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Hex(tt.name)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid key")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestQWERTY(t *testing.T) {
	layout := []string{
		"x", "1", "2", "3",
		"q", "w", "e", "a",
		"s", "d", "z", "c",
		"4", "r", "f", "v",
	}

	for want, name := range layout {
		t.Run(name, func(t *testing.T) {
			key, err := QWERTY(name)
			assert.NoError(t, err)
			assert.Equal(t, uint8(want), key)
		})
	}

	key, err := QWERTY("Q")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x4), key)

	_, err = QWERTY("p")
	assert.ErrorContains(t, err, "invalid key 'p'")
}

func TestParse(t *testing.T) {
	state, err := Parse("5, a,F", Hex)
	assert.NoError(t, err)

	var want State
	want[0x5] = true
	want[0xA] = true
	want[0xF] = true
	assert.Equal(t, want, state)

	state, err = Parse("", Hex)
	assert.NoError(t, err)
	assert.Equal(t, State{}, state)

	state, err = Parse("q,v", QWERTY)
	assert.NoError(t, err)
	assert.True(t, state[0x4])
	assert.True(t, state[0xF])

	_, err = Parse("5,x", Hex)
	assert.Error(t, err)
}

func TestStatic(t *testing.T) {
	var state State
	state[7] = true
	input := NewStatic(state)

	assert.Equal(t, state, input.Keys(0))
	assert.Equal(t, state, input.Keys(1_000_000))
}
