// Package keypad provides scripted keypad input for the interpreter.
//
// Keys are named either by their hex keypad digit (0-F) or, in QWERTY mode,
// by the host keyboard key that the common layout maps onto the keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
package keypad

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// State is the pressed state of all keypad keys.
type State = [chip8.KeyCount]bool

var errInvalidKey = errors.New("invalid key")

var qwerty = map[string]uint8{
	"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
	"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
	"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
	"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
}

// Mapper converts a key name to a keypad key.
type Mapper func(name string) (uint8, error)

// Hex maps a hex digit to the keypad key of the same value.
func Hex(name string) (uint8, error) {
	name = strings.TrimSpace(name)
	if len(name) != 1 {
		return 0, fmt.Errorf("%w '%s'", errInvalidKey, name)
	}
	key, err := strconv.ParseUint(name, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w '%s'", errInvalidKey, name)
	}
	return uint8(key), nil
}

// QWERTY maps a host keyboard key to the keypad key at the same position.
func QWERTY(name string) (uint8, error) {
	key, ok := qwerty[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w '%s'", errInvalidKey, name)
	}
	return key, nil
}

// Parse parses a comma separated list of key names into a keypad state.
// An empty list results in no key being pressed.
func Parse(list string, mapper Mapper) (State, error) {
	var state State
	for _, name := range splitList(list) {
		key, err := mapper(name)
		if err != nil {
			return state, err
		}
		state[key] = true
	}
	return state, nil
}

func splitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Static is an input that holds the same keys down during the whole run.
type Static struct {
	state State
}

// NewStatic returns an input that always reports the given state.
func NewStatic(state State) *Static {
	return &Static{state: state}
}

// Keys returns the keypad state for the given cycle.
func (s *Static) Keys(uint64) State {
	return s.state
}
