package keypad

import (
	"fmt"
	"strconv"
	"strings"
)

// Press holds a key down for a range of executed cycles.
// The key is pressed for start <= cycle < end, an end of 0 keeps it
// pressed until the run ends.
type Press struct {
	Key   uint8
	Start uint64
	End   uint64
}

func (p Press) active(cycle uint64) bool {
	if cycle < p.Start {
		return false
	}
	return p.End == 0 || cycle < p.End
}

// Schedule is an input that presses keys during cycle ranges, on top of a
// base state of permanently held keys.
type Schedule struct {
	base    State
	presses []Press
}

// NewSchedule returns a scheduled input.
func NewSchedule(base State, presses ...Press) *Schedule {
	return &Schedule{
		base:    base,
		presses: presses,
	}
}

// Keys returns the keypad state for the given cycle.
func (s *Schedule) Keys(cycle uint64) State {
	state := s.base
	for _, p := range s.presses {
		if p.active(cycle) {
			state[p.Key] = true
		}
	}
	return state
}

// ParseSchedule parses a comma separated list of key presses in the form
// key@start-end or key@start, for example "5@100-200,q@300".
func ParseSchedule(list string, mapper Mapper) ([]Press, error) {
	var presses []Press

	for _, item := range splitList(list) {
		name, cycles, ok := strings.Cut(item, "@")
		if !ok {
			return nil, fmt.Errorf("key press '%s' is missing the cycle range", item)
		}

		key, err := mapper(name)
		if err != nil {
			return nil, err
		}

		press := Press{Key: key}
		start, end, hasEnd := strings.Cut(cycles, "-")
		press.Start, err = strconv.ParseUint(strings.TrimSpace(start), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing start cycle of key press '%s': %w", item, err)
		}

		if hasEnd {
			press.End, err = strconv.ParseUint(strings.TrimSpace(end), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing end cycle of key press '%s': %w", item, err)
			}
			if press.End <= press.Start {
				return nil, fmt.Errorf("key press '%s' ends before it starts", item)
			}
		}

		presses = append(presses, press)
	}

	return presses, nil
}
