package source

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"ambilight-agent/internal/engine"
	"ambilight-agent/internal/model"
)

type wireSample struct {
	R *int `json:"r"`
	G *int `json:"g"`
	B *int `json:"b"`
}

type wireFrame struct {
	Layer1 *struct {
		Left  map[string]wireSample `json:"left"`
		Right map[string]wireSample `json:"right"`
	} `json:"layer1"`
}

// Decode parses the provider payload:
//
//	{"layer1":{"left":{"0":{"r":..,"g":..,"b":..},...},"right":{...}}}
//
// The sample count of a side is its number of keys; keys must cover 0..n-1.
func Decode(r io.Reader) (model.SampleFrame, error) {
	var w wireFrame
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return model.SampleFrame{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.Layer1 == nil {
		return model.SampleFrame{}, fmt.Errorf("%w: missing layer1", ErrSchema)
	}
	left, err := decodeEdge("left", w.Layer1.Left)
	if err != nil {
		return model.SampleFrame{}, err
	}
	right, err := decodeEdge("right", w.Layer1.Right)
	if err != nil {
		return model.SampleFrame{}, err
	}
	return model.SampleFrame{Left: left, Right: right}, nil
}

func decodeEdge(side string, in map[string]wireSample) ([]model.RGB, error) {
	if len(in) < engine.MinSamples {
		return nil, fmt.Errorf("%w: %s has %d samples, need %d", ErrSchema, side, len(in), engine.MinSamples)
	}
	out := make([]model.RGB, len(in))
	seen := make([]bool, len(in))
	for key, s := range in {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(in) {
			return nil, fmt.Errorf("%w: %s key %q is not an index in [0,%d)", ErrSchema, side, key, len(in))
		}
		c, err := s.rgb()
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrSchema, side, idx, err)
		}
		out[idx] = c
		seen[idx] = true
	}
	for idx, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: %s is missing sample %d", ErrSchema, side, idx)
		}
	}
	return out, nil
}

func (s wireSample) rgb() (model.RGB, error) {
	r, err := channel("r", s.R)
	if err != nil {
		return model.RGB{}, err
	}
	g, err := channel("g", s.G)
	if err != nil {
		return model.RGB{}, err
	}
	b, err := channel("b", s.B)
	if err != nil {
		return model.RGB{}, err
	}
	return model.RGB{R: r, G: g, B: b}, nil
}

func channel(name string, v *int) (uint8, error) {
	if v == nil {
		return 0, fmt.Errorf("channel %s missing", name)
	}
	if *v < 0 || *v > 255 {
		return 0, fmt.Errorf("channel %s=%d out of range", name, *v)
	}
	return uint8(*v), nil
}
