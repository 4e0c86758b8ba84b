package pattern

import (
	"encoding/json"

	"github.com/lumafab/agpattern/pkg/errors"
)

// generatorEnvelope is the wire form of the Generator variant: the kind
// tag plus the strategy's own parameters.
type generatorEnvelope struct {
	Kind   Kind            `json:"kind"`
	Params json.RawMessage `json:"params,omitempty"`
}

// MarshalJSON serializes the config with its generator variant tagged by
// kind, so configs round-trip through caches, job records, and the API.
func (c Config) MarshalJSON() ([]byte, error) {
	type plain Config

	var env *generatorEnvelope
	if c.Generator != nil {
		params, err := json.Marshal(c.Generator)
		if err != nil {
			return nil, err
		}
		env = &generatorEnvelope{Kind: c.Generator.Kind(), Params: params}
	}

	return json.Marshal(struct {
		plain
		Generator *generatorEnvelope `json:"generator,omitempty"`
	}{plain(c), env})
}

// UnmarshalJSON restores a config produced by MarshalJSON, reconstructing
// the concrete generator variant from its kind tag.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Generator *generatorEnvelope `json:"generator,omitempty"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Generator == nil {
		c.Generator = nil
		return nil
	}

	gen, err := newGenerator(aux.Generator.Kind)
	if err != nil {
		return err
	}
	if len(aux.Generator.Params) > 0 {
		if err := json.Unmarshal(aux.Generator.Params, gen); err != nil {
			return err
		}
	}
	c.Generator = gen
	return nil
}

// newGenerator returns a zero-valued variant for the kind tag.
func newGenerator(kind Kind) (Generator, error) {
	switch kind {
	case KindJitterGrid:
		return &JitterGrid{}, nil
	case KindSunflower:
		return &Sunflower{}, nil
	case KindPoissonDisc:
		return &PoissonDisc{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidGenerator, "unknown generator kind %q", kind)
}
