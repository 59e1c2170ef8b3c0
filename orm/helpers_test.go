package orm

import (
	"encoding/json"

	"github.com/tss-labs/notepool/errors"
)

// counter is a minimal model used to exercise buckets.
type counter struct {
	Owner string `json:"owner"`
	Count int64  `json:"count"`
}

func (c *counter) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *counter) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func byOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj.Value())
	}
	if c.Owner == "" {
		return nil, nil
	}
	return []byte(c.Owner), nil
}
