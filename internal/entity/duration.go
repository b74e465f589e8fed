package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration - time.Duration, который в JSON выглядит как "1h30m0s".
// При чтении принимается и строка, и число секунд.
type Duration time.Duration

func NewDuration(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
	return nil
}
