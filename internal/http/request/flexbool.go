package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fullsco/portal/internal/services"
)

// FlexBool is a boolean that also accepts the string forms sent by HTML
// forms and loosely typed clients: "true", "false", "1", "0", "on", "off".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return b.UnmarshalText([]byte(s))
	}

	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("expected a boolean, got %s", data)
	}
	*b = FlexBool(v)
	return nil
}

func (b *FlexBool) UnmarshalText(text []byte) error {
	v, ok := services.NormalizeBool(string(text))
	if !ok {
		return fmt.Errorf("expected a boolean, got %q", text)
	}
	*b = FlexBool(v)
	return nil
}

// UnmarshalParam lets gin's query and form binding decode FlexBool.
func (b *FlexBool) UnmarshalParam(param string) error {
	return b.UnmarshalText([]byte(param))
}

// Ptr converts an optional FlexBool to an optional bool.
func (b *FlexBool) Ptr() *bool {
	if b == nil {
		return nil
	}
	v := bool(*b)
	return &v
}
