package events

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

// eventMarshaler tags unmarshal failures with ErrJSONUnmarshal so the
// router can tell a malformed payload from a transient handler error and
// skip it instead of retrying forever.
type eventMarshaler struct {
	cqrs.JSONMarshaler
}

func (m eventMarshaler) Unmarshal(msg *message.Message, v any) error {
	if err := m.JSONMarshaler.Unmarshal(msg, v); err != nil {
		return fmt.Errorf("%w: %v", ErrJSONUnmarshal, err)
	}
	return nil
}

func NewMarshaler() cqrs.CommandEventMarshaler {
	return eventMarshaler{cqrs.JSONMarshaler{GenerateName: cqrs.StructName}}
}
