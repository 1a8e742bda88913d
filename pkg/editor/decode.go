package editor

import (
	"fmt"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Names lists every command name Decode accepts.
var Names = []string{
	NameSelect,
	NameUpdate,
	NameInsertIntoContainer,
	NameInsertAtRoot,
	NameDelete,
	NameSetViewMode,
	NameSetStage,
	NameSetUserConfig,
	NameGenerate,
	NameSetTemplate,
	NameSave,
	NameUndo,
	NameRedo,
}

// Decode builds a command from its wire name and a generic payload, as
// received from JSON bodies or tool arguments. Payload keys follow the
// JSON field names of the state (camelCase). Unknown names and unknown
// payload keys are errors.
func Decode(name string, payload map[string]any) (Command, error) {
	switch name {
	case NameSelect:
		return decodeAs[Select](name, payload)
	case NameUpdate:
		return decodeAs[Update](name, payload)
	case NameInsertIntoContainer:
		return decodeAs[InsertIntoContainer](name, payload)
	case NameInsertAtRoot:
		return decodeAs[InsertAtRoot](name, payload)
	case NameDelete:
		return decodeAs[Delete](name, payload)
	case NameSetViewMode:
		return decodeAs[SetViewMode](name, payload)
	case NameSetStage:
		return decodeAs[SetStage](name, payload)
	case NameSetUserConfig:
		return decodeAs[SetUserConfig](name, payload)
	case NameGenerate:
		return decodeAs[GenerateFromIndustry](name, payload)
	case NameSetTemplate:
		return decodeAs[SetTemplate](name, payload)
	case NameSave:
		return decodeAs[Save](name, payload)
	case NameUndo:
		return decodeAs[Undo](name, payload)
	case NameRedo:
		return decodeAs[Redo](name, payload)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, name)
}

func decodeAs[T Command](name string, payload map[string]any) (Command, error) {
	var out T
	if len(payload) == 0 {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &out,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidPayload, name, err)
	}
	return out, nil
}
