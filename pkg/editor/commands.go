package editor

import "github.com/aretw0/sitecanvas/pkg/domain"

// Command is a request to change the editor state.
// The set is closed: only the types in this package implement it.
type Command interface {
	// Name is the wire name used by Decode and in logs.
	Name() string
	command()
}

// Command names as accepted by Decode.
const (
	NameSelect              = "select"
	NameUpdate              = "update"
	NameInsertIntoContainer = "insert_into_container"
	NameInsertAtRoot        = "insert_at_root"
	NameDelete              = "delete"
	NameSetViewMode         = "set_view_mode"
	NameSetStage            = "set_stage"
	NameSetUserConfig       = "set_user_config"
	NameGenerate            = "generate"
	NameSetTemplate         = "set_template"
	NameSave                = "save"
	NameUndo                = "undo"
	NameRedo                = "redo"
)

// Select sets or clears (nil ID) the selection.
type Select struct {
	ID *string `mapstructure:"id"`
}

// Update replaces the element with the given id, subtree included.
type Update struct {
	ID      string         `mapstructure:"id"`
	Element domain.Element `mapstructure:"element"`
}

// InsertIntoContainer appends a new element of Type as the last child of a
// container and selects it.
type InsertIntoContainer struct {
	ContainerID string             `mapstructure:"containerId"`
	Type        domain.ElementType `mapstructure:"type"`
}

// InsertAtRoot appends an element to the root sequence and selects it.
type InsertAtRoot struct {
	Element domain.Element `mapstructure:"element"`
}

// Delete removes an element and its subtree.
type Delete struct {
	ID string `mapstructure:"id"`
}

// SetViewMode switches the preview width.
type SetViewMode struct {
	Mode domain.ViewMode `mapstructure:"mode"`
}

// SetStage moves the workflow to another stage.
type SetStage struct {
	Stage domain.Stage `mapstructure:"stage"`
}

// SetUserConfig stores the business profile.
type SetUserConfig struct {
	Config domain.UserConfig `mapstructure:"config"`
}

// GenerateFromIndustry replaces the document with a generated page for the
// stored business profile.
type GenerateFromIndustry struct{}

// SetTemplate replaces the whole document.
type SetTemplate struct {
	Document domain.Document `mapstructure:"document"`
}

// Save writes the current state to storage before returning.
type Save struct{}

// Undo restores the previous document.
type Undo struct{}

// Redo re-applies the last undone document.
type Redo struct{}

func (Select) Name() string               { return NameSelect }
func (Update) Name() string               { return NameUpdate }
func (InsertIntoContainer) Name() string  { return NameInsertIntoContainer }
func (InsertAtRoot) Name() string         { return NameInsertAtRoot }
func (Delete) Name() string               { return NameDelete }
func (SetViewMode) Name() string          { return NameSetViewMode }
func (SetStage) Name() string             { return NameSetStage }
func (SetUserConfig) Name() string        { return NameSetUserConfig }
func (GenerateFromIndustry) Name() string { return NameGenerate }
func (SetTemplate) Name() string          { return NameSetTemplate }
func (Save) Name() string                 { return NameSave }
func (Undo) Name() string                 { return NameUndo }
func (Redo) Name() string                 { return NameRedo }

func (Select) command()               {}
func (Update) command()               {}
func (InsertIntoContainer) command()  {}
func (InsertAtRoot) command()         {}
func (Delete) command()               {}
func (SetViewMode) command()          {}
func (SetStage) command()             {}
func (SetUserConfig) command()        {}
func (GenerateFromIndustry) command() {}
func (SetTemplate) command()          {}
func (Save) command()                 {}
func (Undo) command()                 {}
func (Redo) command()                 {}
