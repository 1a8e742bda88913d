package domain

// Style property names, in the camelCase form the page editor stores them.
const (
	StyleColor               = "color"
	StyleBackgroundColor     = "backgroundColor"
	StyleFontSize            = "fontSize"
	StyleFontWeight          = "fontWeight"
	StyleFontStyle           = "fontStyle"
	StyleFontFamily          = "fontFamily"
	StyleTextAlign           = "textAlign"
	StylePadding             = "padding"
	StyleMargin              = "margin"
	StyleMarginLeft          = "marginLeft"
	StyleMarginRight         = "marginRight"
	StyleBorderRadius        = "borderRadius"
	StyleBorder              = "border"
	StyleBoxShadow           = "boxShadow"
	StyleWidth               = "width"
	StyleMinWidth            = "minWidth"
	StyleMaxWidth            = "maxWidth"
	StyleHeight              = "height"
	StyleMinHeight           = "minHeight"
	StyleMaxHeight           = "maxHeight"
	StyleDisplay             = "display"
	StyleFlexDirection       = "flexDirection"
	StyleFlexWrap            = "flexWrap"
	StyleJustifyContent      = "justifyContent"
	StyleAlignItems          = "alignItems"
	StyleGridTemplateColumns = "gridTemplateColumns"
	StyleGap                 = "gap"
	StylePosition            = "position"
	StyleTop                 = "top"
	StyleLeft                = "left"
	StyleTransform           = "transform"
	StyleTransition          = "transition"
	StyleObjectFit           = "objectFit"
	StyleCursor              = "cursor"
)

var knownStyles = map[string]struct{}{
	StyleColor: {}, StyleBackgroundColor: {}, StyleFontSize: {}, StyleFontWeight: {},
	StyleFontStyle: {}, StyleFontFamily: {}, StyleTextAlign: {}, StylePadding: {},
	StyleMargin: {}, StyleMarginLeft: {}, StyleMarginRight: {}, StyleBorderRadius: {},
	StyleBorder: {}, StyleBoxShadow: {}, StyleWidth: {}, StyleMinWidth: {},
	StyleMaxWidth: {}, StyleHeight: {}, StyleMinHeight: {}, StyleMaxHeight: {},
	StyleDisplay: {}, StyleFlexDirection: {}, StyleFlexWrap: {}, StyleJustifyContent: {},
	StyleAlignItems: {}, StyleGridTemplateColumns: {}, StyleGap: {}, StylePosition: {},
	StyleTop: {}, StyleLeft: {}, StyleTransform: {}, StyleTransition: {},
	StyleObjectFit: {}, StyleCursor: {},
}

// Styles maps visual property names to raw CSS values.
// A missing key means "unset" (inherit), not zero. Values are never validated.
type Styles map[string]string

// KnownStyle reports whether key is one of the supported visual properties.
func KnownStyle(key string) bool {
	_, ok := knownStyles[key]
	return ok
}

// Get returns the value of a property and whether it is set.
func (s Styles) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// With returns a copy of s with key set to value.
// An empty value unsets the key.
func (s Styles) With(key, value string) Styles {
	out := s.Clone()
	if value == "" {
		delete(out, key)
		return out
	}
	out[key] = value
	return out
}

// Clone copies the style map. The result is never nil.
func (s Styles) Clone() Styles {
	out := make(Styles, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
