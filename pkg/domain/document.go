package domain

// Industry tags the business a page was generated for.
// It only selects a template generator and is not enforced afterwards.
type Industry string

const (
	IndustryFortigold    Industry = "fortigold"
	IndustryRestaurant   Industry = "restaurant"
	IndustryRetail       Industry = "retail"
	IndustryProfessional Industry = "professional"
	IndustryTechnology   Industry = "technology"
	IndustryHealthcare   Industry = "healthcare"
	IndustryFashion      Industry = "fashion"
	IndustryEducation    Industry = "education"
	IndustryOther        Industry = "other"
)

// Document is one page: metadata plus the ordered root elements.
type Document struct {
	ID        string    `json:"id" yaml:"id" mapstructure:"id"`
	Name      string    `json:"name" yaml:"name" mapstructure:"name"`
	Industry  Industry  `json:"industry" yaml:"industry" mapstructure:"industry"`
	Elements  []Element `json:"elements" yaml:"elements" mapstructure:"elements"`
	Thumbnail string    `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" mapstructure:"thumbnail"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Elements = CloneElements(d.Elements)
	if out.Elements == nil {
		out.Elements = []Element{}
	}
	return out
}

// UserConfig is the business profile collected at registration.
type UserConfig struct {
	BusinessName string   `json:"businessName" mapstructure:"businessName"`
	Industry     Industry `json:"industry" mapstructure:"industry"`
	ColorTheme   string   `json:"colorTheme" mapstructure:"colorTheme"`
	Logo         string   `json:"logo,omitempty" mapstructure:"logo"`
}
