package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/dsl"
	"github.com/aretw0/sitecanvas/pkg/element"
	"gopkg.in/yaml.v3"
)

//go:embed sections/*.yaml
var sectionFS embed.FS

// Placeholders substituted in blueprint strings after decoding.
const (
	PlaceholderBusiness = "{{business}}"
	PlaceholderColor    = "{{color}}"
)

// blueprint is the decoded form of one sections file.
type blueprint struct {
	Industry      domain.Industry  `yaml:"industry"`
	ReplaceHeader bool             `yaml:"replace_header"`
	Sections      []domain.Element `yaml:"sections"`
}

var blueprints = mustLoad(sectionFS)

// now is replaced in tests.
var now = time.Now

func mustLoad(fsys fs.FS) map[domain.Industry]blueprint {
	out, err := load(fsys)
	if err != nil {
		panic(err)
	}
	return out
}

func load(fsys fs.FS) (map[domain.Industry]blueprint, error) {
	files, err := fs.Glob(fsys, "sections/*.yaml")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Industry]blueprint, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		var bp blueprint
		if err := yaml.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("templates: parse %s: %w", path.Base(name), err)
		}
		if bp.Industry == "" {
			return nil, fmt.Errorf("templates: %s has no industry", path.Base(name))
		}
		domain.NormalizeElements(bp.Sections)
		out[bp.Industry] = bp
	}
	return out, nil
}

// Industries lists the industries with dedicated sections.
// Any other industry gets the generic sections.
func Industries() []domain.Industry {
	return []domain.Industry{
		domain.IndustryRestaurant,
		domain.IndustryRetail,
		domain.IndustryProfessional,
		domain.IndustryFortigold,
	}
}

// Generate builds a full page for a business. The result is a pure function
// of its inputs except for identifiers (from ids, random when nil) and the
// copyright year.
func Generate(industry domain.Industry, businessName, color string, ids element.IDFunc) domain.Document {
	f := element.NewFactory(ids)
	subst := strings.NewReplacer(PlaceholderBusiness, businessName, PlaceholderColor, color)

	bp, ok := blueprints[industry]
	if !ok {
		bp = blueprints[domain.IndustryOther]
	}

	elems := make([]domain.Element, 0, len(bp.Sections)+2)
	if !bp.ReplaceHeader {
		elems = append(elems, header(f.NewID, businessName, color))
	}
	for _, s := range bp.Sections {
		e := f.Reassign(s)
		expand(&e, subst)
		elems = append(elems, e)
	}
	elems = append(elems, footer(f.NewID, businessName))

	return domain.Document{
		ID:       f.NewID(),
		Name:     businessName + " Website",
		Industry: industry,
		Elements: elems,
	}
}

func expand(e *domain.Element, r *strings.Replacer) {
	e.Content = r.Replace(e.Content)
	e.Src = r.Replace(e.Src)
	e.Alt = r.Replace(e.Alt)
	for k, v := range e.Styles {
		e.Styles[k] = r.Replace(v)
	}
	for i := range e.Children {
		expand(&e.Children[i], r)
	}
}

func header(ids element.IDFunc, businessName, color string) domain.Element {
	b := dsl.New(ids)
	return b.Container(func(c *dsl.Builder) {
		c.Heading(businessName).Styles(domain.Styles{
			domain.StyleFontSize:   "24px",
			domain.StyleFontWeight: "bold",
			domain.StyleColor:      color,
			domain.StyleMargin:     "0",
		})
		c.Button("Contact Us").Styles(domain.Styles{
			domain.StyleBackgroundColor: color,
			domain.StyleColor:           "#FFFFFF",
			domain.StylePadding:         "10px 20px",
			domain.StyleBorderRadius:    "4px",
			domain.StyleFontWeight:      "bold",
			domain.StyleFontSize:        "14px",
			domain.StyleCursor:          "pointer",
		})
	}).Styles(domain.Styles{
		domain.StyleBackgroundColor: "#FFFFFF",
		domain.StylePadding:         "15px 30px",
		domain.StyleDisplay:         "flex",
		domain.StyleJustifyContent:  "space-between",
		domain.StyleAlignItems:      "center",
		domain.StyleBoxShadow:       "0 2px 4px rgba(0,0,0,0.1)",
	}).Element()
}

func footer(ids element.IDFunc, businessName string) domain.Element {
	b := dsl.New(ids)
	return b.Container(func(c *dsl.Builder) {
		c.Paragraph(fmt.Sprintf("© %d %s. All rights reserved.", now().Year(), businessName)).Styles(domain.Styles{
			domain.StyleFontSize:  "14px",
			domain.StyleTextAlign: "center",
			domain.StyleColor:     "#FFFFFF",
		})
	}).Styles(domain.Styles{
		domain.StyleBackgroundColor: "#333333",
		domain.StylePadding:         "30px",
		domain.StyleColor:           "#FFFFFF",
	}).Element()
}

// Default returns the starting document shown before registration.
func Default(ids element.IDFunc) domain.Document {
	b := dsl.New(ids)

	b.Container(func(c *dsl.Builder) {
		c.Heading("Welcome to Website Builder").Styles(domain.Styles{
			domain.StyleFontSize:   "32px",
			domain.StyleFontWeight: "bold",
			domain.StyleTextAlign:  "center",
			domain.StyleColor:      "#333333",
			domain.StyleMargin:     "0 0 20px 0",
		})
		c.Paragraph("This is a sample website. Drag elements from the sidebar to build your own page.").Styles(domain.Styles{
			domain.StyleFontSize:  "16px",
			domain.StyleTextAlign: "center",
			domain.StyleColor:     "#666666",
			domain.StyleMargin:    "0 0 20px 0",
		})
		c.Button("Get Started").Styles(domain.Styles{
			domain.StyleBackgroundColor: element.AccentColor,
			domain.StyleColor:           "#FFFFFF",
			domain.StylePadding:         "10px 25px",
			domain.StyleBorderRadius:    "4px",
			domain.StyleFontWeight:      "bold",
			domain.StyleFontSize:        "16px",
			domain.StyleMargin:          "0 auto",
			domain.StyleDisplay:         "block",
		})
	}).Styles(domain.Styles{
		domain.StyleBackgroundColor: "#FFFFFF",
		domain.StylePadding:         "20px",
		domain.StyleMargin:          "0 0 20px 0",
	})

	b.Container(func(c *dsl.Builder) {
		c.Heading("Main Content Section").Styles(domain.Styles{
			domain.StyleFontSize:   "24px",
			domain.StyleFontWeight: "bold",
			domain.StyleColor:      "#333333",
			domain.StyleMargin:     "0 0 20px 0",
		})
		c.Paragraph("This is the main content area. You can add more elements here by dragging them from the elements panel.").Styles(domain.Styles{
			domain.StyleFontSize: "16px",
			domain.StyleColor:    "#666666",
			domain.StyleMargin:   "0 0 20px 0",
		})
		c.Image("https://via.placeholder.com/800x400", element.DefaultImageAlt).Styles(domain.Styles{
			domain.StyleWidth:  "100%",
			domain.StyleHeight: "auto",
			domain.StyleMargin: "0 0 20px 0",
		})
	}).Styles(domain.Styles{
		domain.StyleBackgroundColor: "#F9FAFB",
		domain.StylePadding:         "30px",
		domain.StyleMargin:          "0 0 20px 0",
	})

	b.Container(func(c *dsl.Builder) {
		c.Paragraph("© 2023 Website Builder. All rights reserved.").Styles(domain.Styles{
			domain.StyleFontSize:  "14px",
			domain.StyleTextAlign: "center",
			domain.StyleColor:     "#FFFFFF",
		})
	}).Styles(domain.Styles{
		domain.StyleBackgroundColor: "#333333",
		domain.StylePadding:         "20px",
		domain.StyleColor:           "#FFFFFF",
	})

	f := element.NewFactory(ids)
	return domain.Document{
		ID:       f.NewID(),
		Name:     "Default Template",
		Industry: domain.IndustryOther,
		Elements: b.Build(),
	}
}
