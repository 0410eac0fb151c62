package panel

import (
	"fmt"
	"regexp"
	"strings"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	BrandFonts = []string{
		"Montserrat", "Inter", "Roboto", "Poppins", "Open Sans", "Lato", "Work Sans", "DM Sans",
		"Plus Jakarta Sans", "Space Grotesk", "Playfair Display", "Merriweather", "Lora",
		"Crimson Text", "Bebas Neue", "Archivo Black",
	}
	BrandTones = []string{"Professional", "Approachable", "Innovative", "Clear"}
)

func DefaultBrandDesign() dto.BrandDesign {
	return dto.BrandDesign{
		BrandName: "Your Brand",
		Colors: dto.BrandColors{
			Primary:    "#D16021",
			Secondary:  "#374151",
			Accent:     "#6B7280",
			Background: "#1a1a1a",
			Foreground: "#ffffff",
		},
		FontFamily: "Montserrat",
		BrandVoice: "Building the Future of Technology",
		Tone:       "Professional",
	}
}

type Brand struct {
	deps *Deps
}

func NewBrand(deps *Deps) *Brand {
	return &Brand{deps: deps}
}

// Load returns the saved design for the current project, or the defaults.
func (b *Brand) Load(act wizard.Activation) (dto.BrandDesign, error) {
	saved, err := b.deps.Brand.Get(act.Ctx, b.deps.State.Scope())
	if err != nil {
		return dto.BrandDesign{}, err
	}
	if err := live(act.Ctx); err != nil {
		return dto.BrandDesign{}, err
	}
	if saved == nil {
		return DefaultBrandDesign(), nil
	}
	return fillBrandDefaults(*saved), nil
}

// Save validates and uploads design, keeps a local copy, then advances.
func (b *Brand) Save(act wizard.Activation, design dto.BrandDesign) (*dto.BrandDesignUploadData, error) {
	design.BrandName = strings.TrimSpace(design.BrandName)
	if err := validateBrand(design); err != nil {
		return nil, err
	}

	res, err := b.deps.Brand.Upload(act.Ctx, &dto.BrandDesignUploadRequest{
		BrandDesign: design,
		Scope:       b.deps.State.Scope(),
	})
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	if err := b.deps.State.SetBrandDesign(design); err != nil {
		return nil, fmt.Errorf("save brand design: %w", err)
	}
	act.Advance()
	return res, nil
}

func validateBrand(d dto.BrandDesign) error {
	if d.BrandName == "" {
		return invalid("brandName", "Brand name is required")
	}
	colors := []struct{ name, value string }{
		{"primary", d.Colors.Primary},
		{"secondary", d.Colors.Secondary},
		{"accent", d.Colors.Accent},
		{"background", d.Colors.Background},
		{"foreground", d.Colors.Foreground},
	}
	for _, c := range colors {
		if c.value == "" {
			return invalid("colors", "Brand colors are required")
		}
		if !hexColor.MatchString(c.value) {
			return invalid("colors", fmt.Sprintf("%s color %q is not a hex color", c.name, c.value))
		}
	}
	return nil
}

func fillBrandDefaults(d dto.BrandDesign) dto.BrandDesign {
	def := DefaultBrandDesign()
	if d.BrandName == "" {
		d.BrandName = def.BrandName
	}
	if d.Colors.IsZero() {
		d.Colors = def.Colors
	}
	if d.FontFamily == "" {
		d.FontFamily = def.FontFamily
	}
	if d.BrandVoice == "" {
		d.BrandVoice = def.BrandVoice
	}
	if d.Tone == "" {
		d.Tone = def.Tone
	}
	return d
}
