package builder

import (
	"github.com/go-playground/validator/v10"
)

const (
	DefaultPageWidth   = 500
	DefaultPageHeight  = 500
	DefaultFieldColor  = "#e6e6e6"
	DefaultMaxLen      = 160
	DefaultFont        = "Courier"
	DefaultJPEGQuality = 85
)

type Config struct {
	PageWidth   float64 `validate:"gt=0"`
	PageHeight  float64 `validate:"gt=0"`
	FieldColor  string  `validate:"hexcolor,len=7"`
	MaxLen      int     `validate:"min=1"`
	FontName    string  `validate:"required"`
	JPEGQuality int     `validate:"min=1,max=100"`
	// CheckScripts compiles action scripts before they are attached.
	CheckScripts bool
}

func NewDefaultConfig() *Config {
	return &Config{
		PageWidth:   DefaultPageWidth,
		PageHeight:  DefaultPageHeight,
		FieldColor:  DefaultFieldColor,
		MaxLen:      DefaultMaxLen,
		FontName:    DefaultFont,
		JPEGQuality: DefaultJPEGQuality,
	}
}

func (cfg *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(cfg)
}
