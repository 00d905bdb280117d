package domain

// Static reference tables. Rows are seeded once at startup and never written
// by request handling.

type Sex struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (Sex) TableName() string { return "sex" }

type StyleOption struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

func (StyleOption) TableName() string { return "style_option" }

type SeasonPalette struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (SeasonPalette) TableName() string { return "season_palette" }

type Category struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (Category) TableName() string { return "category" }

type ImageAction struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (ImageAction) TableName() string { return "image_action" }

// Well-known image_action ids, fixed by the seed order.
const (
	ImageActionLike    = 1
	ImageActionDislike = 2
)

// Color belongs to a SeasonPalette; every palette carries exactly 18 colors.
// ColorCode is the catalog identifier such as "ls_01".
type Color struct {
	ID              int    `gorm:"primaryKey" json:"id"`
	SeasonPaletteID int    `gorm:"not null;index:idx_color_season_palette" json:"season_palette_id"`
	ColorCode       string `gorm:"type:varchar(20);not null;uniqueIndex" json:"color_code"`
	Name            string `gorm:"type:varchar(100);not null" json:"name"`
	ColorHex        string `gorm:"type:varchar(7);not null" json:"color_hex"`
}

func (Color) TableName() string { return "color" }
