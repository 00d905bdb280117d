package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Session is one user's end-to-end color-analysis engagement. It records the
// analyzed photo reference, the chosen gender/style, the detected season and
// the derived skin/hair/eye attributes, and owns an ordered set of rounds.
type Session struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                  string    `gorm:"type:varchar(50);not null;index:idx_session_user" json:"user_id"`
	UserImage               *string   `gorm:"type:varchar(500)" json:"user_image,omitempty"`
	GenderID                *int      `json:"gender_id,omitempty"`
	StyleID                 *int      `json:"style_id,omitempty"`
	DetectedSeasonPaletteID *int      `gorm:"column:detected_season_palette_id" json:"detected_season_palette_id,omitempty"`
	SkinColorHex            *string   `gorm:"type:varchar(7)" json:"skin_color_hex,omitempty"`
	HairColorHex            *string   `gorm:"type:varchar(7)" json:"hair_color_hex,omitempty"`
	EyeColor                *string   `gorm:"type:varchar(50)" json:"eye_color,omitempty"`
	CreatedAt               time.Time `gorm:"not null;index" json:"created_at"`
}

func (Session) TableName() string { return "session" }

// Round is one recommendation request/response cycle inside a Session.
// A round is only client-visible once its results are durably stored; a
// round whose external call failed is hard-deleted, never surfaced.
type Round struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_round_session" json:"session_id"`
	SelectedPaletteIDs datatypes.JSON `gorm:"column:selected_palette_ids;type:jsonb" json:"selected_palette_ids,omitempty"`
	UserComment        *string        `gorm:"type:text" json:"user_comment,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Round) TableName() string { return "round" }

// RoundRecommendedResult is one recommended item within a round. RankOrder
// is the item's position in the external recommender's response; it is
// unique within a round. ActionTypeID/DislikeDesc are filled in later when
// the user reacts to the item.
type RoundRecommendedResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoundID         uuid.UUID `gorm:"type:uuid;not null;index:idx_result_round;uniqueIndex:idx_result_round_rank" json:"round_id"`
	ImageID         string    `gorm:"type:varchar(100);not null" json:"image_id"`
	RankOrder       int       `gorm:"not null;uniqueIndex:idx_result_round_rank" json:"rank_order"`
	Score           *float64  `json:"score,omitempty"`
	ActionTypeID    *int      `json:"action_type_id,omitempty"`
	DislikeDesc     *string   `gorm:"type:text" json:"dislike_desc,omitempty"`
	ExplanationText *string   `gorm:"type:text" json:"explanation_text,omitempty"`
	IsInCart        bool      `gorm:"not null;default:false" json:"is_in_cart"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (RoundRecommendedResult) TableName() string { return "round_recommended_result" }
