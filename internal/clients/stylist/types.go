package stylist

// Wire types for the external stylist AI service.

type AnalyzeColorRequest struct {
	// Image is a base64 payload or a URL.
	Image string `json:"image"`
}

type PaletteColor struct {
	ID     string `json:"id"`
	Hex    string `json:"hex"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

type AnalyzeColorResponse struct {
	Season12           string         `json:"season_12"`
	SeasonHex          string         `json:"season_hex"`
	SeasonConfidence   float64        `json:"season_confidence"`
	Undertone          string         `json:"undertone"`
	SkinColorHex       string         `json:"skin_color_hex"`
	HairColorHex       string         `json:"hair_color_hex"`
	EyeColor           string         `json:"eye_color"`
	EyeColorHex        string         `json:"eye_color_hex"`
	EyeColorConfidence float64        `json:"eye_color_confidence"`
	Palette            []PaletteColor `json:"palette"`
}

type RecommendFilters struct {
	Gender int   `json:"gender"`
	Styles []int `json:"styles"`
}

type RecommendRequest struct {
	SelectedPaletteIDs []int            `json:"selected_palette_ids"`
	Filters            RecommendFilters `json:"filters"`
	K                  int              `json:"k"`
}

type DislikeItem struct {
	ImageID string `json:"image_id"`
	Comment string `json:"comment,omitempty"`
}

type RegenerateRequest struct {
	SelectedPaletteIDs []int         `json:"selected_palette_ids"`
	Like               []string      `json:"like"`
	Dislike            []DislikeItem `json:"dislike"`
	PreviousRound      []string      `json:"previous_round"`
	UserText           *string       `json:"user_text,omitempty"`
	K                  int           `json:"k"`
	SessionID          string        `json:"session_id"`
	RoundID            string        `json:"round_id"`
}

type RecommendedImage struct {
	ImageID         string  `json:"image_id"`
	RankOrder       int     `json:"rank_order"`
	Score           float64 `json:"score"`
	ExplanationText *string `json:"explanation_text,omitempty"`
}

type RecommendResponse struct {
	RecommendedImages []RecommendedImage `json:"recommended_images"`
	// VectorSaved is the downstream durability acknowledgment on regenerate
	// calls. Absent means the service predates the flag and is trusted.
	VectorSaved *bool `json:"vector_saved,omitempty"`
}
