package recipe

// Recipe is the synthesized, persisted artifact.
type Recipe struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Ingredients  []Ingredient   `json:"ingredients"`
	Instructions []Instruction  `json:"instructions"`
	Nutrition    *Nutrition     `json:"nutrition_info"`
	Tags         []string       `json:"tags"`
	Difficulty   string         `json:"difficulty"`
	SourceURL    string         `json:"source_url"`
	AIGenerated  bool           `json:"ai_generated"`
	Analysis     *AnalysisData  `json:"ai_analysis_data,omitempty"`
}

// Ingredient is one entry in the ordered ingredient list.
type Ingredient struct {
	Name     string     `json:"name"`
	Quantity FlexString `json:"quantity"`
	Unit     string     `json:"unit"`
	Order    int        `json:"order"`
}

// Instruction is one cooking step. StartTime and EndTime anchor the
// step to positions in the source video (HH:MM:SS); omission means no
// in-video anchor exists for the step.
type Instruction struct {
	Step        FlexInt    `json:"step"`
	Title       string     `json:"title"`
	Instruction string     `json:"instruction"`
	TimeMinutes *FlexInt   `json:"time_minutes,omitempty"`
	Temperature *FlexInt   `json:"temperature_c,omitempty"`
	Tips        string     `json:"tips,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
}

// Nutrition is the optional per-serving nutrition block.
type Nutrition struct {
	Calories    FlexFloat  `json:"calories"`
	Carbs       FlexFloat  `json:"carbs"`
	Protein     FlexFloat  `json:"protein"`
	Fat         FlexFloat  `json:"fat"`
	ServingSize FlexString `json:"serving_size"`
}

// AnalysisData records how the recipe was produced.
type AnalysisData struct {
	VideoID               string   `json:"video_id"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	TextSources           []string `json:"text_sources"`
	FusedTextLength       int      `json:"fused_text_length"`
}
