package models

// Distance buckets used as analytics lookup keys.
const (
	Bucket1to2 = "1-2"
	Bucket3to4 = "3-4"
	Bucket5to6 = "5-6"
	Bucket7to9 = "7-9"
	Bucket10   = "10+"
	BucketGoal = "Goal"
)

// AnalyticsRecord is a historical pass/run tendency for one down and distance bucket.
type AnalyticsRecord struct {
	Down            int     `json:"down" yaml:"down" validate:"min=1,max=4"`
	DistanceBucket  string  `json:"distance_bucket" yaml:"distance_bucket" validate:"oneof=1-2 3-4 5-6 7-9 10+ Goal"`
	PassRate        float64 `json:"pass_rate" yaml:"pass_rate" validate:"min=0,max=1"`
	PassEPA         float64 `json:"pass_epa_mean" yaml:"pass_epa_mean"`
	RunEPA          float64 `json:"run_epa_mean" yaml:"run_epa_mean"`
	PassSuccessRate float64 `json:"pass_success_rate" yaml:"pass_success_rate" validate:"min=0,max=1"`
	RunSuccessRate  float64 `json:"run_success_rate" yaml:"run_success_rate" validate:"min=0,max=1"`
	SampleSize      int     `json:"sample_size" yaml:"sample_size" validate:"min=0"`
}

// AnalyticsSummary is the learner-facing view of a matched record.
// Rates are whole percentages.
type AnalyticsSummary struct {
	PassRate       int     `json:"pass_rate"`
	RunRate        int     `json:"run_rate"`
	PassEPA        float64 `json:"pass_epa"`
	RunEPA         float64 `json:"run_epa"`
	PassSuccess    int     `json:"pass_success"`
	RunSuccess     int     `json:"run_success"`
	SampleSize     int     `json:"sample_size"`
	Insight        string  `json:"insight"`
	DistanceBucket string  `json:"distance_bucket"`
	// FieldZone is informational only; it plays no part in matching.
	FieldZone string `json:"field_zone"`
}
