package models

// RecommendationKind is the presentation class of an advisory message
type RecommendationKind string

const (
	KindWarning RecommendationKind = "warning"
	KindInfo    RecommendationKind = "info"
	KindAlert   RecommendationKind = "alert"
	KindSuccess RecommendationKind = "success"
)

// Recommendation is a single advisory message
type Recommendation struct {
	Kind RecommendationKind `json:"kind"`
	Text string             `json:"text"`
}
