package models

// WorkshopStage is one graded phase of the training workshop.
type WorkshopStage struct {
	Name    string `json:"name" validate:"required"`
	Percent int    `json:"percent" validate:"min=0,max=100"`
}

// WorkshopConfig is the training-workshop grading configuration. Stage
// percentages must sum to exactly 100 before the config may be submitted.
type WorkshopConfig struct {
	Stages []WorkshopStage `json:"stages" validate:"required,min=1,dive"`
}
