package models

// Variant selects which upstream generation endpoint a request uses and
// how the resulting job and audit rows are tagged. Both route groups run
// the same pipeline; only the Variant value differs.
type Variant struct {
	Name            string // job-queue discriminator tag
	GeneratePath    string // upstream endpoint path
	Model           string // optional upstream model selector
	TaskIDPrefix    string // prefix for locally assigned task ids
	GenerateLogType string
	PublishLogType  string
}

var (
	VariantV1 = Variant{
		Name:            "v1",
		GeneratePath:    "/api/v1/veo/generate",
		TaskIDPrefix:    "kie_",
		GenerateLogType: "VIDEO_GENERATE",
		PublishLogType:  "YOUTUBE_UPLOAD",
	}

	VariantV2 = Variant{
		Name:            "v2",
		GeneratePath:    "/api/v1/jobs/createTask",
		Model:           "grok-imagine",
		TaskIDPrefix:    "kie2_",
		GenerateLogType: "VIDEO_GENERATE_V2",
		PublishLogType:  "YOUTUBE_UPLOAD_V2",
	}
)
