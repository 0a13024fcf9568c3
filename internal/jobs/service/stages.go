package service

// Production stage labels a job can occupy.
const (
	StageDesign     = "design"
	StageProduction = "production"
	StageFinishing  = "finishing"
	StageShipping   = "shipping"
	StageCompleted  = "completed"
)

// DefaultStage is used when the external tracking system reports a list the
// lookup table does not know.
const DefaultStage = StageDesign

// listStages maps external tracking-system list identifiers onto internal
// production stages. The table is fully enumerated; anything else falls back
// to DefaultStage rather than failing the conversion.
var listStages = map[string]string{
	"intake":     StageDesign,
	"design":     StageDesign,
	"todo":       StageDesign,
	"production": StageProduction,
	"in-press":   StageProduction,
	"finishing":  StageFinishing,
	"shipping":   StageShipping,
	"done":       StageCompleted,
}

// StageForList resolves an external list identifier to a production stage.
func StageForList(listID string) string {
	if stage, ok := listStages[listID]; ok {
		return stage
	}
	return DefaultStage
}

// ValidStage reports whether the label names a known production stage.
func ValidStage(stage string) bool {
	switch stage {
	case StageDesign, StageProduction, StageFinishing, StageShipping, StageCompleted:
		return true
	}
	return false
}
