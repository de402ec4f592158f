package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ValidRoles is the canonical set of accepted conversation roles.
var ValidRoles = map[Role]bool{
	RoleUser: true, RoleAssistant: true, RoleSystem: true,
}

type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// StepName identifies one stage of a plan session in the step log.
type StepName string

const (
	StepReflection  StepName = "reflection"
	StepUserMetrics StepName = "user_metrics"
	StepRetrieval   StepName = "retrieval"
	StepPlan        StepName = "plan"
	StepEmpathy     StepName = "empathy"
	StepLifeQuality StepName = "life_quality"
)

// DefaultTheme is used when no theme can be inferred from a conversation.
const DefaultTheme = "stress"

// KnownThemes lists every theme the signal extractor can emit from keywords.
var KnownThemes = []string{
	"stress", "sleep", "mobility", "focus", "gratitude", "energy", "mood",
}

// IsKnownTheme reports whether name is one of KnownThemes.
func IsKnownTheme(name string) bool {
	for _, t := range KnownThemes {
		if t == name {
			return true
		}
	}
	return false
}
