package smartfill

// EquipmentSubstitution maps an exercise name pattern to a replacement that
// needs different equipment.
type EquipmentSubstitution struct {
	// NamePattern is matched as a case-insensitive substring of the
	// original exercise name.
	NamePattern string
	// Substitute is the replacement exercise name.
	Substitute string
	// RequiredEquipment must be available for the substitution to apply.
	RequiredEquipment string
}

// InjurySubstitution maps an exercise name pattern to a safer replacement.
type InjurySubstitution struct {
	NamePattern string
	Substitute  string
}

// InjuryRule groups the substitutions for one injury keyword. The keyword is
// matched as a substring of the caller-supplied injury label.
type InjuryRule struct {
	Keyword       string
	Substitutions []InjurySubstitution
}

// EquipmentKeyword detects which equipment an exercise needs from its name.
type EquipmentKeyword struct {
	Keyword   string
	Equipment string
}

// Lexicon holds the keyword tables the solver matches exercise names
// against. It is injected at construction so the tables can be localized or
// replaced with synthetic ones in tests.
type Lexicon struct {
	// CompoundPatterns identify compound lifts, which the time-budget pass
	// keeps in preference to accessories.
	CompoundPatterns []string
	// EquipmentKeywords detect the equipment requirement of an exercise.
	// Order matters: the first matching keyword wins.
	EquipmentKeywords []EquipmentKeyword
	// EquipmentSubstitutions are tried in order when required equipment is
	// missing.
	EquipmentSubstitutions []EquipmentSubstitution
	// InjuryRules are tried in order against each reported injury.
	InjuryRules []InjuryRule
}

// Equipment labels used by the default lexicon.
const (
	EquipmentBarbell    = "barbell"
	EquipmentDumbbell   = "dumbbell"
	EquipmentMachine    = "machine"
	EquipmentCable      = "cable"
	EquipmentKettlebell = "kettlebell"
	EquipmentBand       = "band"
	EquipmentBodyweight = "bodyweight"
)

// DefaultLexicon returns the built-in Spanish/English keyword tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		CompoundPatterns: []string{
			"sentadilla", "squat",
			"press",
			"peso muerto", "deadlift",
			"remo", "row",
			"dominada", "pull-up", "pull up",
			"fondo", "dip",
		},
		EquipmentKeywords: []EquipmentKeyword{
			{Keyword: "mancuerna", Equipment: EquipmentDumbbell},
			{Keyword: "dumbbell", Equipment: EquipmentDumbbell},
			{Keyword: "barra", Equipment: EquipmentBarbell},
			{Keyword: "barbell", Equipment: EquipmentBarbell},
			{Keyword: "máquina", Equipment: EquipmentMachine},
			{Keyword: "maquina", Equipment: EquipmentMachine},
			{Keyword: "machine", Equipment: EquipmentMachine},
			{Keyword: "polea", Equipment: EquipmentCable},
			{Keyword: "cable", Equipment: EquipmentCable},
			{Keyword: "kettlebell", Equipment: EquipmentKettlebell},
			{Keyword: "pesa rusa", Equipment: EquipmentKettlebell},
			{Keyword: "banda", Equipment: EquipmentBand},
			{Keyword: "band", Equipment: EquipmentBand},
			{Keyword: "flexion", Equipment: EquipmentBodyweight},
			{Keyword: "flexión", Equipment: EquipmentBodyweight},
			{Keyword: "push-up", Equipment: EquipmentBodyweight},
			{Keyword: "bodyweight", Equipment: EquipmentBodyweight},
			{Keyword: "peso corporal", Equipment: EquipmentBodyweight},
		},
		EquipmentSubstitutions: []EquipmentSubstitution{
			{NamePattern: "press banca", Substitute: "Flexiones", RequiredEquipment: EquipmentBodyweight},
			{NamePattern: "bench press", Substitute: "Flexiones", RequiredEquipment: EquipmentBodyweight},
			{NamePattern: "sentadilla", Substitute: "Sentadilla con peso corporal", RequiredEquipment: EquipmentBodyweight},
			{NamePattern: "squat", Substitute: "Sentadilla con peso corporal", RequiredEquipment: EquipmentBodyweight},
			{NamePattern: "remo", Substitute: "Remo invertido", RequiredEquipment: EquipmentBodyweight},
			{NamePattern: "row", Substitute: "Remo invertido", RequiredEquipment: EquipmentBodyweight},
			{NamePattern: "press militar", Substitute: "Press con banda", RequiredEquipment: EquipmentBand},
			{NamePattern: "overhead press", Substitute: "Press con banda", RequiredEquipment: EquipmentBand},
			{NamePattern: "curl con barra", Substitute: "Curl con mancuernas", RequiredEquipment: EquipmentDumbbell},
			{NamePattern: "peso muerto", Substitute: "Peso muerto con kettlebell", RequiredEquipment: EquipmentKettlebell},
			{NamePattern: "deadlift", Substitute: "Peso muerto con kettlebell", RequiredEquipment: EquipmentKettlebell},
		},
		InjuryRules: []InjuryRule{
			{
				Keyword: "hombro",
				Substitutions: []InjurySubstitution{
					{NamePattern: "press militar", Substitute: "Elevaciones laterales"},
					{NamePattern: "press", Substitute: "Press en máquina"},
					{NamePattern: "dominada", Substitute: "Jalón al pecho"},
				},
			},
			{
				Keyword: "shoulder",
				Substitutions: []InjurySubstitution{
					{NamePattern: "overhead press", Substitute: "Elevaciones laterales"},
					{NamePattern: "press", Substitute: "Press en máquina"},
					{NamePattern: "pull-up", Substitute: "Jalón al pecho"},
				},
			},
			{
				Keyword: "rodilla",
				Substitutions: []InjurySubstitution{
					{NamePattern: "sentadilla", Substitute: "Prensa de piernas"},
					{NamePattern: "zancada", Substitute: "Extensión de cuádriceps"},
					{NamePattern: "salto", Substitute: "Cardio de bajo impacto"},
				},
			},
			{
				Keyword: "knee",
				Substitutions: []InjurySubstitution{
					{NamePattern: "squat", Substitute: "Prensa de piernas"},
					{NamePattern: "lunge", Substitute: "Extensión de cuádriceps"},
					{NamePattern: "jump", Substitute: "Cardio de bajo impacto"},
				},
			},
			{
				Keyword: "lumbar",
				Substitutions: []InjurySubstitution{
					{NamePattern: "peso muerto", Substitute: "Hip thrust"},
					{NamePattern: "remo con barra", Substitute: "Remo en máquina"},
					{NamePattern: "buenos días", Substitute: "Curl femoral"},
				},
			},
			{
				Keyword: "lower back",
				Substitutions: []InjurySubstitution{
					{NamePattern: "deadlift", Substitute: "Hip thrust"},
					{NamePattern: "barbell row", Substitute: "Remo en máquina"},
					{NamePattern: "good morning", Substitute: "Curl femoral"},
				},
			},
			{
				Keyword: "codo",
				Substitutions: []InjurySubstitution{
					{NamePattern: "extensión de tríceps", Substitute: "Fondos asistidos"},
					{NamePattern: "curl", Substitute: "Curl con banda"},
				},
			},
			{
				Keyword: "elbow",
				Substitutions: []InjurySubstitution{
					{NamePattern: "triceps extension", Substitute: "Fondos asistidos"},
					{NamePattern: "curl", Substitute: "Curl con banda"},
				},
			},
		},
	}
}
