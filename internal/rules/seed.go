package rules

import (
	"time"

	"github.com/myrjola/coachplan/internal/ptr"
)

// SeedRules returns the default rule set materialized on first read. The
// timestamps of every seeded rule are set to now.
func SeedRules(now time.Time) []Rule {
	return []Rule{
		{
			ID:          "seed-shoulder-press",
			Name:        "Sustitución de press por hombro",
			Description: "Con molestias de hombro, los press pasan a máquina para controlar el recorrido.",
			Active:      true,
			Priority:    8,
			Conditions: []Condition{
				{Kind: ConditionInjury, Value: "shoulder", Operator: OperatorContains},
				{Kind: ConditionPattern, Value: "press", Operator: OperatorContains},
			},
			Action: Action{
				Kind:     ActionReplace,
				Template: &Template{Name: "Press en máquina", Modality: "fuerza", Duration: "45 min"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "seed-knee-squat",
			Name:        "Sustitución de sentadilla por rodilla",
			Description: "Con molestias de rodilla, las sentadillas pasan a prensa de piernas.",
			Active:      true,
			Priority:    8,
			Conditions: []Condition{
				{Kind: ConditionInjury, Value: "rodilla", Operator: OperatorContains},
				{Kind: ConditionPattern, Value: "sentadilla", Operator: OperatorContains},
			},
			Action: Action{
				Kind:     ActionReplace,
				Template: &Template{Name: "Prensa de piernas", Modality: "fuerza", Duration: "45 min"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "seed-lumbar-deadlift",
			Name:        "Sustitución de peso muerto por lumbar",
			Description: "Con molestias lumbares, el peso muerto pasa a hip thrust.",
			Active:      true,
			Priority:    7,
			Conditions: []Condition{
				{Kind: ConditionInjury, Value: "lumbar", Operator: OperatorContains},
				{Kind: ConditionPattern, Value: "peso muerto", Operator: OperatorContains},
			},
			Action: Action{
				Kind:     ActionReplace,
				Template: &Template{Name: "Hip thrust", Modality: "fuerza", Duration: "40 min"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "seed-no-barbell",
			Name:        "Sin barra disponible",
			Description: "Cuando no hay barra, el trabajo con barra pasa a mancuernas.",
			Active:      true,
			Priority:    6,
			Conditions: []Condition{
				{Kind: ConditionEquipment, Value: "barra", Operator: OperatorNotContains},
				{Kind: ConditionPattern, Value: "barra", Operator: OperatorContains},
			},
			Action: Action{
				Kind:     ActionReplace,
				Template: &Template{Name: "Trabajo con mancuernas", Modality: "fuerza", Duration: "45 min"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "seed-elbow-curl",
			Name:        "Sustitución de curl por codo",
			Description: "Con molestias de codo, los curls pasan a banda elástica.",
			Active:      true,
			Priority:    5,
			Conditions: []Condition{
				{Kind: ConditionInjury, Value: "codo", Operator: OperatorContains},
				{Kind: ConditionPattern, Value: "curl", Operator: OperatorContains},
			},
			Action: Action{
				Kind:     ActionReplace,
				Template: &Template{Name: "Curl con banda", Modality: "fuerza", Duration: "30 min"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "seed-deload-intensity",
			Name:        "Reducción de intensidad en descarga",
			Description: "Las sesiones de alta intensidad bajan a moderada en semanas de descarga.",
			Active:      true,
			Priority:    5,
			Conditions: []Condition{
				{Kind: ConditionIntensity, Value: "alta", Operator: OperatorEquals},
				{Kind: ConditionTag, Value: "descarga", Operator: OperatorHasTag},
			},
			Action: Action{
				Kind:      ActionModify,
				Overrides: &Overrides{Intensity: ptr.Ref("moderada")},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "seed-recovery-cardio",
			Name:        "Cardio suave en recuperación",
			Description: "En días marcados como recuperación, el cardio se acorta y se suaviza.",
			Active:      true,
			Priority:    4,
			Conditions: []Condition{
				{Kind: ConditionModality, Value: "cardio", Operator: OperatorEquals},
				{Kind: ConditionTag, Value: "recuperación", Operator: OperatorHasTag},
			},
			Action: Action{
				Kind:      ActionModify,
				Overrides: &Overrides{Intensity: ptr.Ref("ligera"), Duration: ptr.Ref("20 min")},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
