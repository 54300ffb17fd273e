package geny

type Discipline string

const (
	DisciplineNone     Discipline = ""
	DisciplineTrot     Discipline = "T"
	DisciplineFlat     Discipline = "P"
	DisciplineObstacle Discipline = "O"
)

// DisciplineFromLabel maps the label geny prints in the race facts to its code,
// unknown labels map to DisciplineNone.
func DisciplineFromLabel(label string) Discipline {
	switch label {
	case "Attelé", "Monté":
		return DisciplineTrot
	case "Plat":
		return DisciplineFlat
	case "Haies", "Steeple-chase":
		return DisciplineObstacle
	}
	return DisciplineNone
}
