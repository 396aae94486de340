package classify

import "fmt"

// Category is one tag from the transformation taxonomy.
type Category uint8

const (
	Other Category = iota
	Inlining
	LoopOptimization
	ConstantFolding
	DeadCodeElimination
	CommonSubexpressionElimination
	RegisterAllocation    // machine-dependent tier only
	InstructionScheduling // machine-dependent tier only
)

var categoryNames = map[Category]string{
	Other:                          "Other",
	Inlining:                       "Inlining",
	LoopOptimization:               "Loop Optimization",
	ConstantFolding:                "Constant Folding",
	DeadCodeElimination:            "Dead Code Elimination",
	CommonSubexpressionElimination: "Common Subexpression Elimination",
	RegisterAllocation:             "Register Allocation",
	InstructionScheduling:          "Instruction Scheduling",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory resolves a taxonomy name as written in rule config.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return Other, fmt.Errorf("unknown category %q", name)
}
