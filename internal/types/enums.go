package types

// ConstraintOp is the relational operator of a parsed constraint
// reference. The zero value (ConstraintOpNone) means "name match only",
// i.e. the raw string carried no operator/version suffix.
type ConstraintOp string

const (
	ConstraintOpNone ConstraintOp = ""
	ConstraintOpEq   ConstraintOp = "="
	ConstraintOpLt   ConstraintOp = "<"
	ConstraintOpGt   ConstraintOp = ">"
	ConstraintOpLte  ConstraintOp = "<="
	ConstraintOpGte  ConstraintOp = ">="
)

// CommandKind distinguishes an install command from an uninstall
// command in the emitted sequence.
type CommandKind string

const (
	CommandInstall   CommandKind = "+"
	CommandUninstall CommandKind = "-"
)
