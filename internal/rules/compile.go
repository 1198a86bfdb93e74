package rules

import (
	"github.com/chazuruo/resub/internal/errors"
	"github.com/chazuruo/resub/internal/rewrite"
)

// Compile turns the parsed file into an engine pipeline. The single-stage
// shorthand compiles through rewrite.Single and is therefore always
// active; the stages form honors each stage's enable flag.
func (f *File) Compile() (rewrite.Pipeline, error) {
	stages := make([]rewrite.Stage, 0, len(f.Stages))
	for i, sc := range f.Stages {
		st, err := sc.stage()
		if err != nil {
			return rewrite.Pipeline{}, &errors.StageError{Index: i, Name: sc.Name, Err: err}
		}
		stages = append(stages, st)
	}

	if f.single {
		return rewrite.Single(stages[0]), nil
	}
	return rewrite.Stages(stages...), nil
}

func (sc StageConfig) stage() (rewrite.Stage, error) {
	val, err := sc.Value.resolve()
	if err != nil {
		return rewrite.Stage{}, err
	}
	return rewrite.Stage{
		Name:    sc.Name,
		Enable:  sc.Enabled(),
		Pattern: sc.Regex.pattern(),
		Flags:   sc.Flags,
		Value:   val,
	}, nil
}
