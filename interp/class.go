package interp

import (
	"fmt"

	"github.com/minj-lang/minj/syntax"
	"github.com/minj-lang/minj/value"
	"github.com/rs/zerolog/log"
)

// registerClass builds the class template from its members in source
// order. Field initializers and static blocks run here, exactly once.
func (ip *Interpreter) registerClass(c *syntax.ClassDecl) error {
	def := value.NewClass(c.Name)
	ip.State.registerClass(def)
	for _, m := range c.Members {
		switch v := m.(type) {
		case *syntax.VarDecl:
			cells, err := ip.declCells(v)
			if err != nil {
				return positioned(v, err)
			}
			for i, name := range v.Names {
				def.AddField(name, cells[i])
			}
		case *syntax.MethodDecl:
			def.AddMethod(v)
		case syntax.Stmt:
			res, err := ip.exec(v)
			if err != nil {
				return err
			}
			if res == ReturnStep {
				return positioned(v, errReturnOutsideMethod)
			}
		default:
			return positioned(m, fmt.Errorf("unhandled class member %T", m))
		}
	}
	log.Debug().Str("class", c.Name).Int("fields", len(def.Fields)).Int("methods", len(def.Methods)).Msg("registered class")
	return nil
}

// newObject instantiates a registered class.
func (ip *Interpreter) newObject(name string) (*value.ObjectValue, error) {
	def, ok := ip.State.Classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", value.ErrUnknownClass, name)
	}
	obj := def.Instantiate()
	log.Trace().Str("class", name).Str("id", obj.ID.String()).Msg("new object")
	return obj, nil
}
