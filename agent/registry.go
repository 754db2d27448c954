package agent

import (
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
	"github.com/hupe1980/agentcrew/tool"
)

// Registry holds one ready executor per role. It is built once at startup
// from the role-to-model mapping and shared by the pipeline engine and the
// runner.
type Registry struct {
	execs map[core.Role]*Executor
}

// NewRegistry builds executors for every role present in models. The
// orchestrator profile is used for core.RoleOrchestrator, the matching
// specialist profile for the rest; roles without a profile are skipped.
func NewRegistry(models map[core.Role]model.Model, dispatcher *tool.Dispatcher, optFns ...func(o *ExecutorOptions)) *Registry {
	execs := make(map[core.Role]*Executor, len(models))
	for role, m := range models {
		var profile Profile
		if role == core.RoleOrchestrator {
			profile = NewOrchestrator()
		} else if sp := NewSpecialist(role); sp != nil {
			profile = sp
		} else {
			continue
		}
		execs[role] = NewExecutor(profile, m, dispatcher, optFns...)
	}
	return &Registry{execs: execs}
}

// Get returns the executor for a role.
func (r *Registry) Get(role core.Role) (*Executor, bool) {
	e, ok := r.execs[role]
	return e, ok
}

// Orchestrator returns the orchestrator executor, or nil if none was
// configured.
func (r *Registry) Orchestrator() *Executor {
	return r.execs[core.RoleOrchestrator]
}
